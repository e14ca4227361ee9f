package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func gatewayResponding(t *testing.T, status int, arguments string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{
					"message": map[string]any{
						"role": "assistant",
						"tool_calls": []map[string]any{
							{"function": map[string]any{"name": "suggest_tags", "arguments": arguments}},
						},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestSuggestTagsFiltersVocabulary(t *testing.T) {
	srv := gatewayResponding(t, http.StatusOK, `{"tags":["Vegan","Contains Nuts","Delicious","Spicy"]}`)
	defer srv.Close()

	c := NewAIClient(srv.URL, "test-key", "test-model")
	tags, err := c.SuggestTags(context.Background(), "Peanut curry", "spicy vegan curry")
	if err != nil {
		t.Fatalf("suggest tags: %v", err)
	}

	want := []string{"Vegan", "Contains Nuts", "Spicy"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
}

func TestSuggestTagsRateLimited(t *testing.T) {
	srv := gatewayResponding(t, http.StatusTooManyRequests, "")
	defer srv.Close()

	c := NewAIClient(srv.URL, "test-key", "test-model")
	_, err := c.SuggestTags(context.Background(), "Quiche", "")
	if !errors.Is(err, ErrAIRateLimited) {
		t.Fatalf("expected ErrAIRateLimited, got %v", err)
	}
}

func TestSuggestTagsUpstreamError(t *testing.T) {
	srv := gatewayResponding(t, http.StatusInternalServerError, "")
	defer srv.Close()

	c := NewAIClient(srv.URL, "test-key", "test-model")
	if _, err := c.SuggestTags(context.Background(), "Quiche", ""); err == nil {
		t.Fatal("expected error on upstream failure")
	}
}

func TestSuggestTagsMissingKey(t *testing.T) {
	c := NewAIClient("http://unused", "", "test-model")
	if _, err := c.SuggestTags(context.Background(), "Quiche", ""); err == nil {
		t.Fatal("expected error without API key")
	}
}
