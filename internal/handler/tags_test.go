package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"homebite/internal/service"
)

func fakeGateway(t *testing.T, status int, arguments string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestAnalyzeDishHandler(t *testing.T) {
	srv := fakeGateway(t, http.StatusOK, `{"tags":["Vegetarian","Contains Dairy"]}`)
	defer srv.Close()

	h := AnalyzeDishHandler(service.NewAIClient(srv.URL, "test-key", "test-model"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/meals/analyze",
		`{"dishName": "Quiche Lorraine", "description": "classic egg and cheese tart"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Tags []string `json:"tags"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := []string{"Vegetarian", "Contains Dairy"}
	if !reflect.DeepEqual(resp.Tags, want) {
		t.Fatalf("expected %v, got %v", want, resp.Tags)
	}
}

func TestAnalyzeDishHandlerDegradesOnGatewayError(t *testing.T) {
	srv := fakeGateway(t, http.StatusInternalServerError, "")
	defer srv.Close()

	h := AnalyzeDishHandler(service.NewAIClient(srv.URL, "test-key", "test-model"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/meals/analyze", `{"dishName": "Quiche"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected graceful 200, got %d", rec.Code)
	}

	var resp struct {
		Tags []string `json:"tags"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Tags) != 0 {
		t.Fatalf("expected empty tags, got %v", resp.Tags)
	}
}

func TestAnalyzeDishHandlerRequiresDishName(t *testing.T) {
	h := AnalyzeDishHandler(service.NewAIClient("http://unused", "k", "m"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/meals/analyze", `{"description": "mystery"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
