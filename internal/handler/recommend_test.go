package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"homebite/internal/mw"
	"homebite/internal/recommend"
	"homebite/internal/service"
)

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), mw.UserCtxKey, "u1")
	ctx = context.WithValue(ctx, mw.RoleCtxKey, "eater")
	return req.WithContext(ctx)
}

func TestRecommendHandler(t *testing.T) {
	h := RecommendHandler(service.NewPreferencesService(nil))

	body := `{
		"meals": [
			{"id": "a", "dish_name": "Nut roast", "price": 9, "tags": ["Contains Nuts"], "remaining_portions": 4},
			{"id": "b", "dish_name": "Falafel", "price": 8, "tags": ["Nut-Free", "Vegan"], "remaining_portions": 4}
		],
		"preferences": {"allergies": ["Nuts"], "restrictions": ["Vegan"]}
	}`

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/recommendations", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Recommendations []recommend.RecommendedMeal `json:"recommendations"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Recommendations) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(resp.Recommendations))
	}
	got := resp.Recommendations[0]
	if got.ID != "b" {
		t.Fatalf("expected meal b, got %q", got.ID)
	}
	if got.MatchScore != 50 {
		t.Fatalf("expected score 50, got %d", got.MatchScore)
	}
	if got.AIReason != "Nut-Free & Vegan" {
		t.Fatalf("unexpected reason %q", got.AIReason)
	}
}

func TestRecommendHandlerMissingMeals(t *testing.T) {
	h := RecommendHandler(service.NewPreferencesService(nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/recommendations", `{"preferences": {}}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRecommendHandlerEmptyResult(t *testing.T) {
	h := RecommendHandler(service.NewPreferencesService(nil))

	body := `{"meals": [], "preferences": {"restrictions": ["Vegan"]}}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/recommendations", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"recommendations":[]`) {
		t.Fatalf("expected empty recommendations array, got %s", rec.Body.String())
	}
}

func TestRecommendHandlerInvalidJSON(t *testing.T) {
	h := RecommendHandler(service.NewPreferencesService(nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/recommendations", `{`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
