package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"homebite/internal/model"
	"homebite/internal/mw"
	"homebite/internal/recommend"
	"homebite/internal/service"
)

type recommendRequest struct {
	Meals       []recommend.Meal          `json:"meals"`
	Preferences *model.DietaryPreferences `json:"preferences"`
}

type recommendResponse struct {
	Recommendations []recommend.RecommendedMeal `json:"recommendations"`
}

// RecommendHandler scores the submitted meal snapshot. When the request
// carries no preferences the caller's stored profile preferences are used.
func RecommendHandler(recSvc *service.PreferencesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value(mw.UserCtxKey).(string)

		var req recommendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var prefs model.DietaryPreferences
		if req.Preferences != nil {
			prefs = *req.Preferences
		} else {
			stored, err := recSvc.Get(r.Context(), userID)
			if err != nil {
				slog.Error("load preferences failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			prefs = stored
		}

		recs, err := recommend.Recommend(req.Meals, prefs)
		if err != nil {
			switch {
			case errors.Is(err, recommend.ErrInvalidInput):
				http.Error(w, "meals array is required", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		if recs == nil {
			recs = []recommend.RecommendedMeal{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(recommendResponse{Recommendations: recs}); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
