package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"homebite/internal/model"
	"homebite/internal/mw"
	"homebite/internal/service"
)

func GetPreferencesHandler(prefSvc *service.PreferencesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value(mw.UserCtxKey).(string)

		prefs, err := prefSvc.Get(r.Context(), userID)
		if err != nil {
			slog.Error("get preferences failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(prefs); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func SavePreferencesHandler(prefSvc *service.PreferencesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value(mw.UserCtxKey).(string)

		var prefs model.DietaryPreferences
		if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if prefs.MaxBudget != nil && *prefs.MaxBudget <= 0 {
			http.Error(w, "maxBudget must be positive", http.StatusBadRequest)
			return
		}

		if err := prefSvc.Save(r.Context(), userID, prefs); err != nil {
			slog.Error("save preferences failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
