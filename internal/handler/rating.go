package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"homebite/internal/mw"
	"homebite/internal/service"
)

type submitRatingRequest struct {
	Score int `json:"score"`
}

func SubmitRatingHandler(ratingSvc *service.RatingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value(mw.UserCtxKey).(string)
		orderID := chi.URLParam(r, "id")

		var req submitRatingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		err := ratingSvc.Submit(r.Context(), orderID, userID, req.Score)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrOrderNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.Is(err, service.ErrDuplicateRating):
				http.Error(w, "order already rated", http.StatusConflict)
			case errors.Is(err, service.ErrInvalidScore):
				http.Error(w, "score must be between 1 and 5", http.StatusUnprocessableEntity)
			case errors.Is(err, service.ErrNotEligible):
				http.Error(w, "order not picked up yet", http.StatusUnprocessableEntity)
			case errors.Is(err, service.ErrNotOrderParty):
				http.Error(w, "not allowed for this order", http.StatusForbidden)
			default:
				slog.Error("submit rating failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
	}
}

func CookRatingHandler(ratingSvc *service.RatingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookID := chi.URLParam(r, "id")

		agg, err := ratingSvc.CookRating(r.Context(), cookID)
		if err != nil {
			slog.Error("cook rating failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(agg); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
