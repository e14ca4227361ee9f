package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"homebite/internal/model"
	"homebite/internal/mw"
	"homebite/internal/service"
)

type createMealRequest struct {
	DishName      string   `json:"dish_name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	TotalPortions int      `json:"total_portions"`
	ImageURL      string   `json:"image_url"`
	Tags          []string `json:"tags"`
}

func CreateMealHandler(mealSvc *service.MealService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value(mw.UserCtxKey).(string)
		role, _ := r.Context().Value(mw.RoleCtxKey).(string)
		if role != model.RoleCook {
			http.Error(w, "only cooks can post meals", http.StatusForbidden)
			return
		}

		var req createMealRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if req.DishName == "" {
			http.Error(w, "dish name required", http.StatusBadRequest)
			return
		}
		if req.Price < 0 {
			http.Error(w, "price must not be negative", http.StatusBadRequest)
			return
		}
		if req.TotalPortions <= 0 {
			http.Error(w, "total portions must be positive", http.StatusBadRequest)
			return
		}

		meal, err := mealSvc.Create(r.Context(), userID, service.CreateMealInput{
			DishName:      req.DishName,
			Description:   req.Description,
			Price:         req.Price,
			TotalPortions: req.TotalPortions,
			ImageURL:      req.ImageURL,
			Tags:          req.Tags,
		})
		if err != nil {
			slog.Error("meal create failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(meal); err != nil {
			slog.Error("encode meal failed", "error", err)
		}
	}
}

func FeedHandler(mealSvc *service.MealService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meals, err := mealSvc.ListFeed(r.Context())
		if err != nil {
			slog.Error("feed failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(meals) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(meals); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func MyMealsHandler(mealSvc *service.MealService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value(mw.UserCtxKey).(string)

		meals, err := mealSvc.ListByCook(r.Context(), userID)
		if err != nil {
			slog.Error("my meals failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(meals) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(meals); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
