package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"homebite/internal/model"
	"homebite/internal/mw"
	"homebite/internal/service"
)

type placeOrderRequest struct {
	MealID string `json:"meal_id"`
}

type placeOrderResponse struct {
	OrderID string `json:"order_id"`
}

func PlaceOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value(mw.UserCtxKey).(string)

		var req placeOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.MealID == "" {
			http.Error(w, "meal_id required", http.StatusBadRequest)
			return
		}

		orderID, err := orderSvc.Place(r.Context(), userID, req.MealID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMealNotFound):
				http.Error(w, "meal not found", http.StatusNotFound)
			case errors.Is(err, service.ErrSoldOut):
				http.Error(w, "no portions remaining", http.StatusConflict)
			default:
				slog.Error("place order failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(placeOrderResponse{OrderID: orderID}); err != nil {
			slog.Error("encode order failed", "error", err)
		}
	}
}

func ListOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value(mw.UserCtxKey).(string)

		orders, err := orderSvc.ListByUser(r.Context(), userID)
		if err != nil {
			slog.Error("list orders failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(orders) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(orders); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

type advanceOrderRequest struct {
	Status string `json:"status"`
}

func AdvanceOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value(mw.UserCtxKey).(string)
		orderID := chi.URLParam(r, "id")

		var req advanceOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if !model.ValidStatus(req.Status) {
			http.Error(w, "unknown status", http.StatusBadRequest)
			return
		}

		err := orderSvc.Advance(r.Context(), orderID, userID, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrOrderNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.Is(err, service.ErrInvalidTransition):
				http.Error(w, "invalid status transition", http.StatusConflict)
			case errors.Is(err, service.ErrNotOrderParty):
				http.Error(w, "not allowed for this order", http.StatusForbidden)
			default:
				slog.Error("advance order failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
