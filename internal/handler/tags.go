package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"homebite/internal/service"
)

type analyzeDishRequest struct {
	DishName    string `json:"dishName"`
	Description string `json:"description"`
}

type analyzeDishResponse struct {
	Tags []string `json:"tags"`
}

// AnalyzeDishHandler returns AI-suggested dietary tags for a dish. The
// suggestion is advisory: any gateway failure degrades to an empty tag
// list rather than an error, so posting a meal never depends on the AI
// being up.
func AnalyzeDishHandler(aiClient *service.AIClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeDishRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.DishName == "" {
			http.Error(w, "dish name is required", http.StatusBadRequest)
			return
		}

		tags, err := aiClient.SuggestTags(r.Context(), req.DishName, req.Description)
		if err != nil {
			slog.Warn("tag suggestion unavailable", "dish", req.DishName, "error", err)
			tags = []string{}
		}
		if tags == nil {
			tags = []string{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(analyzeDishResponse{Tags: tags}); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
