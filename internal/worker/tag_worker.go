package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"homebite/internal/service"
)

// TagWorker fills in dietary tags for meals posted without any, asking
// the AI gateway one meal at a time. A meal is marked processed even when
// the gateway returns no tags, so it is not retried forever; transport
// errors leave it untouched for a later tick.
type TagWorker struct {
	mealSvc   *service.MealService
	aiClient  *service.AIClient
	interval  time.Duration
	batchSize int
}

func NewTagWorker(mealSvc *service.MealService, aiClient *service.AIClient) *TagWorker {
	return &TagWorker{
		mealSvc:   mealSvc,
		aiClient:  aiClient,
		interval:  30 * time.Second,
		batchSize: 5,
	}
}

func (w *TagWorker) Start(ctx context.Context) {
	slog.Info("starting tag worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("tag worker stopped")
			return
		case <-ticker.C:
			if err := w.processBatch(ctx); err != nil {
				slog.Error("tag batch failed", "error", err)
			}
		}
	}
}

func (w *TagWorker) processBatch(ctx context.Context) error {
	meals, err := w.mealSvc.GetUntagged(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get untagged meals: %w", err)
	}

	for _, meal := range meals {
		tags, err := w.aiClient.SuggestTags(ctx, meal.DishName, meal.Description)
		if err != nil {
			if errors.Is(err, service.ErrAIRateLimited) {
				slog.Warn("rate limited, stopping batch", "meal", meal.ID)
				return nil
			}
			slog.Error("tag suggestion failed", "meal", meal.ID, "error", err)
			continue
		}

		if err := w.mealSvc.SetTags(ctx, meal.ID, tags); err != nil {
			slog.Error("failed to store tags", "meal", meal.ID, "error", err)
		} else {
			slog.Info("meal tagged", "meal", meal.ID, "tags", tags)
		}
	}

	return nil
}
