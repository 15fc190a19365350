package job

import (
	"context"

	"github.com/hibiken/asynq"

	"novinky-backend/internal/domains/pages"
	"novinky-backend/pkg/logger"
)

// Task types handled by the in-process worker.
const (
	TypeRefreshPages  = "pages:refresh"
	TypeUpdateWeather = "pages:weather"
)

// RefreshPagesHandler runs nightly: it rolls the header over to the
// new date and name-day and marks every aggregate page stale so the
// next readers pick the new header up.
type RefreshPagesHandler struct {
	index  *pages.CacheIndex
	header *pages.Header
}

func NewRefreshPagesHandler(index *pages.CacheIndex, header *pages.Header) *RefreshPagesHandler {
	return &RefreshPagesHandler{index: index, header: header}
}

func (h *RefreshPagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	h.header.UpdateDate()
	h.index.InvalidateAll()
	logger.Info("refreshed header date and invalidated aggregate pages", nil)
	return nil
}

// UpdateWeatherHandler refreshes the header temperature. Pages are not
// invalidated for weather alone; the new value reaches readers with
// the next regeneration.
type UpdateWeatherHandler struct {
	header *pages.Header
}

func NewUpdateWeatherHandler(header *pages.Header) *UpdateWeatherHandler {
	return &UpdateWeatherHandler{header: header}
}

func (h *UpdateWeatherHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	return h.header.UpdateWeather(ctx)
}
