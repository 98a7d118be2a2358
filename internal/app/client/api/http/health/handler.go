package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"doctracker/internal/domain/document"
)

// Source отдает текущий снимок документов
type Source interface {
	Snapshot() document.Snapshot
}

type Handler struct {
	source     Source
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(source Source, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		source:     source,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(_ context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	resp := Response{Status: "OK"}
	if h.source != nil {
		snap := h.source.Snapshot()
		resp.Documents = snap.Len()
		resp.Stale = snap.Stale()
		if at := snap.FetchedAt(); !at.IsZero() {
			resp.FetchedAt = &at
		}
	}
	return &Output{Body: resp}, nil
}
