package points

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
	"github.com/kallejre/quick-gps-bookmark/internal/render"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Ingestor interface {
	Ingest(ctx context.Context, req domain.BatchRequest) (domain.BatchResult, error)
}

type PointQuerier interface {
	Latest(ctx context.Context, req domain.LatestRequest) (*domain.LatestResponse, error)
}

type Handler struct {
	logger   *slog.Logger
	Ingestor Ingestor
	Querier  PointQuerier
	renderer *render.Renderer
}

func NewHandler(logger *slog.Logger, ingestor Ingestor, querier PointQuerier, renderer *render.Renderer) *Handler {
	return &Handler{
		logger:   logger,
		Ingestor: ingestor,
		Querier:  querier,
		renderer: renderer,
	}
}

func (h *Handler) PointsIngest(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("PointsIngest", slog.String("remote", r.RemoteAddr))

	var req domain.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "invalid JSON"})
		return
	}

	res, err := h.Ingestor.Ingest(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	l.Info("batch ingested",
		slog.String("batch_id", res.BatchID),
		slog.Int("inserted", res.Inserted),
		slog.Int("errors", len(res.Errors)),
	)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"batch_id": res.BatchID,
		"inserted": res.Inserted,
		"errors":   res.Errors,
	})
}

func (h *Handler) PointsLatest(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("PointsLatest", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	req := domain.LatestRequest{Limit: parseInt(r.URL.Query().Get("limit"), domain.LatestDefaultLimit)}

	resp, err := h.Querier.Latest(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) PointsLatestHTML(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("PointsLatestHTML", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	req := domain.LatestRequest{Limit: parseInt(r.URL.Query().Get("limit"), domain.LatestDefaultLimit)}

	resp, err := h.Querier.Latest(r.Context(), req)
	if err != nil {
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, "latest.html", resp)
}
