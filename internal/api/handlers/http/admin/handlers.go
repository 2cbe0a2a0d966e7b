package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kallejre/quick-gps-bookmark/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Moderator interface {
	Hide(ctx context.Context, id int64, req domain.HideRequest) (domain.ModerationResult, error)
	Unhide(ctx context.Context, id int64) (domain.ModerationResult, error)
}

type StatsGetter interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.PointStats, error)
}

type Handler struct {
	logger    *slog.Logger
	Moderator Moderator
	Stats     StatsGetter
}

func NewHandler(logger *slog.Logger, moderator Moderator, stats StatsGetter) *Handler {
	return &Handler{
		logger:    logger,
		Moderator: moderator,
		Stats:     stats,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) AdminPointHide(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminPointHide", slog.String("remote", r.RemoteAddr))

	id, ok := h.pointID(w, r)
	if !ok {
		return
	}

	// reason body is optional; an empty body means no reason
	var req domain.HideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	res, err := h.Moderator.Hide(r.Context(), id, req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	l.Info("point hidden", slog.Int64("id", id))
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) AdminPointUnhide(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminPointUnhide", slog.String("remote", r.RemoteAddr))

	id, ok := h.pointID(w, r)
	if !ok {
		return
	}

	res, err := h.Moderator.Unhide(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	l.Info("point unhidden", slog.Int64("id", id))
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("AdminStats", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	minutesStr := r.URL.Query().Get("minutes")
	if minutesStr == "" {
		minutesStr = "60"
	}

	minutes, err := strconv.Atoi(minutesStr)
	if err != nil || minutes <= 0 || minutes > 1440 {
		l.Warn("invalid minutes", slog.String("minutes", minutesStr))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "minutes must be 1-1440"})
		return
	}

	stats, err := h.Stats.GetStats(r.Context(), domain.StatsRequest{Minutes: minutes})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) pointID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 1 {
		h.log(r).Warn("invalid id", slog.String("id", idStr))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
