package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/yndnr/rudis-go/internal/core/domain"
	"github.com/yndnr/rudis-go/internal/infra/buildinfo"
	"github.com/yndnr/rudis-go/internal/telemetry/logger"
	"github.com/yndnr/rudis-go/internal/telemetry/metric"
)

type handler struct {
	cfg *RouterConfig
	log logger.Logger
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Ready != nil && !h.cfg.Ready() {
		h.writeError(w, r, http.StatusServiceUnavailable, domain.ErrNotReady)
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handler) handleStats(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()
	started := buildinfo.StartTime()
	now := time.Now()

	resp := StatsResponse{
		Version:        info.Version,
		Commit:         info.Commit,
		GoVersion:      info.GoVersion,
		StartedAt:      started.UTC(),
		Uptime:         strings.TrimSpace(humanize.RelTime(started, now, "", "")),
		UptimeSeconds:  int64(now.Sub(started).Seconds()),
		Keys:           map[string]int{},
		BitmapCapacity: h.cfg.BitmapCapacity,
	}
	if h.cfg.KeyCounts != nil {
		for typ, n := range h.cfg.KeyCounts() {
			resp.Keys[typ] = n
			resp.KeysTotal += n
		}
	}
	if h.cfg.ActiveConns != nil {
		resp.Connections = h.cfg.ActiveConns()
	}

	h.writeJSON(w, r, http.StatusOK, resp)
}

func (h *handler) metricsHandler() http.Handler {
	if h.cfg.Metrics != nil {
		return h.cfg.Metrics.Handler()
	}
	return metric.Handler()
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := GetRequestIDFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(NewResponse(requestID, data)); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeError(w, GetRequestIDFromContext(r.Context()), status, err)
}

func writeError(w http.ResponseWriter, requestID string, status int, err error) {
	code := domain.GetErrorCode(err)
	if code == "" {
		code = domain.ErrInternal.Code
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(NewErrorResponse(requestID, code, domain.ReplyText(err)))
}
