package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// serviceName はバナーとヘルスチェックに表示するサービス名。
const serviceName = "vidtalk"

// Pinger はDB接続の疎通確認を行う。*sql.DBが満たす。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ReadinessProbe は任意の外部依存（オブジェクトストレージ等）の疎通確認を行う。
type ReadinessProbe interface {
	Name() string
	Check(ctx context.Context) error
}

// HealthHandler は稼働確認用のHTTPハンドラー。
type HealthHandler struct {
	db     Pinger
	probes []ReadinessProbe
}

// NewHealthHandler はHealthHandlerを生成する。nilのprobeは無視する。
func NewHealthHandler(db Pinger, probes ...ReadinessProbe) *HealthHandler {
	h := &HealthHandler{db: db}
	for _, p := range probes {
		if p != nil {
			h.probes = append(h.probes, p)
		}
	}
	return h
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Index はサービスのバナーを返す。
// GET /
func (h *HealthHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": serviceName,
		"status":  "running",
	})
}

// Health はDBへの疎通を確認する。
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		slog.Warn("health check failed", slog.String("dependency", "database"), slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Ready はDBと登録済みの外部依存すべての疎通を確認する。
// GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	healthy := true

	if err := h.db.PingContext(r.Context()); err != nil {
		slog.Warn("readiness check failed", slog.String("dependency", "database"), slog.String("error", err.Error()))
		checks["database"] = "unavailable"
		healthy = false
	}

	for _, p := range h.probes {
		if err := p.Check(r.Context()); err != nil {
			slog.Warn("readiness check failed", slog.String("dependency", p.Name()), slog.String("error", err.Error()))
			checks[p.Name()] = "unavailable"
			healthy = false
			continue
		}
		checks[p.Name()] = "ok"
	}

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Checks: checks})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Checks: checks})
}
