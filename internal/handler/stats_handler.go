package handler

import (
	"net/http"

	"github.com/dateroad/admin-gateway/internal/metrics"
	"github.com/dateroad/admin-gateway/internal/middleware"
	"github.com/dateroad/admin-gateway/internal/model"
	"github.com/dateroad/admin-gateway/internal/upstream"
)

// StatsHandler はダッシュボード統計のHTTPハンドラー。
type StatsHandler struct {
	source  upstream.DataSource
	metrics metrics.MetricsCollector
}

// NewStatsHandler はStatsHandlerを生成する。
func NewStatsHandler(source upstream.DataSource, collector metrics.MetricsCollector) *StatsHandler {
	return &StatsHandler{
		source:  source,
		metrics: collector,
	}
}

// Stats は統計情報を取得する。
// GET /api/admin/stats
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.TokenFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, model.MsgAuthRequired)
		return
	}

	result, err := h.source.Stats(r.Context(), token)
	if err != nil {
		handleProxyError(w, err, "stats", model.MsgStatsFailed, h.metrics)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
