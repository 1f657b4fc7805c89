package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/dateroad/admin-gateway/internal/metrics"
	"github.com/dateroad/admin-gateway/internal/model"
	"github.com/dateroad/admin-gateway/internal/upstream"
)

// LoginHandler は認証プロキシのHTTPハンドラー。
type LoginHandler struct {
	source      upstream.DataSource
	metrics     metrics.MetricsCollector
	maxBodySize int64
}

// NewLoginHandler はLoginHandlerを生成する。
func NewLoginHandler(source upstream.DataSource, collector metrics.MetricsCollector, maxBodySize int64) *LoginHandler {
	return &LoginHandler{
		source:      source,
		metrics:     collector,
		maxBodySize: maxBodySize,
	}
}

// Login は認証リクエストを上流へ転送し、ステータスとボディをそのまま返す。
// POST /api/login
//
// ローカル障害時のボディは {"error": ...} 形式
// （他のエンドポイントの {"message": ...} とは異なる）。
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxBodySize))
	if err != nil {
		slog.Error("ログインリクエストボディの読み取りに失敗しました", slog.String("error", err.Error()))
		h.metrics.RecordProxyError("login", http.StatusInternalServerError)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": model.MsgLoginFailed})
		return
	}

	result, err := h.source.Login(r.Context(), body)
	if err != nil {
		h.metrics.RecordProxyError("login", http.StatusInternalServerError)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": model.MsgLoginFailed})
		return
	}

	writeJSON(w, result.Status, result.Body)
}
