package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dateroad/admin-gateway/internal/audit"
	"github.com/dateroad/admin-gateway/internal/metrics"
	"github.com/dateroad/admin-gateway/internal/middleware"
	"github.com/dateroad/admin-gateway/internal/model"
	"github.com/dateroad/admin-gateway/internal/upstream"
)

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	source  upstream.DataSource
	auditor audit.Recorder
	metrics metrics.MetricsCollector
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(source upstream.DataSource, auditor audit.Recorder, collector metrics.MetricsCollector) *UserHandler {
	return &UserHandler{
		source:  source,
		auditor: auditor,
		metrics: collector,
	}
}

// ListUsers はユーザー一覧を取得する。
// GET /api/users?page=0&size=10&search=xxx
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.TokenFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, model.MsgAuthRequired)
		return
	}

	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", defaultPageSize)
	search := r.URL.Query().Get("search")

	result, err := h.source.ListUsers(r.Context(), token, page, size, search)
	if err != nil {
		handleProxyError(w, err, "users", model.MsgUserListFailed, h.metrics)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// UserCourses は指定ユーザーが作成したコース一覧を取得する。
// GET /api/users/{id}/courses（/api/admin/users/{id}/courses も同じハンドラー）
func (h *UserHandler) UserCourses(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.TokenFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, model.MsgAuthRequired)
		return
	}

	userID := chi.URLParam(r, "id")

	result, err := h.source.UserCourses(r.Context(), token, userID)
	if err != nil {
		handleProxyError(w, err, "user_courses", model.MsgUserCoursesFailed, h.metrics)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// BanUser は指定ユーザーを停止する。
// POST /api/users/{id}/ban
func (h *UserHandler) BanUser(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.TokenFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, model.MsgAuthRequired)
		return
	}

	userID := chi.URLParam(r, "id")

	result, err := h.source.BanUser(r.Context(), token, userID)
	if err != nil {
		handleProxyError(w, err, "user_ban", model.MsgUserBanFailed, h.metrics)
		return
	}

	// 監査記録の失敗は停止自体の成否に影響させない
	entry := audit.NewEntry(audit.ActionUserBan, userID, token, http.StatusOK,
		middleware.RequestIDFromContext(r.Context()))
	if err := h.auditor.Record(r.Context(), entry); err != nil {
		slog.Warn("ユーザー停止の監査記録に失敗しました",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	writeJSON(w, http.StatusOK, result)
}

// UserDetail は指定ユーザーの詳細情報を取得する。
// GET /api/admin/users/{id}/detail
func (h *UserHandler) UserDetail(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.TokenFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, model.MsgAuthRequired)
		return
	}

	userID := chi.URLParam(r, "id")

	result, err := h.source.UserDetail(r.Context(), token, userID)
	if err != nil {
		handleProxyError(w, err, "user_detail", model.MsgUserDetailFailed, h.metrics)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
