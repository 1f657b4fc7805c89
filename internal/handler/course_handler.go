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

// defaultPageSize は一覧系エンドポイントの1ページあたりのデフォルト件数。
const defaultPageSize = 10

// CourseHandler はコース管理のHTTPハンドラー。
type CourseHandler struct {
	source  upstream.DataSource
	auditor audit.Recorder
	metrics metrics.MetricsCollector
}

// NewCourseHandler はCourseHandlerを生成する。
func NewCourseHandler(source upstream.DataSource, auditor audit.Recorder, collector metrics.MetricsCollector) *CourseHandler {
	return &CourseHandler{
		source:  source,
		auditor: auditor,
		metrics: collector,
	}
}

// ListCourses はコース一覧を取得する。
// GET /api/courses?page=0&size=10&search=xxx
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.TokenFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, model.MsgAuthRequired)
		return
	}

	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", defaultPageSize)
	search := r.URL.Query().Get("search")

	result, err := h.source.ListCourses(r.Context(), token, page, size, search)
	if err != nil {
		handleProxyError(w, err, "courses", model.MsgCourseListFailed, h.metrics)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// DeleteCourse は指定IDのコースを削除する。
// DELETE /api/courses/{id}
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.TokenFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, model.MsgAuthRequired)
		return
	}

	courseID := chi.URLParam(r, "id")

	if err := h.source.DeleteCourse(r.Context(), token, courseID); err != nil {
		handleProxyError(w, err, "course_delete", model.MsgCourseDeleteFailed, h.metrics)
		return
	}

	// 監査記録の失敗は削除自体の成否に影響させない
	entry := audit.NewEntry(audit.ActionCourseDelete, courseID, token, http.StatusOK,
		middleware.RequestIDFromContext(r.Context()))
	if err := h.auditor.Record(r.Context(), entry); err != nil {
		slog.Warn("コース削除の監査記録に失敗しました",
			slog.String("course_id", courseID),
			slog.String("error", err.Error()),
		)
	}

	writeMessage(w, http.StatusOK, model.MsgCourseDeleted)
}
