package upstream

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dateroad/admin-gateway/internal/model"
	"github.com/dateroad/admin-gateway/internal/security"
)

// nopMetrics はテスト用の何もしないメトリクスコレクター。
type nopMetrics struct{}

func (nopMetrics) RecordUpstreamStatus(resource string, statusCode int)          {}
func (nopMetrics) RecordUpstreamLatency(resource string, duration time.Duration) {}
func (nopMetrics) RecordUpstreamFailure(resource string)                         {}
func (nopMetrics) RecordProxyError(resource string, statusCode int)              {}
func (nopMetrics) RecordCoursesReshaped(count int)                               {}

func testClient(baseURL string) *Client {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	reshaper := NewReshaper(security.NopSanitizer{}, nopMetrics{})
	return NewClient(http.DefaultClient, baseURL, logger, nopMetrics{}, reshaper, 5242880)
}

func proxyErr(t *testing.T, err error) *model.ProxyError {
	t.Helper()
	var pe *model.ProxyError
	if !errors.As(err, &pe) {
		t.Fatalf("error is not *model.ProxyError: %v", err)
	}
	return pe
}

func TestClient_ListCourses_ForwardsAuthAndQuery(t *testing.T) {
	var gotPath, gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"content": [], "totalPages": 0, "totalElements": 0, "size": 10, "number": 0}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.ListCourses(context.Background(), "tok123", 2, 10, "한강"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/v1/admin/courses" {
		t.Errorf("path = %q, want /api/v1/admin/courses", gotPath)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", gotAuth)
	}
	if gotQuery != "page=2&search=%ED%95%9C%EA%B0%95&size=10" {
		t.Errorf("query = %q, want encoded page/search/size", gotQuery)
	}
}

func TestClient_ListCourses_OmitsEmptySearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"content": []}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.ListCourses(context.Background(), "tok", 0, 10, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotQuery != "page=0&size=10" {
		t.Errorf("query = %q, want page=0&size=10 without search", gotQuery)
	}
}

func TestClient_ListCourses_ReshapesContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"content": [{"id": 1, "title": "제목", "userId": 5, "userName": "박서연", "extra": "보존"}],
			"totalPages": 1,
			"totalElements": 1,
			"size": 10,
			"number": 0
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	result, err := c.ListCourses(context.Background(), "tok", 0, 10, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := result.(map[string]any)
	course := doc["content"].([]any)[0].(map[string]any)
	user := course["user"].(map[string]any)
	if user["id"] != float64(5) || user["name"] != "박서연" {
		t.Errorf("user = %v, want lifted id/name", user)
	}
	if course["extra"] != "보존" {
		t.Error("unknown course fields should be preserved")
	}
	if doc["totalElements"] != float64(1) {
		t.Error("envelope fields should be preserved")
	}
}

func TestClient_ListCourses_UpstreamErrorWithMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "권한이 없습니다."}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.ListCourses(context.Background(), "tok", 0, 10, "")

	pe := proxyErr(t, err)
	if pe.Status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", pe.Status)
	}
	if pe.Message != "권한이 없습니다." {
		t.Errorf("message = %q, want upstream message", pe.Message)
	}
}

func TestClient_ListCourses_UpstreamErrorWithoutMessage_UsesDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.ListCourses(context.Background(), "tok", 0, 10, "")

	pe := proxyErr(t, err)
	if pe.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", pe.Status)
	}
	if pe.Message != model.MsgCourseListFailed {
		t.Errorf("message = %q, want default %q", pe.Message, model.MsgCourseListFailed)
	}
}

func TestClient_ListCourses_NetworkError_Normalizes500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 接続拒否を発生させる

	c := testClient(srv.URL)
	_, err := c.ListCourses(context.Background(), "tok", 0, 10, "")

	pe := proxyErr(t, err)
	if pe.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", pe.Status)
	}
	if pe.Message != model.MsgCourseListFailed {
		t.Errorf("message = %q, want default %q", pe.Message, model.MsgCourseListFailed)
	}
}

func TestClient_Login_ForwardsBodyAndReturnsStatusVerbatim(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "아이디 또는 비밀번호가 올바르지 않습니다."}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	result, err := c.Login(context.Background(), []byte(`{"username": "admin", "password": "pw"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(gotBody) != `{"username": "admin", "password": "pw"}` {
		t.Errorf("forwarded body = %s, want verbatim", gotBody)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if result.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 passed through", result.Status)
	}
	body := result.Body.(map[string]any)
	if body["message"] != "아이디 또는 비밀번호가 올바르지 않습니다." {
		t.Error("upstream body should be returned verbatim")
	}
}

func TestClient_Login_DoesNotSendAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.Login(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty for login", gotAuth)
	}
}

func TestClient_Login_InvalidJSONResponse_Normalizes500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Login(context.Background(), []byte(`{}`))

	pe := proxyErr(t, err)
	if pe.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", pe.Status)
	}
	if pe.Message != model.MsgLoginFailed {
		t.Errorf("message = %q, want %q", pe.Message, model.MsgLoginFailed)
	}
}

func TestClient_DeleteCourse_Success(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if err := c.DeleteCourse(context.Background(), "tok", "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", gotMethod)
	}
	if gotPath != "/api/v1/admin/courses/42" {
		t.Errorf("path = %q, want /api/v1/admin/courses/42", gotPath)
	}
}

func TestClient_DeleteCourse_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "존재하지 않는 코스입니다."}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	err := c.DeleteCourse(context.Background(), "tok", "999")

	pe := proxyErr(t, err)
	if pe.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", pe.Status)
	}
	if pe.Message != "존재하지 않는 코스입니다." {
		t.Errorf("message = %q, want upstream message", pe.Message)
	}
}

func TestClient_BanUser_PostsToCorrectPath(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"id": 3, "status": "BANNED"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	result, err := c.BanUser(context.Background(), "tok", "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotPath != "/api/v1/admin/users/3/ban" {
		t.Errorf("path = %q, want /api/v1/admin/users/3/ban", gotPath)
	}
	doc := result.(map[string]any)
	if doc["status"] != "BANNED" {
		t.Error("upstream ban response should pass through")
	}
}

func TestClient_UserCourses_ReshapesCoursesArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/admin/users/7/courses" {
			t.Errorf("path = %q, want /api/v1/admin/users/7/courses", r.URL.Path)
		}
		w.Write([]byte(`{"courses": [{"id": 1, "userId": 7, "userName": "최지우"}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	result, err := c.UserCourses(context.Background(), "tok", "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := result.(map[string]any)
	course := doc["courses"].([]any)[0].(map[string]any)
	if _, exists := course["user"]; !exists {
		t.Error("user courses should be reshaped")
	}
}

func TestClient_UserDetail_PassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/admin/users/7/detail" {
			t.Errorf("path = %q, want /api/v1/admin/users/7/detail", r.URL.Path)
		}
		w.Write([]byte(`{"id": 7, "name": "최지우", "unknownField": 1}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	result, err := c.UserDetail(context.Background(), "tok", "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := result.(map[string]any)
	if doc["unknownField"] != float64(1) {
		t.Error("detail response should pass through unchanged")
	}
}

func TestClient_Stats_UsesStatsPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/admin/stats" {
			t.Errorf("path = %q, want /api/v1/admin/stats", r.URL.Path)
		}
		w.Write([]byte(`{"userCount": 10, "courseCount": 20}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.Stats(context.Background(), "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractErrorMessage_FallsBackToErrorKey(t *testing.T) {
	if got := extractErrorMessage([]byte(`{"error": "에러 메시지"}`)); got != "에러 메시지" {
		t.Errorf("got %q, want error key value", got)
	}
	if got := extractErrorMessage([]byte(`{"message": "우선순위"}`)); got != "우선순위" {
		t.Errorf("got %q, want message key value", got)
	}
	if got := extractErrorMessage([]byte(`garbage`)); got != "" {
		t.Errorf("got %q, want empty for non-JSON", got)
	}
}
