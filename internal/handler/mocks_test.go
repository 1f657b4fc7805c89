package handler

import (
	"context"
	"sync"
	"time"

	"github.com/dateroad/admin-gateway/internal/audit"
	"github.com/dateroad/admin-gateway/internal/upstream"
)

// mockSource はDataSourceのテスト用モック。
// 各メソッドは対応する関数フィールドへ委譲する。
type mockSource struct {
	loginFn       func(ctx context.Context, body []byte) (*upstream.LoginResult, error)
	listCoursesFn func(ctx context.Context, token string, page, size int, search string) (any, error)
	deleteCourseFn func(ctx context.Context, token, courseID string) error
	listUsersFn   func(ctx context.Context, token string, page, size int, search string) (any, error)
	userCoursesFn func(ctx context.Context, token, userID string) (any, error)
	banUserFn     func(ctx context.Context, token, userID string) (any, error)
	userDetailFn  func(ctx context.Context, token, userID string) (any, error)
	statsFn       func(ctx context.Context, token string) (any, error)
}

func (m *mockSource) Login(ctx context.Context, body []byte) (*upstream.LoginResult, error) {
	return m.loginFn(ctx, body)
}

func (m *mockSource) ListCourses(ctx context.Context, token string, page, size int, search string) (any, error) {
	return m.listCoursesFn(ctx, token, page, size, search)
}

func (m *mockSource) DeleteCourse(ctx context.Context, token, courseID string) error {
	return m.deleteCourseFn(ctx, token, courseID)
}

func (m *mockSource) ListUsers(ctx context.Context, token string, page, size int, search string) (any, error) {
	return m.listUsersFn(ctx, token, page, size, search)
}

func (m *mockSource) UserCourses(ctx context.Context, token, userID string) (any, error) {
	return m.userCoursesFn(ctx, token, userID)
}

func (m *mockSource) BanUser(ctx context.Context, token, userID string) (any, error) {
	return m.banUserFn(ctx, token, userID)
}

func (m *mockSource) UserDetail(ctx context.Context, token, userID string) (any, error) {
	return m.userDetailFn(ctx, token, userID)
}

func (m *mockSource) Stats(ctx context.Context, token string) (any, error) {
	return m.statsFn(ctx, token)
}

// mockAuditor は記録された監査エントリを保持するRecorderモック。
type mockAuditor struct {
	mu      sync.Mutex
	entries []audit.Entry
	err     error
}

func (m *mockAuditor) Record(ctx context.Context, entry audit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditor) recorded() []audit.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]audit.Entry(nil), m.entries...)
}

// nopMetrics はテスト用の何もしないメトリクスコレクター。
type nopMetrics struct{}

func (nopMetrics) RecordUpstreamStatus(resource string, statusCode int)          {}
func (nopMetrics) RecordUpstreamLatency(resource string, duration time.Duration) {}
func (nopMetrics) RecordUpstreamFailure(resource string)                         {}
func (nopMetrics) RecordProxyError(resource string, statusCode int)              {}
func (nopMetrics) RecordCoursesReshaped(count int)                               {}
