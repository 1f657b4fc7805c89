package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestClient_FetchUserDetailView_JoinsConcurrentFetches(t *testing.T) {
	var inflight, maxInflight int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt32(&inflight, 1)
		for {
			old := atomic.LoadInt32(&maxInflight)
			if cur <= old || atomic.CompareAndSwapInt32(&maxInflight, old, cur) {
				break
			}
		}
		defer atomic.AddInt32(&inflight, -1)

		switch r.URL.Path {
		case "/api/admin/users/7/detail":
			w.Write([]byte(`{"id": 7, "name": "최지우", "status": "ACTIVE", "point": 1500}`))
		case "/api/admin/users/7/courses":
			w.Write([]byte(`{"courses": [{"id": 1}, {"id": 2}]}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := authedTestClient(srv.URL)
	view, err := c.FetchUserDetailView(context.Background(), "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Name() != "최지우" {
		t.Errorf("name = %q, want 최지우", view.Name())
	}
	if view.Status() != "ACTIVE" {
		t.Errorf("status = %q, want ACTIVE", view.Status())
	}
	if view.Point() != 1500 {
		t.Errorf("point = %d, want 1500", view.Point())
	}
	if len(view.Courses) != 2 {
		t.Errorf("courses = %d, want 2", len(view.Courses))
	}
}

func TestClient_FetchUserDetailView_BareArrayCourses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/users/7/detail":
			w.Write([]byte(`{"id": 7, "name": "최지우"}`))
		case "/api/admin/users/7/courses":
			// パススルー経路はエンベロープなしの素の配列を返す
			w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
		}
	}))
	defer srv.Close()

	c := authedTestClient(srv.URL)
	view, err := c.FetchUserDetailView(context.Background(), "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(view.Courses) != 2 {
		t.Errorf("courses = %d, want 2 from bare array body", len(view.Courses))
	}
}

func TestClient_FetchUserDetailView_DetailFailure_FailsJoin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/users/7/detail":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "존재하지 않는 사용자입니다."}`))
		case "/api/admin/users/7/courses":
			w.Write([]byte(`{"courses": []}`))
		}
	}))
	defer srv.Close()

	c := authedTestClient(srv.URL)
	_, err := c.FetchUserDetailView(context.Background(), "7")

	if err == nil || err.Error() != "존재하지 않는 사용자입니다." {
		t.Errorf("err = %v, want detail failure message", err)
	}
}

func TestClient_FetchUserDetailView_CoursesFailure_FailsJoin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/users/7/detail":
			w.Write([]byte(`{"id": 7}`))
		case "/api/admin/users/7/courses":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	c := authedTestClient(srv.URL)
	_, err := c.FetchUserDetailView(context.Background(), "7")

	if err == nil {
		t.Error("join should fail when courses fetch fails")
	}
}

func TestUserDetailView_MissingFields_Defaults(t *testing.T) {
	view := &UserDetailView{Detail: map[string]any{}}

	if view.Name() != "" {
		t.Errorf("name = %q, want empty default", view.Name())
	}
	if view.Point() != 0 {
		t.Errorf("point = %d, want 0 default", view.Point())
	}
}
