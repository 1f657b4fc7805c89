package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func authedTestClient(srvURL string) *Client {
	store := NewMemorySessionStore()
	store.Save(Session{AccessToken: "at-1", AdminName: "관리자"})
	return NewClient(srvURL, http.DefaultClient, store)
}

func TestClient_Courses_SendsPagerStateAndToken(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"content": [], "totalPages": 7}`))
	}))
	defer srv.Close()

	c := authedTestClient(srv.URL)
	pager := NewPager()
	pager.SetSearch("한강")

	if _, err := c.Courses(context.Background(), pager); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer at-1" {
		t.Errorf("Authorization = %q, want Bearer at-1", gotAuth)
	}
	if gotQuery != "page=0&search=%ED%95%9C%EA%B0%95&size=10" {
		t.Errorf("query = %q, want page/search/size", gotQuery)
	}
	if pager.TotalPages() != 7 {
		t.Errorf("totalPages = %d, want 7 from response", pager.TotalPages())
	}
}

func TestClient_Courses_WithoutSession_Fails(t *testing.T) {
	store := NewMemorySessionStore()
	c := NewClient("http://gateway.invalid", http.DefaultClient, store)

	_, err := c.Courses(context.Background(), NewPager())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestClient_Courses_GatewayError_SurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "권한이 없습니다."}`))
	}))
	defer srv.Close()

	c := authedTestClient(srv.URL)
	_, err := c.Courses(context.Background(), NewPager())

	if err == nil || err.Error() != "권한이 없습니다." {
		t.Errorf("err = %v, want gateway message", err)
	}
}

func TestClient_UserCourses_AcceptsBareArrayAndEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "bare array", body: `[{"id": 1}, {"id": 2}, {"id": 3}]`, want: 3},
		{name: "courses envelope", body: `{"courses": [{"id": 1}, {"id": 2}]}`, want: 2},
		{name: "empty array", body: `[]`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := authedTestClient(srv.URL)
			courses, err := c.UserCourses(context.Background(), "7")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(courses) != tt.want {
				t.Errorf("courses = %d, want %d", len(courses), tt.want)
			}
		})
	}
}

func TestClient_DeleteCourse_SendsDelete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"message": "코스가 성공적으로 삭제되었습니다."}`))
	}))
	defer srv.Close()

	c := authedTestClient(srv.URL)
	if err := c.DeleteCourse(context.Background(), "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodDelete || gotPath != "/api/courses/42" {
		t.Errorf("request = %s %s, want DELETE /api/courses/42", gotMethod, gotPath)
	}
}

func TestClient_BanUser_SendsPost(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"status": "BANNED"}`))
	}))
	defer srv.Close()

	c := authedTestClient(srv.URL)
	if err := c.BanUser(context.Background(), "7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/api/users/7/ban" {
		t.Errorf("request = %s %s, want POST /api/users/7/ban", gotMethod, gotPath)
	}
}
