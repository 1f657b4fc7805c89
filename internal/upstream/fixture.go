package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/dateroad/admin-gateway/internal/jsonfield"
	"github.com/dateroad/admin-gateway/internal/model"
)

// フィクスチャモードの認証情報。
const (
	fixtureUsername = "admin"
	fixturePassword = "admin"
)

// FixtureSource は上流API無しで動作するデモ用のDataSource実装。
// 起動時に決定的なデモデータを生成し、削除・停止操作はメモリ上に反映する。
type FixtureSource struct {
	mu      sync.Mutex
	courses []model.Course
	users   []model.User
}

// NewFixtureSource はデモデータ入りのFixtureSourceを生成する。
func NewFixtureSource() *FixtureSource {
	return &FixtureSource{
		courses: fixtureCourses(),
		users:   fixtureUsers(),
	}
}

// Login はフィクスチャの認証情報と照合する。
// 成功時は実際の上流と同じ形（token.accessToken等）のボディを返す。
func (f *FixtureSource) Login(ctx context.Context, body []byte) (*LoginResult, error) {
	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, model.NewInternalError(model.MsgLoginFailed)
	}

	username := jsonfield.String(req, "username", "")
	password := jsonfield.String(req, "password", "")
	if username != fixtureUsername || password != fixturePassword {
		return &LoginResult{
			Status: http.StatusUnauthorized,
			Body: map[string]any{
				"message": "아이디 또는 비밀번호가 올바르지 않습니다.",
			},
		}, nil
	}

	return &LoginResult{
		Status: http.StatusOK,
		Body: map[string]any{
			"name": "관리자",
			"token": map[string]any{
				"accessToken":  "fixture-access-token",
				"refreshToken": "fixture-refresh-token",
			},
		},
	}, nil
}

// ListCourses はデモデータからページを切り出して返す。
// searchはタイトル・作成者名への部分一致。
func (f *FixtureSource) ListCourses(ctx context.Context, token string, page, size int, search string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]model.Course, 0, len(f.courses))
	for _, c := range f.courses {
		if search == "" ||
			strings.Contains(c.Title, search) ||
			strings.Contains(c.User.Name, search) {
			matched = append(matched, c)
		}
	}

	content, totalPages := paginate(matched, page, size)
	return model.CoursePage{
		Content:       content,
		TotalPages:    totalPages,
		TotalElements: len(matched),
		Size:          size,
		Number:        page,
	}, nil
}

// DeleteCourse はデモデータから指定IDのコースを取り除く。
func (f *FixtureSource) DeleteCourse(ctx context.Context, token, courseID string) error {
	id, err := strconv.ParseInt(courseID, 10, 64)
	if err != nil {
		return model.NewUpstreamError(http.StatusNotFound, "", model.MsgCourseDeleteFailed)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i, c := range f.courses {
		if c.ID == id {
			f.courses = append(f.courses[:i], f.courses[i+1:]...)
			return nil
		}
	}
	return model.NewUpstreamError(http.StatusNotFound, "", model.MsgCourseDeleteFailed)
}

// ListUsers はデモデータからページを切り出して返す。
func (f *FixtureSource) ListUsers(ctx context.Context, token string, page, size int, search string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		if search == "" || strings.Contains(u.Name, search) {
			matched = append(matched, u)
		}
	}

	content, totalPages := paginate(matched, page, size)
	return model.UserPage{
		Content:       content,
		TotalPages:    totalPages,
		TotalElements: len(matched),
		Size:          size,
		Number:        page,
	}, nil
}

// UserCourses は指定ユーザーが作成したコース一覧を返す。
func (f *FixtureSource) UserCourses(ctx context.Context, token, userID string) (any, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, model.NewUpstreamError(http.StatusNotFound, "", model.MsgUserCoursesFailed)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	courses := make([]model.Course, 0)
	for _, c := range f.courses {
		if c.User.ID == id {
			courses = append(courses, c)
		}
	}
	return map[string]any{"courses": courses}, nil
}

// BanUser は指定ユーザーを停止状態に変更し、更新後のユーザーを返す。
func (f *FixtureSource) BanUser(ctx context.Context, token, userID string) (any, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, model.NewUpstreamError(http.StatusNotFound, "", model.MsgUserBanFailed)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Status = model.UserStatusBanned
			return f.users[i], nil
		}
	}
	return nil, model.NewUpstreamError(http.StatusNotFound, "", model.MsgUserBanFailed)
}

// UserDetail は指定ユーザーの詳細情報を返す。
func (f *FixtureSource) UserDetail(ctx context.Context, token, userID string) (any, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, model.NewUpstreamError(http.StatusNotFound, "", model.MsgUserDetailFailed)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, model.NewUpstreamError(http.StatusNotFound, "", model.MsgUserDetailFailed)
}

// Stats はデモデータから統計を算出して返す。
func (f *FixtureSource) Stats(ctx context.Context, token string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	banned := 0
	points := 0
	for _, u := range f.users {
		if u.Status == model.UserStatusBanned {
			banned++
		}
		points += u.Point
	}

	return model.Stats{
		UserCount:       len(f.users),
		CourseCount:     len(f.courses),
		BannedUserCount: banned,
		PointTotal:      points,
	}, nil
}

// paginate はスライスから0始まりのページを切り出す。
// 範囲外のページには空のコンテンツを返す。総ページ数は最低1とする。
func paginate[T any](items []T, page, size int) ([]T, int) {
	if size <= 0 {
		size = 10
	}
	totalPages := (len(items) + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	start := page * size
	if page < 0 || start >= len(items) {
		return []T{}, totalPages
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// fixtureCourses は決定的なデモ用コースデータを生成する。
func fixtureCourses() []model.Course {
	titles := []string{
		"한강 피크닉과 야경 감상",
		"성수동 카페 투어",
		"북촌 한옥마을 산책",
		"홍대 거리 공연과 맛집",
		"남산 타워 일몰 데이트",
		"경복궁 야간 개장 관람",
		"이태원 브런치 코스",
		"잠실 롯데월드 데이트",
		"연남동 골목길 탐방",
		"여의도 벚꽃 길 산책",
		"강남 전시회 관람 코스",
		"망원동 시장 먹거리 투어",
	}
	cities := []string{"서울", "서울", "서울", "서울", "서울", "서울", "서울", "서울", "서울", "서울", "서울", "서울"}

	courses := make([]model.Course, 0, len(titles))
	for i, title := range titles {
		userIdx := i%5 + 1
		courses = append(courses, model.Course{
			ID:          int64(i + 1),
			Title:       title,
			Description: fmt.Sprintf("%s 코스입니다.", title),
			Thumbnail:   fmt.Sprintf("https://cdn.dateroad.example/courses/%d.jpg", i+1),
			Cost:        int64((i%4 + 1) * 10000),
			Time:        fmt.Sprintf("%d시간", i%3+2),
			Date:        fmt.Sprintf("2024-06-%02d", i%28+1),
			StartAt:     "14:00",
			Country:     "대한민국",
			City:        cities[i],
			User: model.CourseUser{
				ID:   int64(userIdx),
				Name: fixtureUserNames[userIdx-1],
			},
			CreatedAt: fmt.Sprintf("2024-05-%02dT09:00:00", i%28+1),
			UpdatedAt: fmt.Sprintf("2024-05-%02dT09:00:00", i%28+1),
		})
	}
	return courses
}

var fixtureUserNames = []string{"김민지", "이준호", "박서연", "최지우", "정하늘"}

// fixtureUsers は決定的なデモ用ユーザーデータを生成する。
func fixtureUsers() []model.User {
	platforms := []string{"KAKAO", "APPLE", "KAKAO", "KAKAO", "APPLE"}

	users := make([]model.User, 0, len(fixtureUserNames))
	for i, name := range fixtureUserNames {
		status := model.UserStatusActive
		if i == 4 {
			status = model.UserStatusBanned
		}
		users = append(users, model.User{
			ID:             int64(i + 1),
			Name:           name,
			PlatformUserID: fmt.Sprintf("platform-%04d", i+1),
			Platform:       platforms[i],
			ImageURL:       fmt.Sprintf("https://cdn.dateroad.example/users/%d.png", i+1),
			Status:         status,
			Free:           i % 3,
			Point:          (i + 1) * 500,
			CreatedAt:      fmt.Sprintf("2024-04-%02dT10:00:00", i+1),
			UpdatedAt:      fmt.Sprintf("2024-04-%02dT10:00:00", i+1),
		})
	}
	return users
}
