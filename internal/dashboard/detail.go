package dashboard

import (
	"context"
	"sync"

	"github.com/dateroad/admin-gateway/internal/jsonfield"
)

// UserDetailView はユーザー詳細モーダルの表示データ。
// 詳細情報とコース一覧を並行取得した結合結果を保持する。
type UserDetailView struct {
	Detail  map[string]any
	Courses []any
}

// Name は表示名を返す。欠落時は空文字列。
func (v *UserDetailView) Name() string {
	return jsonfield.String(v.Detail, "name", "")
}

// Status はアカウント状態を返す。欠落時は空文字列。
func (v *UserDetailView) Status() string {
	return jsonfield.String(v.Detail, "status", "")
}

// Point はポイント残高を返す。欠落時は0。
func (v *UserDetailView) Point() int64 {
	return jsonfield.Int64(v.Detail, "point", 0)
}

// FetchUserDetailView はユーザー詳細とコース一覧を並行取得して結合する。
// どちらか一方でも失敗した場合は結合全体が失敗する。
func (c *Client) FetchUserDetailView(ctx context.Context, userID string) (*UserDetailView, error) {
	var (
		wg         sync.WaitGroup
		detail     map[string]any
		courses    []any
		detailErr  error
		coursesErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		detail, detailErr = c.UserDetail(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		courses, coursesErr = c.UserCourses(ctx, userID)
	}()
	wg.Wait()

	if detailErr != nil {
		return nil, detailErr
	}
	if coursesErr != nil {
		return nil, coursesErr
	}

	return &UserDetailView{
		Detail:  detail,
		Courses: courses,
	}, nil
}
