package dashboard

import "context"

// 破壊的操作の確認プロンプト。元ダッシュボードのconfirmダイアログの文言。
const (
	promptDeleteCourse = "정말로 이 코스를 삭제하시겠습니까?"
	promptBanUser      = "정말로 이 사용자를 정지시키겠습니까?"
)

// Confirmer は破壊的操作の実行前確認インターフェース。
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc は関数をConfirmerとして使用するためのアダプタ。
type ConfirmerFunc func(prompt string) bool

// Confirm はラップした関数を呼び出す。
func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// courseDeleter はコース削除操作のインターフェース。
type courseDeleter interface {
	DeleteCourse(ctx context.Context, courseID string) error
}

// userBanner はユーザー停止操作のインターフェース。
type userBanner interface {
	BanUser(ctx context.Context, userID string) error
}

// Actions は確認付きの破壊的操作を提供する。
// 楽観的更新は行わず、成功時にreloadコールバックで一覧を再取得する。
type Actions struct {
	deleter   courseDeleter
	banner    userBanner
	confirmer Confirmer
}

// NewActions はActionsの新しいインスタンスを生成する。
func NewActions(client *Client, confirmer Confirmer) *Actions {
	return &Actions{
		deleter:   client,
		banner:    client,
		confirmer: confirmer,
	}
}

// DeleteCourse は確認のうえコースを削除し、成功時に一覧を再取得する。
// 確認がキャンセルされた場合は何もせず(false, nil)を返す。
// 削除が失敗した場合、一覧の状態には触れない。
func (a *Actions) DeleteCourse(ctx context.Context, courseID string, reload func(context.Context) error) (bool, error) {
	if !a.confirmer.Confirm(promptDeleteCourse) {
		return false, nil
	}

	if err := a.deleter.DeleteCourse(ctx, courseID); err != nil {
		return false, err
	}

	return true, reload(ctx)
}

// BanUser は確認のうえユーザーを停止し、成功時に一覧を再取得する。
func (a *Actions) BanUser(ctx context.Context, userID string, reload func(context.Context) error) (bool, error) {
	if !a.confirmer.Confirm(promptBanUser) {
		return false, nil
	}

	if err := a.banner.BanUser(ctx, userID); err != nil {
		return false, err
	}

	return true, reload(ctx)
}
