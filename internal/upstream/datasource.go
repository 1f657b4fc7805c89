// Package upstream は上流管理APIへのアクセスを提供する。
// 実際のAPIへプロキシするClientと、デモ用のFixtureSourceの2実装を持つ。
package upstream

import "context"

// LoginResult はログイン処理の結果を表す。
// 上流のステータスコードとボディをそのまま保持し、
// ハンドラーは両方を無加工でクライアントへ返す。
type LoginResult struct {
	Status int
	Body   any
}

// DataSource は管理APIの操作群を定義するインターフェース。
// ハンドラー層はこのインターフェースのみに依存し、
// プロキシ実装とフィクスチャ実装を設定で切り替える。
//
// 一覧・詳細系の戻り値はanyで、JSONエンコード可能な値を返す。
// エラーは*model.ProxyErrorに正規化して返す。
type DataSource interface {
	// Login は認証リクエストを処理する。
	// 上流のステータスとボディを成否にかかわらずそのまま返す。
	Login(ctx context.Context, body []byte) (*LoginResult, error)

	// ListCourses はコース一覧を取得し、整形した結果を返す。
	ListCourses(ctx context.Context, token string, page, size int, search string) (any, error)

	// DeleteCourse は指定IDのコースを削除する。
	DeleteCourse(ctx context.Context, token, courseID string) error

	// ListUsers はユーザー一覧を取得する。
	ListUsers(ctx context.Context, token string, page, size int, search string) (any, error)

	// UserCourses は指定ユーザーが作成したコース一覧を取得し、整形した結果を返す。
	UserCourses(ctx context.Context, token, userID string) (any, error)

	// BanUser は指定ユーザーを停止し、上流の応答ボディを返す。
	BanUser(ctx context.Context, token, userID string) (any, error)

	// UserDetail は指定ユーザーの詳細情報を取得する。
	UserDetail(ctx context.Context, token, userID string) (any, error)

	// Stats はダッシュボードの統計情報を取得する。
	Stats(ctx context.Context, token string) (any, error)
}
