package model

// UserStatus はユーザーのアカウント状態。
type UserStatus string

const (
	// UserStatusActive は通常状態のユーザー。
	UserStatusActive UserStatus = "ACTIVE"
	// UserStatusBanned は停止済みのユーザー。
	UserStatusBanned UserStatus = "BANNED"
)

// User は管理画面から参照するユーザーアカウント。
// 上流APIが管理するエンティティのパススルーDTO。
type User struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	PlatformUserID string     `json:"platformUserId"`
	Platform       string     `json:"platform"`
	ImageURL       string     `json:"imageUrl,omitempty"`
	Status         UserStatus `json:"status"`
	Free           int        `json:"free"`  // 無料利用クレジット残数
	Point          int        `json:"point"` // ポイント残高
	CreatedAt      string     `json:"createdAt"`
	UpdatedAt      string     `json:"updatedAt"`
}

// UserPage はユーザー一覧のページングエンベロープ。ページ番号は0始まり。
type UserPage struct {
	Content       []User `json:"content"`
	TotalPages    int    `json:"totalPages"`
	TotalElements int    `json:"totalElements"`
	Size          int    `json:"size"`
	Number        int    `json:"number"`
}
