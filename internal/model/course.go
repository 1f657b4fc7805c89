package model

// CourseUser はコースの所有ユーザー参照。
// 上流のフラットなuserId/userNameを持ち上げたネスト形。
type CourseUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Course はデートコースを表す。
// 上流APIが管理するエンティティのパススルーDTOであり、
// このシステム側で不変条件は強制しない。
// 削除はソフトデリート（DeletedAtの有無で判定）。
type Course struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	Cost        int64      `json:"cost"`
	Time        string     `json:"time"`
	Date        string     `json:"date"`
	StartAt     string     `json:"startAt"`
	Country     string     `json:"country"`
	City        string     `json:"city"`
	User        CourseUser `json:"user"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
	DeletedAt   *string    `json:"deletedAt"`
}

// CoursePage はコース一覧のページングエンベロープ。
// ページ番号は0始まり。
type CoursePage struct {
	Content       []Course `json:"content"`
	TotalPages    int      `json:"totalPages"`
	TotalElements int      `json:"totalElements"`
	Size          int      `json:"size"`
	Number        int      `json:"number"`
}
