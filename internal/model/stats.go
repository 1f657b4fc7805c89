package model

// Stats は管理ダッシュボードの統計サマリー。
// 上流の /api/v1/admin/stats のパススルーDTO。
type Stats struct {
	UserCount       int `json:"userCount"`
	CourseCount     int `json:"courseCount"`
	BannedUserCount int `json:"bannedUserCount"`
	PointTotal      int `json:"pointTotal"`
}
