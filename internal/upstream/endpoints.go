package upstream

import "fmt"

// 上流管理APIのパステンプレート。
// 元ダッシュボードの lib/config.ts endpoints 定義に対応する。
const (
	pathLogin   = "/api/v1/admin/login"
	pathCourses = "/api/v1/admin/courses"
	pathUsers   = "/api/v1/admin/users"
	pathStats   = "/api/v1/admin/stats"
)

func pathCourse(courseID string) string {
	return fmt.Sprintf("%s/%s", pathCourses, courseID)
}

func pathUserCourses(userID string) string {
	return fmt.Sprintf("%s/%s/courses", pathUsers, userID)
}

func pathUserBan(userID string) string {
	return fmt.Sprintf("%s/%s/ban", pathUsers, userID)
}

func pathUserDetail(userID string) string {
	return fmt.Sprintf("%s/%s/detail", pathUsers, userID)
}
