package model

// Course 学生已注册的课程，来自上游课程列表
type Course struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
