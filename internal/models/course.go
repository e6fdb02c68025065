package models

// Course is a catalog entry offered by a department.
type Course struct {
	ID           int64  `db:"course_id" json:"course_id"`
	DepartmentID *int64 `db:"department_id" json:"department_id,omitempty"`
	Code         string `db:"course_code" json:"course_code"`
	Name         string `db:"course_name" json:"course_name"`
	Credits      int    `db:"credits" json:"credits"`
}

// CourseDetail enriches Course with the joined department name.
type CourseDetail struct {
	Course
	DepartmentName *string `db:"department_name" json:"department_name,omitempty"`
}
