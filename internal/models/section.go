package models

// Section is a scheduled offering of a course in a given term. The course
// reference always resolves; the instructor reference may become null after
// an instructor deletion.
type Section struct {
	ID           int64  `db:"section_id" json:"section_id"`
	CourseID     int64  `db:"course_id" json:"course_id"`
	InstructorID *int64 `db:"instructor_id" json:"instructor_id,omitempty"`
	SectionCode  string `db:"section_code" json:"section_code"`
	Term         string `db:"term" json:"term"`
	Year         int    `db:"year" json:"year"`
	Days         string `db:"days" json:"days"`
	Time         string `db:"time" json:"time"`
	Capacity     int    `db:"capacity" json:"capacity"`
	Location     string `db:"location" json:"location"`
}

// SectionDetail enriches Section with course and instructor context.
type SectionDetail struct {
	Section
	CourseCode     string  `db:"course_code" json:"course_code"`
	InstructorName *string `db:"instructor_name" json:"instructor_name,omitempty"`
}
