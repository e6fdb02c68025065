package models

// Enrollment links a student to a section. Grade is null while the course
// is in progress or no grade was recorded.
type Enrollment struct {
	ID        int64   `db:"enrollment_id" json:"enrollment_id"`
	StudentID int64   `db:"student_id" json:"student_id"`
	SectionID int64   `db:"section_id" json:"section_id"`
	Grade     *string `db:"grade" json:"grade,omitempty"`
}

// EnrollmentDetail enriches Enrollment with student and course context.
type EnrollmentDetail struct {
	Enrollment
	StudentName string `db:"student_name" json:"student_name"`
	CourseCode  string `db:"course_code" json:"course_code"`
	CourseName  string `db:"course_name" json:"course_name"`
}
