package models

// SectionEnrollmentCount ranks a section by how many enrollments it holds.
type SectionEnrollmentCount struct {
	CourseCode      string `db:"course_code" json:"course_code"`
	CourseName      string `db:"course_name" json:"course_name"`
	SectionCode     string `db:"section_code" json:"section_code"`
	EnrollmentCount int    `db:"enrollment_count" json:"enrollment_count"`
}

// DepartmentStats aggregates per-department counts. NumStudents is the
// best-effort major-name match and is approximate by design.
type DepartmentStats struct {
	DepartmentName string `db:"department_name" json:"department_name"`
	NumInstructors int    `db:"num_instructors" json:"num_instructors"`
	NumCourses     int    `db:"num_courses" json:"num_courses"`
	NumSections    int    `db:"num_sections" json:"num_sections"`
	NumStudents    int    `db:"num_students" json:"num_students"`
}

// MajorStudent is one roster line of the students-by-major report.
type MajorStudent struct {
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
}

// RankedStudent is one line of the top-GPA report. GPA is credit-weighted
// and rounded to two decimal places.
type RankedStudent struct {
	StudentID int64   `json:"student_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Major     string  `json:"major"`
	GPA       float64 `json:"gpa"`
}

// GradedEnrollmentRow is the raw gateway row the GPA aggregation consumes:
// one graded-or-ungraded enrollment with its credit weight.
type GradedEnrollmentRow struct {
	StudentID int64   `db:"student_id"`
	FirstName string  `db:"first_name"`
	LastName  string  `db:"last_name"`
	Major     string  `db:"major"`
	Grade     *string `db:"grade"`
	Credits   int     `db:"credits"`
}

// TranscriptRow is one transcript line. CumulativeGPA repeats on every row
// so each row renders standalone; it is nil when the student has no
// gradeable credits.
type TranscriptRow struct {
	CourseCode    string   `db:"course_code" json:"course_code"`
	CourseName    string   `db:"course_name" json:"course_name"`
	Credits       int      `db:"credits" json:"credits"`
	Term          string   `db:"term" json:"term"`
	Year          int      `db:"year" json:"year"`
	Grade         *string  `db:"grade" json:"grade,omitempty"`
	CumulativeGPA *float64 `json:"cumulative_gpa,omitempty"`
}

// ReportOverview bundles every report for the combined reports endpoint.
// Slices stay empty when their selector parameter was not supplied.
type ReportOverview struct {
	BusiestSections   []SectionEnrollmentCount `json:"busiest_sections"`
	DepartmentStats   []DepartmentStats        `json:"department_stats"`
	TopStudents       []RankedStudent          `json:"top_gpa_students"`
	StudentsByMajor   []MajorStudent           `json:"students_by_major"`
	SelectedMajor     string                   `json:"selected_major,omitempty"`
	Transcript        []TranscriptRow          `json:"student_transcript"`
	SelectedStudentID *int64                   `json:"selected_student_id,omitempty"`
}
