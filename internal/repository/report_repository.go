package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/registrar-dev/academic-records-api/internal/models"
)

// ReportRepository exposes the read-optimised row sets the aggregation
// engine consumes. It never mutates anything.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// BusiestSections counts enrollments per section and returns the top ten.
// Inner joins mean a section with zero enrollments never appears.
func (r *ReportRepository) BusiestSections(ctx context.Context) ([]models.SectionEnrollmentCount, error) {
	const stmt = `SELECT c.course_code, c.course_name, s.section_code,
        COUNT(e.enrollment_id) AS enrollment_count
        FROM section s
        JOIN course c ON c.course_id = s.course_id
        JOIN enrollment e ON e.section_id = s.section_id
        GROUP BY s.section_id, c.course_code, c.course_name, s.section_code
        ORDER BY enrollment_count DESC, s.section_code ASC
        LIMIT 10`
	var sections []models.SectionEnrollmentCount
	if err := r.db.SelectContext(ctx, &sections, stmt); err != nil {
		return nil, fmt.Errorf("busiest sections: %w", err)
	}
	return sections, nil
}

// DepartmentStats counts distinct instructors, courses, sections and
// major-matched students per department. Left joins keep departments with
// zero instructors in the result. The student match is an exact string
// comparison on major and is best-effort only.
func (r *ReportRepository) DepartmentStats(ctx context.Context) ([]models.DepartmentStats, error) {
	const stmt = `SELECT d.department_name,
        COUNT(DISTINCT i.instructor_id) AS num_instructors,
        COUNT(DISTINCT c.course_id) AS num_courses,
        COUNT(DISTINCT sec.section_id) AS num_sections,
        COUNT(DISTINCT st.student_id) AS num_students
        FROM department d
        LEFT JOIN instructor i ON i.department_id = d.department_id
        LEFT JOIN course c ON c.department_id = d.department_id
        LEFT JOIN section sec ON sec.course_id = c.course_id
        LEFT JOIN student st ON st.major = d.department_name
        GROUP BY d.department_name
        ORDER BY num_instructors DESC, d.department_name ASC`
	var departments []models.DepartmentStats
	if err := r.db.SelectContext(ctx, &departments, stmt); err != nil {
		return nil, fmt.Errorf("department stats: %w", err)
	}
	return departments, nil
}

// StudentsByMajor returns the roster of students whose major exactly
// matches the given name.
func (r *ReportRepository) StudentsByMajor(ctx context.Context, major string) ([]models.MajorStudent, error) {
	const stmt = `SELECT first_name, last_name, email FROM student WHERE major = $1
        ORDER BY last_name, first_name`
	var students []models.MajorStudent
	if err := r.db.SelectContext(ctx, &students, stmt, major); err != nil {
		return nil, fmt.Errorf("students by major: %w", err)
	}
	return students, nil
}

// GradedEnrollments returns every enrollment joined with its credit weight,
// one row per enrollment across all students. The GPA aggregation happens
// in the service so the grade scale lives in one place.
func (r *ReportRepository) GradedEnrollments(ctx context.Context) ([]models.GradedEnrollmentRow, error) {
	const stmt = `SELECT st.student_id, st.first_name, st.last_name, st.major, e.grade, c.credits
        FROM student st
        JOIN enrollment e ON e.student_id = st.student_id
        JOIN section s ON s.section_id = e.section_id
        JOIN course c ON c.course_id = s.course_id`
	var rows []models.GradedEnrollmentRow
	if err := r.db.SelectContext(ctx, &rows, stmt); err != nil {
		return nil, fmt.Errorf("graded enrollments: %w", err)
	}
	return rows, nil
}

// TranscriptRows returns one row per enrollment for a student. Ordering and
// the cumulative GPA are applied by the service.
func (r *ReportRepository) TranscriptRows(ctx context.Context, studentID int64) ([]models.TranscriptRow, error) {
	const stmt = `SELECT c.course_code, c.course_name, c.credits, s.term, s.year, e.grade
        FROM enrollment e
        JOIN section s ON s.section_id = e.section_id
        JOIN course c ON c.course_id = s.course_id
        WHERE e.student_id = $1`
	var rows []models.TranscriptRow
	if err := r.db.SelectContext(ctx, &rows, stmt, studentID); err != nil {
		return nil, fmt.Errorf("transcript rows: %w", err)
	}
	return rows, nil
}
