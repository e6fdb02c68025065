package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/registrar-dev/academic-records-api/internal/models"
	"github.com/registrar-dev/academic-records-api/internal/query"
)

var enrollmentQuerySpec = query.Spec{
	DefaultSort: "enrollment_id",
	Sorts: map[string]string{
		"enrollment_id": "e.enrollment_id",
		"student_name":  "student_name",
		"course_code":   "c.course_code",
		"course_name":   "c.course_name",
		"grade":         "e.grade",
	},
	SearchColumns: []string{"(st.first_name || ' ' || st.last_name)", "c.course_code", "c.course_name"},
}

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// List returns enrollments with student and course context.
func (r *EnrollmentRepository) List(ctx context.Context, params models.ListParams) ([]models.EnrollmentDetail, int, error) {
	d := query.Build(enrollmentQuerySpec, params.SortBy, params.SortOrder, params.Search)

	base := `FROM enrollment e
JOIN student st ON st.student_id = e.student_id
JOIN section s ON s.section_id = e.section_id
JOIN course c ON c.course_id = s.course_id`
	filter, args := d.Filter(enrollmentQuerySpec, 1)
	if filter != "" {
		base += " WHERE " + filter
	}

	_, size, offset := params.Window()
	stmt := fmt.Sprintf(`SELECT e.enrollment_id, e.student_id, e.section_id, e.grade,
        st.first_name || ' ' || st.last_name AS student_name, c.course_code, c.course_name
        %s %s LIMIT %d OFFSET %d`, base, d.OrderClause(), size, offset)

	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, stmt, args...); err != nil {
		return nil, 0, fmt.Errorf("list enrollments: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count enrollments: %w", err)
	}
	return enrollments, total, nil
}

// FindByID returns an enrollment by id.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	const stmt = `SELECT enrollment_id, student_id, section_id, grade
        FROM enrollment WHERE enrollment_id = $1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, stmt, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Create inserts an enrollment; the store assigns the id. Student and
// section references must resolve at creation time; the foreign keys
// reject dangling ids.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	const stmt = `INSERT INTO enrollment (student_id, section_id, grade)
        VALUES ($1, $2, $3) RETURNING enrollment_id`
	if err := r.db.GetContext(ctx, &enrollment.ID, stmt,
		enrollment.StudentID, enrollment.SectionID, enrollment.Grade); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}
