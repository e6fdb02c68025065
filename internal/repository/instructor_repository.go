package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/registrar-dev/academic-records-api/internal/models"
	"github.com/registrar-dev/academic-records-api/internal/query"
)

var instructorQuerySpec = query.Spec{
	DefaultSort: "instructor_id",
	Sorts: map[string]string{
		"instructor_id":   "i.instructor_id",
		"first_name":      "i.first_name",
		"last_name":       "i.last_name",
		"email":           "i.email",
		"department_name": "d.department_name",
	},
	SearchColumns: []string{"i.first_name", "i.last_name", "i.email", "d.department_name"},
}

// InstructorRepository handles persistence of instructors.
type InstructorRepository struct {
	db *sqlx.DB
}

// NewInstructorRepository constructs the repository.
func NewInstructorRepository(db *sqlx.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// List returns instructors with their department, when still set.
func (r *InstructorRepository) List(ctx context.Context, params models.ListParams) ([]models.InstructorDetail, int, error) {
	d := query.Build(instructorQuerySpec, params.SortBy, params.SortOrder, params.Search)

	base := `FROM instructor i
LEFT JOIN department d ON d.department_id = i.department_id`
	filter, args := d.Filter(instructorQuerySpec, 1)
	if filter != "" {
		base += " WHERE " + filter
	}

	_, size, offset := params.Window()
	stmt := fmt.Sprintf(`SELECT i.instructor_id, i.first_name, i.last_name, i.email, i.department_id,
        d.department_name %s %s LIMIT %d OFFSET %d`, base, d.OrderClause(), size, offset)

	var instructors []models.InstructorDetail
	if err := r.db.SelectContext(ctx, &instructors, stmt, args...); err != nil {
		return nil, 0, fmt.Errorf("list instructors: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count instructors: %w", err)
	}
	return instructors, total, nil
}

// FindByID returns an instructor by id.
func (r *InstructorRepository) FindByID(ctx context.Context, id int64) (*models.Instructor, error) {
	const stmt = `SELECT instructor_id, first_name, last_name, email, department_id
        FROM instructor WHERE instructor_id = $1`
	var instructor models.Instructor
	if err := r.db.GetContext(ctx, &instructor, stmt, id); err != nil {
		return nil, err
	}
	return &instructor, nil
}

// Create inserts an instructor; the store assigns the id.
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	const stmt = `INSERT INTO instructor (first_name, last_name, email, department_id)
        VALUES ($1, $2, $3, $4) RETURNING instructor_id`
	if err := r.db.GetContext(ctx, &instructor.ID, stmt,
		instructor.FirstName, instructor.LastName, instructor.Email, instructor.DepartmentID); err != nil {
		return fmt.Errorf("create instructor: %w", err)
	}
	return nil
}
