package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/registrar-dev/academic-records-api/internal/models"
	"github.com/registrar-dev/academic-records-api/internal/query"
)

var courseQuerySpec = query.Spec{
	DefaultSort: "course_id",
	Sorts: map[string]string{
		"course_id":       "c.course_id",
		"course_code":     "c.course_code",
		"course_name":     "c.course_name",
		"credits":         "c.credits",
		"department_name": "d.department_name",
	},
	SearchColumns: []string{"c.course_name", "c.course_code"},
}

// CourseRepository handles persistence of courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses with their department, when still set.
func (r *CourseRepository) List(ctx context.Context, params models.ListParams) ([]models.CourseDetail, int, error) {
	d := query.Build(courseQuerySpec, params.SortBy, params.SortOrder, params.Search)

	base := `FROM course c
LEFT JOIN department d ON d.department_id = c.department_id`
	filter, args := d.Filter(courseQuerySpec, 1)
	if filter != "" {
		base += " WHERE " + filter
	}

	_, size, offset := params.Window()
	stmt := fmt.Sprintf(`SELECT c.course_id, c.department_id, c.course_code, c.course_name, c.credits,
        d.department_name %s %s LIMIT %d OFFSET %d`, base, d.OrderClause(), size, offset)

	var courses []models.CourseDetail
	if err := r.db.SelectContext(ctx, &courses, stmt, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return courses, total, nil
}

// FindByID returns a course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	const stmt = `SELECT course_id, department_id, course_code, course_name, credits
        FROM course WHERE course_id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, stmt, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a course; the store assigns the id.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const stmt = `INSERT INTO course (department_id, course_code, course_name, credits)
        VALUES ($1, $2, $3, $4) RETURNING course_id`
	if err := r.db.GetContext(ctx, &course.ID, stmt,
		course.DepartmentID, course.Code, course.Name, course.Credits); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}
