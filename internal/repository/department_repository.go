package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/registrar-dev/academic-records-api/internal/models"
	"github.com/registrar-dev/academic-records-api/internal/query"
)

var departmentQuerySpec = query.Spec{
	DefaultSort: "department_id",
	Sorts: map[string]string{
		"department_id":   "d.department_id",
		"department_name": "d.department_name",
		"office_location": "d.office_location",
		"chair_name":      "chair_name",
	},
	SearchColumns: []string{"d.department_name", "d.office_location"},
}

// DepartmentRepository handles persistence of departments.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository constructs the repository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List returns departments with the resolved chair name. The chair join is
// left outer: a department keeps appearing after its chair was deleted and
// the reference nullified.
func (r *DepartmentRepository) List(ctx context.Context, params models.ListParams) ([]models.DepartmentDetail, int, error) {
	d := query.Build(departmentQuerySpec, params.SortBy, params.SortOrder, params.Search)

	base := `FROM department d
LEFT JOIN instructor i ON i.instructor_id = d.chair_id`
	filter, args := d.Filter(departmentQuerySpec, 1)
	if filter != "" {
		base += " WHERE " + filter
	}

	_, size, offset := params.Window()
	stmt := fmt.Sprintf(`SELECT d.department_id, d.department_name, d.office_location, d.chair_id,
        i.first_name || ' ' || i.last_name AS chair_name %s %s LIMIT %d OFFSET %d`,
		base, d.OrderClause(), size, offset)

	var departments []models.DepartmentDetail
	if err := r.db.SelectContext(ctx, &departments, stmt, args...); err != nil {
		return nil, 0, fmt.Errorf("list departments: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count departments: %w", err)
	}
	return departments, total, nil
}

// FindByID returns a department by id.
func (r *DepartmentRepository) FindByID(ctx context.Context, id int64) (*models.Department, error) {
	const stmt = `SELECT department_id, department_name, office_location, chair_id
        FROM department WHERE department_id = $1`
	var department models.Department
	if err := r.db.GetContext(ctx, &department, stmt, id); err != nil {
		return nil, err
	}
	return &department, nil
}

// Create inserts a department; the store assigns the id.
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	const stmt = `INSERT INTO department (department_name, office_location, chair_id)
        VALUES ($1, $2, $3) RETURNING department_id`
	if err := r.db.GetContext(ctx, &department.ID, stmt,
		department.Name, department.OfficeLocation, department.ChairID); err != nil {
		return fmt.Errorf("create department: %w", err)
	}
	return nil
}
