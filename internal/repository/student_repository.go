package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/registrar-dev/academic-records-api/internal/models"
	"github.com/registrar-dev/academic-records-api/internal/query"
)

// studentQuerySpec fixes the sortable and searchable fields for students.
var studentQuerySpec = query.Spec{
	DefaultSort: "student_id",
	Sorts: map[string]string{
		"student_id":    "student_id",
		"first_name":    "first_name",
		"last_name":     "last_name",
		"email":         "email",
		"major":         "major",
		"date_of_birth": "date_of_birth",
	},
	SearchColumns: []string{"first_name", "last_name", "email"},
}

// StudentRepository handles persistence of students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the validated descriptor built from params.
func (r *StudentRepository) List(ctx context.Context, params models.ListParams) ([]models.Student, int, error) {
	d := query.Build(studentQuerySpec, params.SortBy, params.SortOrder, params.Search)

	base := "FROM student"
	filter, args := d.Filter(studentQuerySpec, 1)
	if filter != "" {
		base += " WHERE " + filter
	}

	_, size, offset := params.Window()
	stmt := fmt.Sprintf(`SELECT student_id, first_name, last_name, email, major, date_of_birth
        %s %s LIMIT %d OFFSET %d`, base, d.OrderClause(), size, offset)

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, stmt, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID returns a student by id.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	const stmt = `SELECT student_id, first_name, last_name, email, major, date_of_birth
        FROM student WHERE student_id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, stmt, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a student; the store assigns the id.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const stmt = `INSERT INTO student (first_name, last_name, email, major, date_of_birth)
        VALUES ($1, $2, $3, $4, $5) RETURNING student_id`
	if err := r.db.GetContext(ctx, &student.ID, stmt,
		student.FirstName, student.LastName, student.Email, student.Major, student.DateOfBirth); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}
