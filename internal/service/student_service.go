package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/registrar-dev/academic-records-api/internal/models"
	appErrors "github.com/registrar-dev/academic-records-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, params models.ListParams) ([]models.Student, int, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
}

type studentCascade interface {
	DeleteStudent(ctx context.Context, id int64) error
}

// CreateStudentRequest holds payload for registering students.
type CreateStudentRequest struct {
	FirstName   string    `json:"first_name" validate:"required"`
	LastName    string    `json:"last_name" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	Major       string    `json:"major"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"required"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	cascade   studentCascade
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, cascade studentCascade, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cascade: cascade, validator: validate, logger: logger}
}

// List returns students and pagination metadata. Invalid sort input is
// corrected inside the repository's allow-list, never rejected.
func (s *StudentService) List(ctx context.Context, params models.ListParams) ([]models.Student, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, nil, appErrors.FromDB(err, "failed to list students")
	}
	return emptyIfNil(students), paginationFor(params, total), nil
}

// Create registers a new student. Duplicate emails surface as conflicts via
// the unique index, not a pre-check.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := &models.Student{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Major:       req.Major,
		DateOfBirth: req.DateOfBirth,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.FromDB(err, "email already used")
	}
	return student, nil
}

// Delete removes a student and their enrollments in one transaction.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.cascade.DeleteStudent(ctx, id); err != nil {
		return deleteError(err, "student not found", "failed to delete student")
	}
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return nil
}

func paginationFor(params models.ListParams, total int) *models.Pagination {
	page, size, _ := params.Window()
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}

// emptyIfNil keeps list payloads encoding as empty JSON arrays instead of
// null when nothing matched.
func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// deleteError maps a cascade failure onto the error taxonomy: unknown ids
// are a user-facing not-found, connection failures pass through, and
// anything that broke mid-sequence is an integrity failure with the
// transaction already rolled back.
func deleteError(err error, notFoundMsg, integrityMsg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFoundMsg)
	}
	dbErr := appErrors.FromDB(err, integrityMsg)
	if dbErr.Code == appErrors.ErrUnreachable.Code {
		return dbErr
	}
	return appErrors.Wrap(err, appErrors.ErrIntegrity.Code, appErrors.ErrIntegrity.Status, integrityMsg)
}
