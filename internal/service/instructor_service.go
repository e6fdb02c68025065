package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/registrar-dev/academic-records-api/internal/models"
	appErrors "github.com/registrar-dev/academic-records-api/pkg/errors"
)

type instructorRepository interface {
	List(ctx context.Context, params models.ListParams) ([]models.InstructorDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.Instructor, error)
	Create(ctx context.Context, instructor *models.Instructor) error
}

type instructorCascade interface {
	DeleteInstructor(ctx context.Context, id int64) error
}

// CreateInstructorRequest holds payload for adding instructors.
type CreateInstructorRequest struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	DepartmentID *int64 `json:"department_id"`
}

// InstructorService handles instructor use-cases.
type InstructorService struct {
	repo      instructorRepository
	cascade   instructorCascade
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInstructorService constructs the instructor service.
func NewInstructorService(repo instructorRepository, cascade instructorCascade, validate *validator.Validate, logger *zap.Logger) *InstructorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{repo: repo, cascade: cascade, validator: validate, logger: logger}
}

// List returns instructors and pagination metadata.
func (s *InstructorService) List(ctx context.Context, params models.ListParams) ([]models.InstructorDetail, *models.Pagination, error) {
	instructors, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, nil, appErrors.FromDB(err, "failed to list instructors")
	}
	return emptyIfNil(instructors), paginationFor(params, total), nil
}

// Create adds a new instructor.
func (s *InstructorService) Create(ctx context.Context, req CreateInstructorRequest) (*models.Instructor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	instructor := &models.Instructor{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
	}
	if err := s.repo.Create(ctx, instructor); err != nil {
		return nil, appErrors.FromDB(err, "email already used or department unknown")
	}
	return instructor, nil
}

// Delete removes an instructor after nullifying chair and section
// references; departments and sections survive.
func (s *InstructorService) Delete(ctx context.Context, id int64) error {
	if err := s.cascade.DeleteInstructor(ctx, id); err != nil {
		return deleteError(err, "instructor not found", "failed to delete instructor")
	}
	s.logger.Info("instructor deleted", zap.Int64("instructor_id", id))
	return nil
}
