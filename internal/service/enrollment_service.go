package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/registrar-dev/academic-records-api/internal/models"
	appErrors "github.com/registrar-dev/academic-records-api/pkg/errors"
)

type enrollmentRepository interface {
	List(ctx context.Context, params models.ListParams) ([]models.EnrollmentDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
}

type enrollmentCascade interface {
	DeleteEnrollment(ctx context.Context, id int64) error
}

// CreateEnrollmentRequest holds payload for enrolling a student in a
// section. Grade stays null for in-progress enrollments; off-scale tokens
// are stored but never count toward GPA.
type CreateEnrollmentRequest struct {
	StudentID int64   `json:"student_id" validate:"required"`
	SectionID int64   `json:"section_id" validate:"required"`
	Grade     *string `json:"grade"`
}

// EnrollmentService handles enrollment use-cases.
type EnrollmentService struct {
	repo      enrollmentRepository
	cascade   enrollmentCascade
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(repo enrollmentRepository, cascade enrollmentCascade, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, cascade: cascade, validator: validate, logger: logger}
}

// List returns enrollments and pagination metadata.
func (s *EnrollmentService) List(ctx context.Context, params models.ListParams) ([]models.EnrollmentDetail, *models.Pagination, error) {
	enrollments, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, nil, appErrors.FromDB(err, "failed to list enrollments")
	}
	return emptyIfNil(enrollments), paginationFor(params, total), nil
}

// Create enrolls a student in a section. Both references must resolve at
// creation time; the foreign keys reject dangling ids.
func (s *EnrollmentService) Create(ctx context.Context, req CreateEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	enrollment := &models.Enrollment{
		StudentID: req.StudentID,
		SectionID: req.SectionID,
		Grade:     req.Grade,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, appErrors.FromDB(err, "student or section unknown")
	}
	return enrollment, nil
}

// Delete removes a single enrollment.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	if err := s.cascade.DeleteEnrollment(ctx, id); err != nil {
		return deleteError(err, "enrollment not found", "failed to delete enrollment")
	}
	s.logger.Info("enrollment deleted", zap.Int64("enrollment_id", id))
	return nil
}
