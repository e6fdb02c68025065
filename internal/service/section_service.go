package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/registrar-dev/academic-records-api/internal/models"
	appErrors "github.com/registrar-dev/academic-records-api/pkg/errors"
)

type sectionRepository interface {
	List(ctx context.Context, params models.ListParams) ([]models.SectionDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.Section, error)
	Create(ctx context.Context, section *models.Section) error
}

type sectionCascade interface {
	DeleteSection(ctx context.Context, id int64) error
}

// CreateSectionRequest holds payload for scheduling sections.
type CreateSectionRequest struct {
	CourseID     int64  `json:"course_id" validate:"required"`
	InstructorID *int64 `json:"instructor_id"`
	SectionCode  string `json:"section_code" validate:"required"`
	Term         string `json:"term" validate:"required,oneof=Fall Winter Spring Summer"`
	Year         int    `json:"year" validate:"required,gte=1900"`
	Days         string `json:"days"`
	Time         string `json:"time"`
	Capacity     int    `json:"capacity" validate:"gte=0"`
	Location     string `json:"location"`
}

// SectionService handles section use-cases.
type SectionService struct {
	repo      sectionRepository
	cascade   sectionCascade
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSectionService constructs the section service.
func NewSectionService(repo sectionRepository, cascade sectionCascade, validate *validator.Validate, logger *zap.Logger) *SectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SectionService{repo: repo, cascade: cascade, validator: validate, logger: logger}
}

// List returns sections and pagination metadata.
func (s *SectionService) List(ctx context.Context, params models.ListParams) ([]models.SectionDetail, *models.Pagination, error) {
	sections, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, nil, appErrors.FromDB(err, "failed to list sections")
	}
	return emptyIfNil(sections), paginationFor(params, total), nil
}

// Create schedules a new section. The course reference must resolve; the
// foreign key rejects unknown course ids.
func (s *SectionService) Create(ctx context.Context, req CreateSectionRequest) (*models.Section, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}
	section := &models.Section{
		CourseID:     req.CourseID,
		InstructorID: req.InstructorID,
		SectionCode:  req.SectionCode,
		Term:         req.Term,
		Year:         req.Year,
		Days:         req.Days,
		Time:         req.Time,
		Capacity:     req.Capacity,
		Location:     req.Location,
	}
	if err := s.repo.Create(ctx, section); err != nil {
		return nil, appErrors.FromDB(err, "course or instructor unknown")
	}
	return section, nil
}

// Delete removes a section and its enrollments in one transaction.
func (s *SectionService) Delete(ctx context.Context, id int64) error {
	if err := s.cascade.DeleteSection(ctx, id); err != nil {
		return deleteError(err, "section not found", "failed to delete section")
	}
	s.logger.Info("section deleted", zap.Int64("section_id", id))
	return nil
}
