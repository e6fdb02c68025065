package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/registrar-dev/academic-records-api/internal/models"
	appErrors "github.com/registrar-dev/academic-records-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, params models.ListParams) ([]models.CourseDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
}

type courseCascade interface {
	DeleteCourse(ctx context.Context, id int64) error
}

// CreateCourseRequest holds payload for adding catalog courses.
type CreateCourseRequest struct {
	DepartmentID *int64 `json:"department_id"`
	Code         string `json:"course_code" validate:"required"`
	Name         string `json:"course_name" validate:"required"`
	Credits      int    `json:"credits" validate:"required,gt=0"`
}

// CourseService handles course use-cases.
type CourseService struct {
	repo      courseRepository
	cascade   courseCascade
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, cascade courseCascade, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cascade: cascade, validator: validate, logger: logger}
}

// List returns courses and pagination metadata.
func (s *CourseService) List(ctx context.Context, params models.ListParams) ([]models.CourseDetail, *models.Pagination, error) {
	courses, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, nil, appErrors.FromDB(err, "failed to list courses")
	}
	return emptyIfNil(courses), paginationFor(params, total), nil
}

// Create adds a new catalog course.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := &models.Course{
		DepartmentID: req.DepartmentID,
		Code:         req.Code,
		Name:         req.Name,
		Credits:      req.Credits,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.FromDB(err, "failed to create course")
	}
	return course, nil
}

// Delete removes a course with the full cascade: enrollments in its
// sections, then the sections, then the course, atomically.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.cascade.DeleteCourse(ctx, id); err != nil {
		return deleteError(err, "course not found", "failed to delete course")
	}
	s.logger.Info("course deleted", zap.Int64("course_id", id))
	return nil
}
