package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/registrar-dev/academic-records-api/internal/models"
	appErrors "github.com/registrar-dev/academic-records-api/pkg/errors"
)

type departmentRepository interface {
	List(ctx context.Context, params models.ListParams) ([]models.DepartmentDetail, int, error)
	FindByID(ctx context.Context, id int64) (*models.Department, error)
	Create(ctx context.Context, department *models.Department) error
}

type departmentCascade interface {
	DeleteDepartment(ctx context.Context, id int64) error
}

// CreateDepartmentRequest holds payload for adding departments.
type CreateDepartmentRequest struct {
	Name           string `json:"department_name" validate:"required"`
	OfficeLocation string `json:"office_location" validate:"required"`
	ChairID        *int64 `json:"chair_id"`
}

// DepartmentService handles department use-cases.
type DepartmentService struct {
	repo      departmentRepository
	cascade   departmentCascade
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDepartmentService constructs the department service.
func NewDepartmentService(repo departmentRepository, cascade departmentCascade, validate *validator.Validate, logger *zap.Logger) *DepartmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{repo: repo, cascade: cascade, validator: validate, logger: logger}
}

// List returns departments and pagination metadata.
func (s *DepartmentService) List(ctx context.Context, params models.ListParams) ([]models.DepartmentDetail, *models.Pagination, error) {
	departments, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, nil, appErrors.FromDB(err, "failed to list departments")
	}
	return emptyIfNil(departments), paginationFor(params, total), nil
}

// Create adds a new department.
func (s *DepartmentService) Create(ctx context.Context, req CreateDepartmentRequest) (*models.Department, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}
	department := &models.Department{
		Name:           req.Name,
		OfficeLocation: req.OfficeLocation,
		ChairID:        req.ChairID,
	}
	if err := s.repo.Create(ctx, department); err != nil {
		return nil, appErrors.FromDB(err, "department name already used or chair unknown")
	}
	return department, nil
}

// Delete removes a department with the nullify policy: instructors and
// courses keep their rows, their department references go null.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	if err := s.cascade.DeleteDepartment(ctx, id); err != nil {
		return deleteError(err, "department not found", "failed to delete department")
	}
	s.logger.Info("department deleted", zap.Int64("department_id", id))
	return nil
}
