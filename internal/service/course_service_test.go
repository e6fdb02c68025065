package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrar-dev/academic-records-api/internal/models"
	appErrors "github.com/registrar-dev/academic-records-api/pkg/errors"
)

type fakeCourseRepo struct {
	courses   []models.CourseDetail
	total     int
	createErr error
}

func (f *fakeCourseRepo) List(context.Context, models.ListParams) ([]models.CourseDetail, int, error) {
	return f.courses, f.total, nil
}

func (f *fakeCourseRepo) FindByID(context.Context, int64) (*models.Course, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	if f.createErr != nil {
		return f.createErr
	}
	course.ID = 5
	return nil
}

type fakeCourseCascade struct {
	err error
}

func (f *fakeCourseCascade) DeleteCourse(context.Context, int64) error { return f.err }

func TestCourseServiceCreate_RejectsZeroCredits(t *testing.T) {
	svc := NewCourseService(&fakeCourseRepo{}, &fakeCourseCascade{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateCourseRequest{
		Code:    "CS101",
		Name:    "Intro to Computer Science",
		Credits: 0,
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestCourseServiceCreate_MapsUniqueViolationToConflict(t *testing.T) {
	repo := &fakeCourseRepo{createErr: &pq.Error{Code: "23505"}}
	svc := NewCourseService(repo, &fakeCourseCascade{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateCourseRequest{
		Code:    "CS101",
		Name:    "Intro to Computer Science",
		Credits: 3,
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestCourseServiceDelete_BrokenConnMidCascadeIsIntegrity(t *testing.T) {
	cascade := &fakeCourseCascade{err: sql.ErrConnDone}
	svc := NewCourseService(&fakeCourseRepo{}, cascade, nil, nil)

	err := svc.Delete(context.Background(), 5)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	// A broken connection is an integrity failure here because the cascade
	// already started; only classified unreachable errors pass through.
	assert.Equal(t, appErrors.ErrIntegrity.Code, appErr.Code)
}

func TestCourseServiceDelete_UnknownCourse(t *testing.T) {
	svc := NewCourseService(&fakeCourseRepo{}, &fakeCourseCascade{err: sql.ErrNoRows}, nil, nil)

	err := svc.Delete(context.Background(), 404)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
