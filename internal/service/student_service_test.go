package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrar-dev/academic-records-api/internal/models"
	appErrors "github.com/registrar-dev/academic-records-api/pkg/errors"
)

type fakeStudentRepo struct {
	students  []models.Student
	total     int
	listErr   error
	createErr error
	created   *models.Student
}

func (f *fakeStudentRepo) List(context.Context, models.ListParams) ([]models.Student, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.students, f.total, nil
}

func (f *fakeStudentRepo) FindByID(context.Context, int64) (*models.Student, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	if f.createErr != nil {
		return f.createErr
	}
	student.ID = 42
	f.created = student
	return nil
}

type fakeStudentCascade struct {
	err    error
	called int64
}

func (f *fakeStudentCascade) DeleteStudent(_ context.Context, id int64) error {
	f.called = id
	return f.err
}

func TestStudentServiceList_BuildsPagination(t *testing.T) {
	repo := &fakeStudentRepo{
		students: []models.Student{{ID: 1, FirstName: "Ada"}},
		total:    41,
	}
	svc := NewStudentService(repo, &fakeStudentCascade{}, nil, nil)

	students, pagination, err := svc.List(context.Background(), models.ListParams{Page: 2, PageSize: 20})
	require.NoError(t, err)

	assert.Len(t, students, 1)
	require.NotNil(t, pagination)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 41, pagination.TotalCount)
}

func TestStudentServiceCreate_Validates(t *testing.T) {
	svc := NewStudentService(&fakeStudentRepo{}, &fakeStudentCascade{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateStudentRequest{FirstName: "Ada"})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestStudentServiceCreate_ReturnsAssignedID(t *testing.T) {
	repo := &fakeStudentRepo{}
	svc := NewStudentService(repo, &fakeStudentCascade{}, nil, nil)

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.edu",
		Major:       "Mathematics",
		DateOfBirth: time.Date(2001, 12, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), student.ID)
	assert.Equal(t, "ada@example.edu", repo.created.Email)
}

func TestStudentServiceDelete_MapsUnknownIDToNotFound(t *testing.T) {
	cascade := &fakeStudentCascade{err: sql.ErrNoRows}
	svc := NewStudentService(&fakeStudentRepo{}, cascade, nil, nil)

	err := svc.Delete(context.Background(), 99)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, int64(99), cascade.called)
}

func TestStudentServiceDelete_MapsMidCascadeFailureToIntegrity(t *testing.T) {
	cascade := &fakeStudentCascade{err: errors.New("delete enrollments: broken")}
	svc := NewStudentService(&fakeStudentRepo{}, cascade, nil, nil)

	err := svc.Delete(context.Background(), 7)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrIntegrity.Code, appErr.Code)
}

func TestStudentServiceList_EmptyPageEncodesAsArray(t *testing.T) {
	svc := NewStudentService(&fakeStudentRepo{}, &fakeStudentCascade{}, nil, nil)

	students, pagination, err := svc.List(context.Background(), models.ListParams{Page: 9})
	require.NoError(t, err)
	require.NotNil(t, students)

	body, err := json.Marshal(students)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))

	require.NotNil(t, pagination)
	assert.Equal(t, 9, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
}
