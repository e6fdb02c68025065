package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrar-dev/academic-records-api/internal/models"
	"github.com/registrar-dev/academic-records-api/internal/service"
)

type fakeStudentRepo struct {
	students []models.Student
	total    int
	params   models.ListParams
}

func (f *fakeStudentRepo) List(_ context.Context, params models.ListParams) ([]models.Student, int, error) {
	f.params = params
	return f.students, f.total, nil
}

func (f *fakeStudentRepo) FindByID(context.Context, int64) (*models.Student, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	student.ID = 42
	return nil
}

type fakeStudentCascade struct {
	err error
}

func (f *fakeStudentCascade) DeleteStudent(context.Context, int64) error { return f.err }

func newStudentHandler(repo *fakeStudentRepo, cascade *fakeStudentCascade) *StudentHandler {
	return NewStudentHandler(service.NewStudentService(repo, cascade, nil, nil))
}

func TestStudentHandlerList_ForwardsQueryParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeStudentRepo{students: []models.Student{{ID: 1, FirstName: "Ada"}}, total: 1}
	handler := newStudentHandler(repo, &fakeStudentCascade{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students?search=ada&sort_by=last_name&sort_order=desc&page=2&page_size=5", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ada", repo.params.Search)
	assert.Equal(t, "last_name", repo.params.SortBy)
	assert.Equal(t, "desc", repo.params.SortOrder)
	assert.Equal(t, 2, repo.params.Page)
	assert.Equal(t, 5, repo.params.PageSize)
}

func TestStudentHandlerCreate_ReturnsCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler(&fakeStudentRepo{}, &fakeStudentCascade{})

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.edu","major":"Mathematics","date_of_birth":"2001-12-10T00:00:00Z"}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var envelope struct {
		Data models.Student `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(42), envelope.Data.ID)
}

func TestStudentHandlerCreate_RejectsMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler(&fakeStudentRepo{}, &fakeStudentCascade{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(`{"first_name":"Ada"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentHandlerDelete_UnknownStudent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler(&fakeStudentRepo{}, &fakeStudentCascade{err: sql.ErrNoRows})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/students/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	handler.Delete(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentHandlerDelete_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler(&fakeStudentRepo{}, &fakeStudentCascade{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/students/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStudentHandlerDelete_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler(&fakeStudentRepo{}, &fakeStudentCascade{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/students/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.Delete(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
