package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrar-dev/academic-records-api/internal/models"
	appErrors "github.com/registrar-dev/academic-records-api/pkg/errors"
)

func strPtr(s string) *string { return &s }

type fakeReportRepo struct {
	busiest       []models.SectionEnrollmentCount
	stats         []models.DepartmentStats
	roster        []models.MajorStudent
	graded        []models.GradedEnrollmentRow
	transcript    []models.TranscriptRow
	gradedErr     error
	transcriptErr error
}

func (f *fakeReportRepo) BusiestSections(context.Context) ([]models.SectionEnrollmentCount, error) {
	return f.busiest, nil
}

func (f *fakeReportRepo) DepartmentStats(context.Context) ([]models.DepartmentStats, error) {
	return f.stats, nil
}

func (f *fakeReportRepo) StudentsByMajor(context.Context, string) ([]models.MajorStudent, error) {
	return f.roster, nil
}

func (f *fakeReportRepo) GradedEnrollments(context.Context) ([]models.GradedEnrollmentRow, error) {
	if f.gradedErr != nil {
		return nil, f.gradedErr
	}
	return f.graded, nil
}

func (f *fakeReportRepo) TranscriptRows(context.Context, int64) ([]models.TranscriptRow, error) {
	if f.transcriptErr != nil {
		return nil, f.transcriptErr
	}
	return f.transcript, nil
}

type fakeStudentFinder struct {
	student *models.Student
	err     error
}

func (f *fakeStudentFinder) FindByID(context.Context, int64) (*models.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.student, nil
}

func TestReportServiceTopStudentsByGPA_RanksAndRounds(t *testing.T) {
	repo := &fakeReportRepo{graded: []models.GradedEnrollmentRow{
		// Student 1: (A,3) and (B,4) gives 24/7 = 3.4285..., rounds to 3.43.
		{StudentID: 1, FirstName: "Ada", LastName: "Lovelace", Major: "Mathematics", Grade: strPtr("A"), Credits: 3},
		{StudentID: 1, FirstName: "Ada", LastName: "Lovelace", Major: "Mathematics", Grade: strPtr("B"), Credits: 4},
		// Student 2: straight A.
		{StudentID: 2, FirstName: "Alan", LastName: "Turing", Major: "Computer Science", Grade: strPtr("A"), Credits: 3},
		// Student 3: only a null grade, no GPA at all.
		{StudentID: 3, FirstName: "Grace", LastName: "Hopper", Major: "Computer Science", Grade: nil, Credits: 3},
		// Student 4: off-scale token only, also no GPA.
		{StudentID: 4, FirstName: "Edsger", LastName: "Dijkstra", Major: "Computer Science", Grade: strPtr("W"), Credits: 3},
	}}

	svc := NewReportService(repo, &fakeStudentFinder{}, nil, 0, nil)
	ranked, err := svc.TopStudentsByGPA(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	assert.Equal(t, int64(2), ranked[0].StudentID)
	assert.Equal(t, 4.0, ranked[0].GPA)
	assert.Equal(t, int64(1), ranked[1].StudentID)
	assert.Equal(t, 3.43, ranked[1].GPA)
}

func TestReportServiceTopStudentsByGPA_TieBreaksOnStudentID(t *testing.T) {
	repo := &fakeReportRepo{graded: []models.GradedEnrollmentRow{
		{StudentID: 9, FirstName: "B", LastName: "B", Grade: strPtr("A"), Credits: 3},
		{StudentID: 2, FirstName: "A", LastName: "A", Grade: strPtr("A"), Credits: 4},
	}}

	svc := NewReportService(repo, &fakeStudentFinder{}, nil, 0, nil)
	ranked, err := svc.TopStudentsByGPA(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	assert.Equal(t, int64(2), ranked[0].StudentID)
	assert.Equal(t, int64(9), ranked[1].StudentID)
}

func TestReportServiceTopStudentsByGPA_AppliesDefaultLimit(t *testing.T) {
	var rows []models.GradedEnrollmentRow
	for i := int64(1); i <= 15; i++ {
		rows = append(rows, models.GradedEnrollmentRow{StudentID: i, Grade: strPtr("B"), Credits: 3})
	}
	svc := NewReportService(&fakeReportRepo{graded: rows}, &fakeStudentFinder{}, nil, 0, nil)

	ranked, err := svc.TopStudentsByGPA(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, ranked, DefaultTopGPALimit)
}

func TestReportServiceTranscript_OrdersChronologically(t *testing.T) {
	repo := &fakeReportRepo{transcript: []models.TranscriptRow{
		{CourseCode: "CS201", Credits: 3, Term: "Spring", Year: 2024, Grade: strPtr("B")},
		{CourseCode: "CS101", Credits: 3, Term: "Fall", Year: 2023, Grade: strPtr("A")},
		{CourseCode: "CS150", Credits: 3, Term: "Winter", Year: 2024, Grade: nil},
	}}
	finder := &fakeStudentFinder{student: &models.Student{ID: 7}}

	svc := NewReportService(repo, finder, nil, 0, nil)
	rows, err := svc.Transcript(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	// Fall 2023 precedes Winter 2024 precedes Spring 2024.
	assert.Equal(t, "CS101", rows[0].CourseCode)
	assert.Equal(t, "CS150", rows[1].CourseCode)
	assert.Equal(t, "CS201", rows[2].CourseCode)

	// (A,3)+(B,3) over 6 credits is 3.5; the ungraded row is excluded but
	// still rendered, and every row carries the same cumulative GPA.
	for _, row := range rows {
		require.NotNil(t, row.CumulativeGPA)
		assert.Equal(t, 3.5, *row.CumulativeGPA)
	}
}

func TestReportServiceTranscript_NilGPAWhenNothingGradeable(t *testing.T) {
	repo := &fakeReportRepo{transcript: []models.TranscriptRow{
		{CourseCode: "CS101", Credits: 3, Term: "Fall", Year: 2023, Grade: nil},
	}}
	finder := &fakeStudentFinder{student: &models.Student{ID: 7}}

	svc := NewReportService(repo, finder, nil, 0, nil)
	rows, err := svc.Transcript(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].CumulativeGPA)
}

func TestReportServiceTranscript_UnknownStudent(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, &fakeStudentFinder{err: sql.ErrNoRows}, nil, 0, nil)

	_, err := svc.Transcript(context.Background(), 99)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestReportServiceOverview_FillsSelectedSections(t *testing.T) {
	repo := &fakeReportRepo{
		busiest: []models.SectionEnrollmentCount{{SectionCode: "A01", EnrollmentCount: 30}},
		stats:   []models.DepartmentStats{{DepartmentName: "Mathematics", NumInstructors: 4}},
		roster:  []models.MajorStudent{{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.edu"}},
		transcript: []models.TranscriptRow{
			{CourseCode: "MA101", Credits: 3, Term: "Fall", Year: 2023, Grade: strPtr("A")},
		},
	}
	finder := &fakeStudentFinder{student: &models.Student{ID: 7}}
	svc := NewReportService(repo, finder, nil, 0, nil)

	studentID := int64(7)
	overview, err := svc.Overview(context.Background(), "Mathematics", &studentID)
	require.NoError(t, err)

	assert.Len(t, overview.BusiestSections, 1)
	assert.Len(t, overview.DepartmentStats, 1)
	assert.Len(t, overview.StudentsByMajor, 1)
	assert.Equal(t, "Mathematics", overview.SelectedMajor)
	assert.Len(t, overview.Transcript, 1)
	require.NotNil(t, overview.SelectedStudentID)
	assert.Equal(t, int64(7), *overview.SelectedStudentID)
}

func TestReportServiceOverview_SkipsUnselectedSections(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, &fakeStudentFinder{}, nil, 0, nil)

	overview, err := svc.Overview(context.Background(), "", nil)
	require.NoError(t, err)

	assert.Empty(t, overview.StudentsByMajor)
	assert.Empty(t, overview.SelectedMajor)
	assert.Empty(t, overview.Transcript)
	assert.Nil(t, overview.SelectedStudentID)
}

func TestReportServiceTranscript_NoEnrollmentsEncodesAsEmptyArray(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, &fakeStudentFinder{student: &models.Student{ID: 7}}, nil, 0, nil)

	rows, err := svc.Transcript(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, rows)

	body, err := json.Marshal(rows)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))
}

func TestReportServiceReports_EmptyResultsAreNeverNil(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, &fakeStudentFinder{}, nil, 0, nil)
	ctx := context.Background()

	sections, err := svc.BusiestSections(ctx)
	require.NoError(t, err)
	assert.NotNil(t, sections)

	stats, err := svc.DepartmentStats(ctx)
	require.NoError(t, err)
	assert.NotNil(t, stats)

	roster, err := svc.StudentsByMajor(ctx, "Philosophy")
	require.NoError(t, err)
	assert.NotNil(t, roster)

	overview, err := svc.Overview(ctx, "", nil)
	require.NoError(t, err)
	assert.NotNil(t, overview.StudentsByMajor)
	assert.NotNil(t, overview.Transcript)
}

func TestReportServiceObservesQueryDurations(t *testing.T) {
	metrics := NewMetricsService()
	finder := &fakeStudentFinder{student: &models.Student{ID: 7}}
	svc := NewReportService(&fakeReportRepo{}, finder, metrics, 0, nil)
	ctx := context.Background()

	_, err := svc.BusiestSections(ctx)
	require.NoError(t, err)
	_, err = svc.DepartmentStats(ctx)
	require.NoError(t, err)
	_, err = svc.TopStudentsByGPA(ctx, 0)
	require.NoError(t, err)
	_, err = svc.Transcript(ctx, 7)
	require.NoError(t, err)

	// one histogram series per distinct query label
	assert.Equal(t, 4, testutil.CollectAndCount(metrics.dbQueryDuration, "db_query_duration_seconds"))
}
