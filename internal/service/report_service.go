package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/registrar-dev/academic-records-api/internal/grades"
	"github.com/registrar-dev/academic-records-api/internal/models"
	appErrors "github.com/registrar-dev/academic-records-api/pkg/errors"
)

type reportRepository interface {
	BusiestSections(ctx context.Context) ([]models.SectionEnrollmentCount, error)
	DepartmentStats(ctx context.Context) ([]models.DepartmentStats, error)
	StudentsByMajor(ctx context.Context, major string) ([]models.MajorStudent, error)
	GradedEnrollments(ctx context.Context) ([]models.GradedEnrollmentRow, error)
	TranscriptRows(ctx context.Context, studentID int64) ([]models.TranscriptRow, error)
}

type reportStudentFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
}

// DefaultTopGPALimit caps the GPA leaderboard when no limit is configured.
const DefaultTopGPALimit = 10

// ReportService assembles the read-only reports. All GPA arithmetic happens
// here on raw enrollment rows so the grade scale is applied in exactly one
// place.
type ReportService struct {
	repo        reportRepository
	students    reportStudentFinder
	metrics     *MetricsService
	topGPALimit int
	logger      *zap.Logger
}

// NewReportService constructs the report service. A non-positive limit falls
// back to DefaultTopGPALimit.
func NewReportService(repo reportRepository, students reportStudentFinder, metrics *MetricsService, topGPALimit int, logger *zap.Logger) *ReportService {
	if topGPALimit <= 0 {
		topGPALimit = DefaultTopGPALimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{repo: repo, students: students, metrics: metrics, topGPALimit: topGPALimit, logger: logger}
}

// BusiestSections returns the ten sections with the most enrollments.
func (s *ReportService) BusiestSections(ctx context.Context) ([]models.SectionEnrollmentCount, error) {
	start := time.Now()
	sections, err := s.repo.BusiestSections(ctx)
	if err != nil {
		return nil, appErrors.FromDB(err, "failed to build busiest-sections report")
	}
	s.metrics.ObserveDBQuery("report_busiest_sections", time.Since(start))
	return emptyIfNil(sections), nil
}

// DepartmentStats returns per-department instructor, course, section and
// student counts.
func (s *ReportService) DepartmentStats(ctx context.Context) ([]models.DepartmentStats, error) {
	start := time.Now()
	departments, err := s.repo.DepartmentStats(ctx)
	if err != nil {
		return nil, appErrors.FromDB(err, "failed to build department-stats report")
	}
	s.metrics.ObserveDBQuery("report_department_stats", time.Since(start))
	return emptyIfNil(departments), nil
}

// StudentsByMajor returns the roster for one major. An unknown major is not
// an error, just an empty roster.
func (s *ReportService) StudentsByMajor(ctx context.Context, major string) ([]models.MajorStudent, error) {
	start := time.Now()
	students, err := s.repo.StudentsByMajor(ctx, major)
	if err != nil {
		return nil, appErrors.FromDB(err, "failed to build students-by-major report")
	}
	s.metrics.ObserveDBQuery("report_students_by_major", time.Since(start))
	return emptyIfNil(students), nil
}

// TopStudentsByGPA ranks students by rounded credit-weighted GPA, highest
// first, ties broken by ascending student id. Students with no gradeable
// credits have no GPA and never appear, regardless of limit. A non-positive
// limit falls back to the configured default.
func (s *ReportService) TopStudentsByGPA(ctx context.Context, limit int) ([]models.RankedStudent, error) {
	if limit <= 0 {
		limit = s.topGPALimit
	}
	start := time.Now()
	rows, err := s.repo.GradedEnrollments(ctx)
	if err != nil {
		return nil, appErrors.FromDB(err, "failed to build top-gpa report")
	}
	s.metrics.ObserveDBQuery("report_graded_enrollments", time.Since(start))

	type studentAccum struct {
		student models.RankedStudent
		entries []grades.CreditGrade
	}
	byID := make(map[int64]*studentAccum)
	for _, row := range rows {
		acc, ok := byID[row.StudentID]
		if !ok {
			acc = &studentAccum{student: models.RankedStudent{
				StudentID: row.StudentID,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Major:     row.Major,
			}}
			byID[row.StudentID] = acc
		}
		acc.entries = append(acc.entries, grades.CreditGrade{Grade: row.Grade, Credits: row.Credits})
	}

	ranked := make([]models.RankedStudent, 0, len(byID))
	for _, acc := range byID {
		gpa := grades.GPA(acc.entries)
		if gpa == nil {
			continue
		}
		acc.student.GPA = grades.Round2(*gpa)
		ranked = append(ranked, acc.student)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].GPA != ranked[j].GPA {
			return ranked[i].GPA > ranked[j].GPA
		}
		return ranked[i].StudentID < ranked[j].StudentID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Transcript returns a student's enrollments in chronological order, each
// row carrying the student's cumulative GPA. The student must exist; the
// transcript itself may be empty.
func (s *ReportService) Transcript(ctx context.Context, studentID int64) ([]models.TranscriptRow, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.FromDB(err, "failed to load student")
	}
	start := time.Now()
	rows, err := s.repo.TranscriptRows(ctx, studentID)
	if err != nil {
		return nil, appErrors.FromDB(err, "failed to build transcript")
	}
	s.metrics.ObserveDBQuery("report_transcript_rows", time.Since(start))

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return grades.TermRank(rows[i].Term) < grades.TermRank(rows[j].Term)
	})

	entries := make([]grades.CreditGrade, len(rows))
	for i, row := range rows {
		entries[i] = grades.CreditGrade{Grade: row.Grade, Credits: row.Credits}
	}
	cumulative := grades.GPA(entries)
	if cumulative != nil {
		rounded := grades.Round2(*cumulative)
		cumulative = &rounded
	}
	for i := range rows {
		rows[i].CumulativeGPA = cumulative
	}
	return emptyIfNil(rows), nil
}

// Overview bundles every report in one response. The major roster and the
// transcript only fill in when their selector was supplied.
func (s *ReportService) Overview(ctx context.Context, major string, studentID *int64) (*models.ReportOverview, error) {
	overview := &models.ReportOverview{
		StudentsByMajor: []models.MajorStudent{},
		Transcript:      []models.TranscriptRow{},
	}

	busiest, err := s.BusiestSections(ctx)
	if err != nil {
		return nil, err
	}
	overview.BusiestSections = busiest

	stats, err := s.DepartmentStats(ctx)
	if err != nil {
		return nil, err
	}
	overview.DepartmentStats = stats

	top, err := s.TopStudentsByGPA(ctx, 0)
	if err != nil {
		return nil, err
	}
	overview.TopStudents = top

	if major != "" {
		roster, err := s.StudentsByMajor(ctx, major)
		if err != nil {
			return nil, err
		}
		overview.StudentsByMajor = roster
		overview.SelectedMajor = major
	}

	if studentID != nil {
		transcript, err := s.Transcript(ctx, *studentID)
		if err != nil {
			return nil, err
		}
		overview.Transcript = transcript
		overview.SelectedStudentID = studentID
	}

	return overview, nil
}
