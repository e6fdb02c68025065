package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/registrar-dev/academic-records-api/internal/service"
	appErrors "github.com/registrar-dev/academic-records-api/pkg/errors"
	"github.com/registrar-dev/academic-records-api/pkg/export"
	"github.com/registrar-dev/academic-records-api/pkg/response"
)

// ReportHandler exposes read-only report endpoints, including file exports.
type ReportHandler struct {
	reports *service.ReportService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewReportHandler constructs handler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

// BusiestSections godoc
// @Summary Ten sections with the most enrollments
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/busiest-sections [get]
func (h *ReportHandler) BusiestSections(c *gin.Context) {
	sections, err := h.reports.BusiestSections(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sections, nil)
}

// DepartmentStats godoc
// @Summary Per-department instructor, course, section and student counts
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/department-stats [get]
func (h *ReportHandler) DepartmentStats(c *gin.Context) {
	stats, err := h.reports.DepartmentStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// StudentsByMajor godoc
// @Summary Roster of students in one major
// @Tags Reports
// @Produce json
// @Param major query string true "Major name, matched exactly"
// @Success 200 {object} response.Envelope
// @Router /reports/students-by-major [get]
func (h *ReportHandler) StudentsByMajor(c *gin.Context) {
	major := c.Query("major")
	if major == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "major is required"))
		return
	}
	students, err := h.reports.StudentsByMajor(c.Request.Context(), major)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// TopStudents godoc
// @Summary Students ranked by GPA, highest first
// @Tags Reports
// @Produce json
// @Param limit query int false "Number of students, default 10"
// @Success 200 {object} response.Envelope
// @Router /reports/top-gpa [get]
func (h *ReportHandler) TopStudents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	students, err := h.reports.TopStudentsByGPA(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// TopStudentsCSV godoc
// @Summary GPA leaderboard as a CSV download
// @Tags Reports
// @Produce text/csv
// @Param limit query int false "Number of students, default 10"
// @Success 200 {file} file
// @Router /reports/top-gpa/export [get]
func (h *ReportHandler) TopStudentsCSV(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	students, err := h.reports.TopStudentsByGPA(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	table := export.Table{Headers: []string{"Student ID", "First Name", "Last Name", "Major", "GPA"}}
	for _, s := range students {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(s.StudentID, 10),
			s.FirstName,
			s.LastName,
			s.Major,
			strconv.FormatFloat(s.GPA, 'f', 2, 64),
		})
	}
	payload, err := h.csv.Render(table)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="top-gpa.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// Transcript godoc
// @Summary Chronological transcript for one student
// @Tags Reports
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /reports/transcript/{id} [get]
func (h *ReportHandler) Transcript(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.reports.Transcript(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// TranscriptPDF godoc
// @Summary Transcript as a PDF download
// @Tags Reports
// @Produce application/pdf
// @Param id path int true "Student ID"
// @Success 200 {file} file
// @Router /reports/transcript/{id}/export [get]
func (h *ReportHandler) TranscriptPDF(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.reports.Transcript(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	table := export.Table{Headers: []string{"Course", "Title", "Credits", "Term", "Year", "Grade"}}
	for _, row := range rows {
		grade := ""
		if row.Grade != nil {
			grade = *row.Grade
		}
		table.Rows = append(table.Rows, []string{
			row.CourseCode,
			row.CourseName,
			strconv.Itoa(row.Credits),
			row.Term,
			strconv.Itoa(row.Year),
			grade,
		})
	}
	subtitle := fmt.Sprintf("Student %d", id)
	if len(rows) > 0 && rows[0].CumulativeGPA != nil {
		subtitle = fmt.Sprintf("Student %d, Cumulative GPA %.2f", id, *rows[0].CumulativeGPA)
	}
	payload, err := h.pdf.Render(table, "Academic Transcript", subtitle)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="transcript-%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", payload)
}

// Overview godoc
// @Summary All reports in one response
// @Tags Reports
// @Produce json
// @Param major query string false "Fill the students-by-major section"
// @Param student_id query int false "Fill the transcript section"
// @Success 200 {object} response.Envelope
// @Router /reports/overview [get]
func (h *ReportHandler) Overview(c *gin.Context) {
	var studentID *int64
	if raw := c.Query("student_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid student_id"))
			return
		}
		studentID = &id
	}
	overview, err := h.reports.Overview(c.Request.Context(), c.Query("major"), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}
