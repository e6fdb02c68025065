package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/registrar-dev/academic-records-api/internal/models"
	"github.com/registrar-dev/academic-records-api/internal/query"
)

var sectionQuerySpec = query.Spec{
	DefaultSort: "section_id",
	Sorts: map[string]string{
		"section_id":      "s.section_id",
		"section_code":    "s.section_code",
		"term":            "s.term",
		"year":            "s.year",
		"course_code":     "c.course_code",
		"location":        "s.location",
		"instructor_name": "instructor_name",
	},
	SearchColumns: []string{"s.section_code", "c.course_code", "(i.first_name || ' ' || i.last_name)"},
}

// SectionRepository handles persistence of sections.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository constructs the repository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// List returns sections with course and instructor context. The instructor
// join is left outer so sections whose instructor reference was nullified
// stay visible.
func (r *SectionRepository) List(ctx context.Context, params models.ListParams) ([]models.SectionDetail, int, error) {
	d := query.Build(sectionQuerySpec, params.SortBy, params.SortOrder, params.Search)

	base := `FROM section s
JOIN course c ON c.course_id = s.course_id
LEFT JOIN instructor i ON i.instructor_id = s.instructor_id`
	filter, args := d.Filter(sectionQuerySpec, 1)
	if filter != "" {
		base += " WHERE " + filter
	}

	_, size, offset := params.Window()
	stmt := fmt.Sprintf(`SELECT s.section_id, s.course_id, s.instructor_id, s.section_code, s.term,
        s.year, s.days, s.time, s.capacity, s.location, c.course_code,
        i.first_name || ' ' || i.last_name AS instructor_name
        %s %s LIMIT %d OFFSET %d`, base, d.OrderClause(), size, offset)

	var sections []models.SectionDetail
	if err := r.db.SelectContext(ctx, &sections, stmt, args...); err != nil {
		return nil, 0, fmt.Errorf("list sections: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count sections: %w", err)
	}
	return sections, total, nil
}

// FindByID returns a section by id.
func (r *SectionRepository) FindByID(ctx context.Context, id int64) (*models.Section, error) {
	const stmt = `SELECT section_id, course_id, instructor_id, section_code, term, year, days, time, capacity, location
        FROM section WHERE section_id = $1`
	var section models.Section
	if err := r.db.GetContext(ctx, &section, stmt, id); err != nil {
		return nil, err
	}
	return &section, nil
}

// Create inserts a section; the store assigns the id.
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	const stmt = `INSERT INTO section (course_id, instructor_id, section_code, term, year, days, time, capacity, location)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING section_id`
	if err := r.db.GetContext(ctx, &section.ID, stmt,
		section.CourseID, section.InstructorID, section.SectionCode, section.Term, section.Year,
		section.Days, section.Time, section.Capacity, section.Location); err != nil {
		return fmt.Errorf("create section: %w", err)
	}
	return nil
}
