package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CascadeRepository executes the referential-integrity cleanup for every
// deletable entity. Each delete runs its dependent-row mutations and the
// target delete inside one transaction: either every step persists or none
// does. The step tables below are the authoritative integrity contract; all
// delete entry points route through here.
type CascadeRepository struct {
	db *sqlx.DB
}

// NewCascadeRepository constructs the repository.
func NewCascadeRepository(db *sqlx.DB) *CascadeRepository {
	return &CascadeRepository{db: db}
}

type cascadeStep struct {
	name string
	stmt string
}

// run executes the ordered steps followed by the target delete in a single
// transaction. A target delete touching zero rows means the id was unknown;
// the transaction rolls back and sql.ErrNoRows surfaces so callers can
// report not-found.
func (r *CascadeRepository) run(ctx context.Context, id int64, steps []cascadeStep, target cascadeStep) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cascade: %w", err)
	}

	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, step.stmt, id); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	res, err := tx.ExecContext(ctx, target.stmt, id)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("%s: %w", target.name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("%s: %w", target.name, err)
	}
	if affected == 0 {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("%s: %w", target.name, sql.ErrNoRows)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cascade: %w", err)
	}
	return nil
}

// DeleteStudent removes a student and every enrollment referencing them.
func (r *CascadeRepository) DeleteStudent(ctx context.Context, id int64) error {
	return r.run(ctx, id,
		[]cascadeStep{
			{"delete student enrollments", "DELETE FROM enrollment WHERE student_id = $1"},
		},
		cascadeStep{"delete student", "DELETE FROM student WHERE student_id = $1"},
	)
}

// DeleteInstructor removes an instructor after nullifying every chair and
// section reference to them. Departments and sections themselves survive.
func (r *CascadeRepository) DeleteInstructor(ctx context.Context, id int64) error {
	return r.run(ctx, id,
		[]cascadeStep{
			{"nullify department chairs", "UPDATE department SET chair_id = NULL WHERE chair_id = $1"},
			{"nullify section instructors", "UPDATE section SET instructor_id = NULL WHERE instructor_id = $1"},
		},
		cascadeStep{"delete instructor", "DELETE FROM instructor WHERE instructor_id = $1"},
	)
}

// DeleteCourse removes a course with the full cascade: enrollments in any
// of its sections first, then the sections, then the course itself.
func (r *CascadeRepository) DeleteCourse(ctx context.Context, id int64) error {
	return r.run(ctx, id,
		[]cascadeStep{
			{"delete course enrollments",
				"DELETE FROM enrollment WHERE section_id IN (SELECT section_id FROM section WHERE course_id = $1)"},
			{"delete course sections", "DELETE FROM section WHERE course_id = $1"},
		},
		cascadeStep{"delete course", "DELETE FROM course WHERE course_id = $1"},
	)
}

// DeleteDepartment removes a department with the nullify policy: instructor
// and course rows stay, their department references go null.
func (r *CascadeRepository) DeleteDepartment(ctx context.Context, id int64) error {
	return r.run(ctx, id,
		[]cascadeStep{
			{"nullify instructor departments", "UPDATE instructor SET department_id = NULL WHERE department_id = $1"},
			{"nullify course departments", "UPDATE course SET department_id = NULL WHERE department_id = $1"},
		},
		cascadeStep{"delete department", "DELETE FROM department WHERE department_id = $1"},
	)
}

// DeleteSection removes a section and every enrollment referencing it.
func (r *CascadeRepository) DeleteSection(ctx context.Context, id int64) error {
	return r.run(ctx, id,
		[]cascadeStep{
			{"delete section enrollments", "DELETE FROM enrollment WHERE section_id = $1"},
		},
		cascadeStep{"delete section", "DELETE FROM section WHERE section_id = $1"},
	)
}

// DeleteEnrollment removes a single enrollment; it is a leaf with no
// dependents.
func (r *CascadeRepository) DeleteEnrollment(ctx context.Context, id int64) error {
	return r.run(ctx, id, nil,
		cascadeStep{"delete enrollment", "DELETE FROM enrollment WHERE enrollment_id = $1"},
	)
}
