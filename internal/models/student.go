package models

import "time"

// Student represents a learner registered at the institution. Major is free
// text; it is matched against department names best-effort only and is not
// a foreign key.
type Student struct {
	ID          int64     `db:"student_id" json:"student_id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Email       string    `db:"email" json:"email"`
	Major       string    `db:"major" json:"major"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`
}
