package models

// Instructor teaches sections and may chair a department. The department
// reference is nullable: deleting a department nullifies it rather than
// removing the instructor.
type Instructor struct {
	ID           int64  `db:"instructor_id" json:"instructor_id"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
	Email        string `db:"email" json:"email"`
	DepartmentID *int64 `db:"department_id" json:"department_id,omitempty"`
}

// InstructorDetail enriches Instructor with the joined department name.
type InstructorDetail struct {
	Instructor
	DepartmentName *string `db:"department_name" json:"department_name,omitempty"`
}
