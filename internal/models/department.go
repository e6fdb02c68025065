package models

// Department groups instructors and courses under one academic unit.
type Department struct {
	ID             int64  `db:"department_id" json:"department_id"`
	Name           string `db:"department_name" json:"department_name"`
	OfficeLocation string `db:"office_location" json:"office_location"`
	ChairID        *int64 `db:"chair_id" json:"chair_id,omitempty"`
}

// DepartmentDetail enriches Department with the resolved chair name.
type DepartmentDetail struct {
	Department
	ChairName *string `db:"chair_name" json:"chair_name,omitempty"`
}
