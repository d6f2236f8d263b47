package dto

// EmployeeResponse is the employee JSON shape.
type EmployeeResponse struct {
	ID        int64  `json:"id"`
	Specialty string `json:"specialty"`
	FullName  string `json:"full_name"`
}

// EmployeeUpdateRequest payload. ID is optional and must match the path.
type EmployeeUpdateRequest struct {
	ID        int64   `json:"id"`
	Specialty *string `json:"specialty"`
}

// EmployeeCreateRequest payload for staff-driven employee creation.
type EmployeeCreateRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Specialty string `json:"specialty"`
}
