package dto

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	AccountType string  `json:"account_type"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Password    string  `json:"password"`
	Address     *string `json:"address"`
	Specialty   *string `json:"specialty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Token string `json:"token"`
	Staff bool   `json:"staff"`
}

// LoginResponse carries only valid=false on bad credentials.
type LoginResponse struct {
	Valid bool   `json:"valid"`
	Token string `json:"token,omitempty"`
	Staff *bool  `json:"staff,omitempty"`
}

// CustomerResponse is the customer JSON shape.
type CustomerResponse struct {
	ID       int64  `json:"id"`
	User     int64  `json:"user"`
	Address  string `json:"address"`
	FullName string `json:"full_name"`
}

// StringValue dereferences optional request strings.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
