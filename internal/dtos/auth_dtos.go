package dtos

// ----------------------
// Login
// ----------------------

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries the full triple issued on login, registration
// and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	Role         string `json:"role"`
}

// ----------------------
// Refresh Token
// ----------------------

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ----------------------
// Logout
// ----------------------

// LogoutRequest tokens are both optional; the bearer token on the
// Authorization header is processed as well.
type LogoutRequest struct {
	Token        string `json:"token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

// ----------------------
// Registration
// ----------------------

type CompanyRegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type ApplicantRegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// ----------------------
// Misc
// ----------------------

type CurrentUserResponse struct {
	Subject     string `json:"subject"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	ProfileID   int64  `json:"profile_id"`
	DisplayName string `json:"display_name"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
}
