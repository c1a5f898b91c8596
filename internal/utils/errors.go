package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	// Codec-level failures. These never cross the issuer boundary: the
	// token service folds them into ErrInvalidToken / ErrInvalidRefreshToken
	// before reporting to callers.
	ErrMalformedToken   = errors.New("malformed_token")
	ErrSignatureInvalid = errors.New("signature_invalid")
	ErrTokenExpired     = errors.New("token_expired")

	// Issuer-level failures.
	ErrWrongTokenType       = errors.New("wrong_token_type")
	ErrInvalidRefreshToken  = errors.New("invalid_refresh_token")
	ErrInvalidToken         = errors.New("invalid_token")
	ErrBadCredentials       = errors.New("bad_credentials")
	ErrPrincipalNotFound    = errors.New("principal_not_found")
	ErrAccountDisabled      = errors.New("account_disabled")

	// Registration failures.
	ErrEmailExists = errors.New("email_exists")
)

// AppError carries a status code and public error code from
// the service layer up to the controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
