package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/talenthub/auth-service/internal/dtos"
	"github.com/talenthub/auth-service/internal/middleware"
	"github.com/talenthub/auth-service/internal/models"
	"github.com/talenthub/auth-service/internal/services"
	"github.com/talenthub/auth-service/internal/utils"
)

var authValidate = validator.New()

type AuthController struct {
	authService  services.AuthService
	tokenService services.TokenService
}

func NewAuthController(authService services.AuthService, tokenService services.TokenService) *AuthController {
	return &AuthController{
		authService:  authService,
		tokenService: tokenService,
	}
}

func tokenResponseFrom(set *models.TokenSet) dtos.TokenResponse {
	return dtos.TokenResponse{
		AccessToken:  set.AccessToken,
		RefreshToken: set.RefreshToken,
		IDToken:      set.IDToken,
		Role:         string(set.Role),
	}
}

// ---------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid email or password format", nil, err,
		)
		return
	}

	tokenSet, err := c.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrBadCredentials) {
			utils.RespondErrorWithCode(
				w, http.StatusUnauthorized, utils.ErrCodeInvalidCredentials, "Authentication failed", nil,
			)
			return
		}
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tokenResponseFrom(tokenSet))
}

// ---------------------------------------------------------------------
// Refresh
// ---------------------------------------------------------------------

func (c *AuthController) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dtos.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := authValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Missing refresh token", nil, err,
		)
		return
	}

	tokenSet, err := c.tokenService.Rotate(r.Context(), req.RefreshToken)
	if err != nil {
		// Both wrong-type and invalid tokens surface as one uniform
		// authentication failure.
		if errors.Is(err, utils.ErrInvalidRefreshToken) || errors.Is(err, utils.ErrWrongTokenType) {
			utils.RespondErrorWithCode(
				w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid refresh token", nil,
			)
			return
		}
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tokenResponseFrom(tokenSet))
}

// ---------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	var req dtos.LogoutRequest
	if r.Body != nil {
		// Body is optional; a bearer token alone is enough to log out.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	bearerToken, _ := middleware.ExtractBearerToken(r)

	processed := c.authService.Logout(r.Context(), req.Token, bearerToken, req.RefreshToken)
	if !processed {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "No valid tokens provided for logout", nil,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.LogoutResponse{Message: "Logged out successfully"})
}

// ---------------------------------------------------------------------
// Introspection
// ---------------------------------------------------------------------

func (c *AuthController) Introspect(w http.ResponseWriter, r *http.Request) {
	tokenStr, err := middleware.ExtractBearerToken(r)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, models.Introspection{Active: false})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, c.authService.Introspect(tokenStr))
}

// ---------------------------------------------------------------------
// Current user
// ---------------------------------------------------------------------

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	subject, ok := r.Context().Value(middleware.ContextKeyUserID).(string)
	if !ok || subject == "" {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing subject", nil,
		)
		return
	}

	principal, err := c.authService.CurrentUser(r.Context(), subject)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrPrincipalNotFound):
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, "Account not found", nil,
			)
		case errors.Is(err, utils.ErrAccountDisabled):
			utils.RespondErrorWithCode(
				w, http.StatusForbidden, utils.ErrCodeUnauthorized, "Account is disabled", nil,
			)
		default:
			utils.HandleAppError(w, err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.CurrentUserResponse{
		Subject:     principal.ID.String(),
		Email:       principal.Email,
		Role:        string(principal.Role),
		ProfileID:   principal.ProfileID,
		DisplayName: principal.DisplayName,
	})
}
