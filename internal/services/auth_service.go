package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/talenthub/auth-service/internal/models"
	"github.com/talenthub/auth-service/internal/repositories"
	"github.com/talenthub/auth-service/internal/utils"
)

// ---------------------------------------------------------------------
// AuthService interface
// ---------------------------------------------------------------------

// AuthService handles login, logout and introspection on top of the
// token service.
type AuthService interface {
	// Login authenticates by email and password, then issues a triple.
	// Unknown email, wrong password and blocked accounts all fail with
	// utils.ErrBadCredentials so callers cannot probe which it was.
	Login(ctx context.Context, email, password string) (*models.TokenSet, error)

	// Logout best-effort revokes every presented token, then blacklists
	// everything ever issued to the user once one token identifies them.
	// Returns false only when no presented token could be processed; an
	// undecodable token never aborts handling of the others.
	Logout(ctx context.Context, presentedTokens ...string) bool

	// CurrentUser loads the account behind an authenticated subject.
	// utils.ErrPrincipalNotFound when the account no longer exists,
	// utils.ErrAccountDisabled when its status flags block it.
	CurrentUser(ctx context.Context, subjectID string) (*models.Principal, error)

	Introspect(tokenString string) models.Introspection
}

type authService struct {
	tokens     TokenService
	principals repositories.PrincipalRepository
}

func NewAuthService(tokens TokenService, principals repositories.PrincipalRepository) AuthService {
	return &authService{
		tokens:     tokens,
		principals: principals,
	}
}

// ---------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------

func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenSet, error) {
	principal, err := s.principals.GetByEmail(ctx, email)
	if err != nil {
		utils.Logger.WithError(err).Error("Principal lookup failed during login")
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to look up account", Err: err}
	}
	if principal == nil {
		utils.Logger.Warnf("Login failed: no account for %s", email)
		return nil, utils.ErrBadCredentials
	}

	if !utils.CheckPasswordHash(password, principal.PasswordHash) {
		utils.Logger.Warnf("Login failed: bad password for %s", email)
		return nil, utils.ErrBadCredentials
	}

	if !principal.CanLogin() {
		utils.Logger.Warnf("Login failed: account %s is disabled or locked", email)
		return nil, utils.ErrBadCredentials
	}

	tokenSet, err := s.tokens.IssueForPrincipal(ctx, principal)
	if err != nil {
		return nil, err
	}

	utils.Logger.Infof("User logged in successfully: %s", email)
	return tokenSet, nil
}

// ---------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------

func (s *authService) Logout(ctx context.Context, presentedTokens ...string) bool {
	processed := false
	var subject string

	for _, token := range presentedTokens {
		if token == "" {
			continue
		}

		// Best-effort: an undecodable token is skipped so the remaining
		// tokens still get processed.
		sub, err := s.tokens.UsernameOf(token)
		if err != nil {
			utils.Logger.Warn("Failed to process a presented logout token")
			continue
		}
		if subject == "" {
			subject = sub
		}

		s.tokens.RevokeOne(token)
		processed = true
	}

	if subject != "" {
		s.tokens.RevokeAllForSubject(subject)
		utils.Logger.Infof("All tokens blacklisted for user %s", subject)
		processed = true
	}

	return processed
}

// ---------------------------------------------------------------------
// CurrentUser
// ---------------------------------------------------------------------

func (s *authService) CurrentUser(ctx context.Context, subjectID string) (*models.Principal, error) {
	id, err := uuid.Parse(subjectID)
	if err != nil {
		utils.Logger.Warnf("Rejected malformed subject id %q", subjectID)
		return nil, utils.ErrPrincipalNotFound
	}

	principal, err := s.principals.GetByID(ctx, id)
	if err != nil {
		utils.Logger.WithError(err).Error("Principal lookup failed for current user")
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to look up account", Err: err}
	}
	if principal == nil {
		return nil, utils.ErrPrincipalNotFound
	}
	if !principal.CanLogin() {
		return nil, utils.ErrAccountDisabled
	}

	return principal, nil
}

// ---------------------------------------------------------------------
// Introspection
// ---------------------------------------------------------------------

func (s *authService) Introspect(tokenString string) models.Introspection {
	return s.tokens.Introspect(tokenString)
}
