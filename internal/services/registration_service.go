package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talenthub/auth-service/internal/dtos"
	"github.com/talenthub/auth-service/internal/models"
	"github.com/talenthub/auth-service/internal/repositories"
	"github.com/talenthub/auth-service/internal/utils"
)

// RegistrationService creates company and applicant accounts and hands
// back a freshly issued token triple so signup doubles as login.
type RegistrationService interface {
	RegisterCompany(ctx context.Context, req dtos.CompanyRegisterRequest) (*models.TokenSet, error)
	RegisterApplicant(ctx context.Context, req dtos.ApplicantRegisterRequest) (*models.TokenSet, error)
}

type registrationService struct {
	principals repositories.PrincipalRepository
	tokens     TokenService
}

func NewRegistrationService(principals repositories.PrincipalRepository, tokens TokenService) RegistrationService {
	return &registrationService{
		principals: principals,
		tokens:     tokens,
	}
}

func (s *registrationService) RegisterCompany(ctx context.Context, req dtos.CompanyRegisterRequest) (*models.TokenSet, error) {
	tokenSet, err := s.register(ctx, req.Email, req.Password, req.Name, models.RoleCompany)
	if err != nil {
		return nil, err
	}
	utils.Logger.Infof("Company with email %s has been registered successfully", req.Email)
	return tokenSet, nil
}

func (s *registrationService) RegisterApplicant(ctx context.Context, req dtos.ApplicantRegisterRequest) (*models.TokenSet, error) {
	displayName := strings.TrimSpace(req.FirstName + " " + req.LastName)
	tokenSet, err := s.register(ctx, req.Email, req.Password, displayName, models.RoleApplicant)
	if err != nil {
		return nil, err
	}
	utils.Logger.Infof("Applicant with email %s has been registered successfully", req.Email)
	return tokenSet, nil
}

func (s *registrationService) register(ctx context.Context, email, password, displayName string, role models.Role) (*models.TokenSet, error) {
	exists, err := s.principals.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to check email availability", Err: err}
	}
	if exists {
		utils.Logger.Warnf("Registration failed: email %s already exists", email)
		return nil, utils.ErrEmailExists
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to hash password", Err: err}
	}

	principal := &models.Principal{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		DisplayName:  displayName,

		Enabled:               true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,

		CreatedAt: time.Now(),
	}

	// Create assigns the profile id linking the account to its company
	// or applicant record.
	if err := s.principals.Create(ctx, principal); err != nil {
		return nil, &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to create account", Err: err}
	}

	return s.tokens.IssueForPrincipal(ctx, principal)
}
