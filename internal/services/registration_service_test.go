package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthub/auth-service/internal/dtos"
	"github.com/talenthub/auth-service/internal/models"
	"github.com/talenthub/auth-service/internal/utils"
)

func newRegistrationFixture(t *testing.T) (RegistrationService, AuthService, *fakePrincipalRepo) {
	t.Helper()

	principals := newFakePrincipalRepo()
	cfg := newTestConfig()
	tokens := NewTokenService(cfg, NewTokenCodec(newTestKeys(t)), NewTokenBlacklistService(cfg.RevokeAllHorizon), principals)

	return NewRegistrationService(principals, tokens), NewAuthService(tokens, principals), principals
}

func TestRegisterCompany(t *testing.T) {
	registration, auth, principals := newRegistrationFixture(t)
	ctx := context.Background()

	req := dtos.CompanyRegisterRequest{
		Name:     "Acme Inc",
		Phone:    "+994501234567",
		Email:    "hiring@acme.example",
		Password: "s3cure-password",
	}

	set, err := registration.RegisterCompany(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCompany, set.Role)
	assert.True(t, auth.Introspect(set.AccessToken).Active)

	// Signup doubles as login, and the stored hash verifies the
	// original password afterwards.
	stored, err := principals.GetByEmail(ctx, req.Email)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, utils.CheckPasswordHash(req.Password, stored.PasswordHash))
	assert.Equal(t, "Acme Inc", stored.DisplayName)
	assert.NotZero(t, stored.ProfileID)
	assert.True(t, stored.CanLogin())
}

func TestRegisterApplicant(t *testing.T) {
	registration, _, principals := newRegistrationFixture(t)
	ctx := context.Background()

	set, err := registration.RegisterApplicant(ctx, dtos.ApplicantRegisterRequest{
		FirstName: "Leyla",
		LastName:  "Aliyeva",
		Email:     "leyla@example.com",
		Password:  "s3cure-password",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleApplicant, set.Role)

	stored, err := principals.GetByEmail(ctx, "leyla@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.RoleApplicant, stored.Role)
	assert.Equal(t, "Leyla Aliyeva", stored.DisplayName)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	registration, _, _ := newRegistrationFixture(t)
	ctx := context.Background()

	req := dtos.ApplicantRegisterRequest{
		FirstName: "First",
		LastName:  "Taker",
		Email:     "taken@example.com",
		Password:  "s3cure-password",
	}
	_, err := registration.RegisterApplicant(ctx, req)
	require.NoError(t, err)

	_, err = registration.RegisterApplicant(ctx, req)
	assert.ErrorIs(t, err, utils.ErrEmailExists)

	// The address is taken across account kinds too.
	_, err = registration.RegisterCompany(ctx, dtos.CompanyRegisterRequest{
		Name:     "Latecomer LLC",
		Phone:    "+994501234567",
		Email:    "taken@example.com",
		Password: "s3cure-password",
	})
	assert.ErrorIs(t, err, utils.ErrEmailExists)
}
