package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub/auth-service/internal/models"
	"github.com/talenthub/auth-service/internal/utils"
)

type authServiceFixture struct {
	auth       AuthService
	tokens     TokenService
	principals *fakePrincipalRepo
	principal  *models.Principal
	password   string
}

func newAuthServiceFixture(t *testing.T) *authServiceFixture {
	t.Helper()

	const password = "correct-horse-battery"

	// MinCost keeps the suite fast; production hashing goes through
	// utils.HashPassword.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	principal := newTestPrincipal()
	principal.PasswordHash = string(hash)
	principals := newFakePrincipalRepo(principal)

	cfg := newTestConfig()
	tokens := NewTokenService(cfg, NewTokenCodec(newTestKeys(t)), NewTokenBlacklistService(cfg.RevokeAllHorizon), principals)

	return &authServiceFixture{
		auth:       NewAuthService(tokens, principals),
		tokens:     tokens,
		principals: principals,
		principal:  principal,
		password:   password,
	}
}

func TestLogin_Success(t *testing.T) {
	f := newAuthServiceFixture(t)

	set, err := f.auth.Login(context.Background(), f.principal.Email, f.password)
	require.NoError(t, err)
	require.NotNil(t, set)
	assert.Equal(t, f.principal.Role, set.Role)
	assert.True(t, f.auth.Introspect(set.AccessToken).Active)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		setup    func()
		email    string
		password string
	}{
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: f.password,
		},
		{
			name:     "wrong password",
			email:    f.principal.Email,
			password: "not-the-password",
		},
		{
			name:     "disabled account",
			setup:    func() { f.principal.Enabled = false },
			email:    f.principal.Email,
			password: f.password,
		},
		{
			name:     "locked account",
			setup:    func() { f.principal.Enabled = true; f.principal.AccountNonLocked = false },
			email:    f.principal.Email,
			password: f.password,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			set, err := f.auth.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, utils.ErrBadCredentials)
			assert.Nil(t, set)
		})
	}
}

func TestLogout_RevokesEverythingForTheUser(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	// Two sessions for the same user; presenting tokens from one session
	// still blacklists the other.
	first, err := f.auth.Login(ctx, f.principal.Email, f.password)
	require.NoError(t, err)
	second, err := f.auth.Login(ctx, f.principal.Email, f.password)
	require.NoError(t, err)

	ok := f.auth.Logout(ctx, first.AccessToken, first.RefreshToken)
	assert.True(t, ok)

	for _, token := range []string{
		first.AccessToken, first.RefreshToken, first.IDToken,
		second.AccessToken, second.RefreshToken, second.IDToken,
	} {
		assert.False(t, f.auth.Introspect(token).Active)
	}
}

func TestLogout_SkipsUndecodableTokens(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	set, err := f.auth.Login(ctx, f.principal.Email, f.password)
	require.NoError(t, err)

	// Garbage before and after a valid token must not abort processing.
	ok := f.auth.Logout(ctx, "garbage", set.AccessToken, "also-garbage", "")
	assert.True(t, ok)
	assert.False(t, f.auth.Introspect(set.AccessToken).Active)
	assert.False(t, f.auth.Introspect(set.RefreshToken).Active)
}

func TestCurrentUser(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	principal, err := f.auth.CurrentUser(ctx, f.principal.ID.String())
	require.NoError(t, err)
	assert.Equal(t, f.principal.Email, principal.Email)
	assert.Equal(t, f.principal.DisplayName, principal.DisplayName)

	_, err = f.auth.CurrentUser(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, utils.ErrPrincipalNotFound)

	_, err = f.auth.CurrentUser(ctx, uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrPrincipalNotFound)
}

func TestCurrentUser_DisabledAccount(t *testing.T) {
	f := newAuthServiceFixture(t)

	f.principal.Enabled = false
	_, err := f.auth.CurrentUser(context.Background(), f.principal.ID.String())
	assert.ErrorIs(t, err, utils.ErrAccountDisabled)
}

func TestCurrentUser_DeletedAccount(t *testing.T) {
	f := newAuthServiceFixture(t)

	f.principals.remove(f.principal.ID)
	_, err := f.auth.CurrentUser(context.Background(), f.principal.ID.String())
	assert.ErrorIs(t, err, utils.ErrPrincipalNotFound)
}

func TestLogout_NothingProcessable(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	assert.False(t, f.auth.Logout(ctx))
	assert.False(t, f.auth.Logout(ctx, "", "garbage", "a.b.c"))
}
