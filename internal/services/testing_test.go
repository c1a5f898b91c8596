package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/talenthub/auth-service/internal/config"
	"github.com/talenthub/auth-service/internal/models"
)

func newTestKeys(t *testing.T) *SigningKeys {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return NewSigningKeys(key, &key.PublicKey)
}

func newTestConfig() *config.Config {
	return &config.Config{
		AccessTokenExpiry:  1 * time.Hour,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		IDTokenExpiry:      1 * time.Hour,
		RevokeAllHorizon:   24 * time.Hour,
	}
}

func newTestPrincipal() *models.Principal {
	return &models.Principal{
		ID:           uuid.New(),
		Email:        "dev@example.com",
		PasswordHash: "$2a$14$unused",
		Role:         models.RoleApplicant,
		ProfileID:    42,
		DisplayName:  "Dev Example",

		Enabled:               true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,

		CreatedAt: time.Now(),
	}
}

// fakePrincipalRepo is an in-memory PrincipalRepository for tests.
type fakePrincipalRepo struct {
	mu         sync.Mutex
	principals map[uuid.UUID]*models.Principal
}

func newFakePrincipalRepo(seed ...*models.Principal) *fakePrincipalRepo {
	repo := &fakePrincipalRepo{
		principals: make(map[uuid.UUID]*models.Principal),
	}
	for _, p := range seed {
		repo.principals[p.ID] = p
	}
	return repo
}

func (r *fakePrincipalRepo) Create(ctx context.Context, p *models.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ProfileID == 0 {
		p.ProfileID = int64(len(r.principals) + 1)
	}
	r.principals[p.ID] = p
	return nil
}

func (r *fakePrincipalRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.principals[id], nil
}

func (r *fakePrincipalRepo) GetByEmail(ctx context.Context, email string) (*models.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.principals {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePrincipalRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	p, _ := r.GetByEmail(context.Background(), email)
	return p != nil, nil
}

func (r *fakePrincipalRepo) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.principals, id)
}
