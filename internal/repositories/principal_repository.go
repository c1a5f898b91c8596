package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/talenthub/auth-service/internal/models"
)

// PrincipalRepository is the user-record lookup capability the token
// issuer depends on. Get methods return nil, nil when no row matches.
type PrincipalRepository interface {
	Create(ctx context.Context, p *models.Principal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Principal, error)
	GetByEmail(ctx context.Context, email string) (*models.Principal, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type principalRepository struct {
	db DB
}

func NewPrincipalRepository(db DB) PrincipalRepository {
	return &principalRepository{db: db}
}

const baseSelectPrincipal = `
	SELECT id, email, password_hash, role, profile_id, display_name,
	       enabled, account_non_locked, credentials_non_expired, created_at
	FROM principals
`

// Create inserts the principal. The profile id links to a company or
// applicant record and is drawn from a DB sequence when left zero.
func (r *principalRepository) Create(ctx context.Context, p *models.Principal) error {
	if p.ProfileID != 0 {
		_, err := r.db.Exec(ctx, `
			INSERT INTO principals (
				id, email, password_hash, role, profile_id, display_name,
				enabled, account_non_locked, credentials_non_expired
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			p.ID, p.Email, p.PasswordHash, p.Role, p.ProfileID, p.DisplayName,
			p.Enabled, p.AccountNonLocked, p.CredentialsNonExpired,
		)
		return err
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO principals (
			id, email, password_hash, role, display_name,
			enabled, account_non_locked, credentials_non_expired
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING profile_id
	`,
		p.ID, p.Email, p.PasswordHash, p.Role, p.DisplayName,
		p.Enabled, p.AccountNonLocked, p.CredentialsNonExpired,
	)
	return row.Scan(&p.ProfileID)
}

func (r *principalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Principal, error) {
	row := r.db.QueryRow(ctx, baseSelectPrincipal+" WHERE id=$1", id)
	return r.scanPrincipal(row)
}

func (r *principalRepository) GetByEmail(ctx context.Context, email string) (*models.Principal, error) {
	row := r.db.QueryRow(ctx, baseSelectPrincipal+" WHERE email=$1", email)
	return r.scanPrincipal(row)
}

func (r *principalRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM principals WHERE email=$1)`, email,
	).Scan(&exists)
	return exists, err
}

func (r *principalRepository) scanPrincipal(row pgx.Row) (*models.Principal, error) {
	var p models.Principal
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.PasswordHash,
		&p.Role,
		&p.ProfileID,
		&p.DisplayName,
		&p.Enabled,
		&p.AccountNonLocked,
		&p.CredentialsNonExpired,
		&p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
