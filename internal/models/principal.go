package models

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates the account types that can own tokens.
type Role string

const (
	RoleCompany   Role = "ROLE_COMPANY"
	RoleApplicant Role = "ROLE_APPLICANT"
	RoleAdmin     Role = "ROLE_ADMIN"
)

// Principal is an authenticated identity: a user account with a role
// and a linked company or applicant profile. Accounts are never deleted
// in-band; the status flags shadow them instead.
type Principal struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ProfileID    int64     `json:"profile_id"`

	// DisplayName is the company name or the applicant's full name,
	// captured at registration for the ID token's name claim.
	DisplayName string `json:"display_name"`

	Enabled               bool `json:"enabled"`
	AccountNonLocked      bool `json:"account_non_locked"`
	CredentialsNonExpired bool `json:"credentials_non_expired"`

	CreatedAt time.Time `json:"created_at"`
}

// CanLogin reports whether the account's status flags permit authentication.
func (p *Principal) CanLogin() bool {
	return p.Enabled && p.AccountNonLocked && p.CredentialsNonExpired
}
