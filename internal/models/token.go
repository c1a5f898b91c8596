package models

// TokenType is carried in the "token_type" claim of every issued token.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access_token"
	TokenTypeRefresh TokenType = "refresh_token"
	TokenTypeID      TokenType = "id_token"
)

// TokenSet is the linked triple minted in a single issuance. The refresh
// token embeds the exact access-token string it was minted with; that
// claim is the only linkage used for cascading invalidation on rotation.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	Role         Role   `json:"role"`
}

// Introspection is the answer to "is this token currently valid".
// A token that cannot be decoded introspects as inactive with the
// remaining fields zeroed; introspection never reports why.
type Introspection struct {
	Active    bool      `json:"active"`
	Subject   string    `json:"subject,omitempty"`
	TokenType TokenType `json:"token_type,omitempty"`
	ExpiresAt int64     `json:"expires_at,omitempty"`
}
