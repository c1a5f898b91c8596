package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talenthub/auth-service/internal/models"
	"github.com/talenthub/auth-service/internal/utils"
)

// TokenIssuer is the value of the "iss" claim on every token this
// service mints. The scheme is self-issued: the same process signs
// and verifies.
const TokenIssuer = "self"

// Claim names the codec registers and strips from the payload. Anything
// else in a token is opaque payload owned by the issuer.
const (
	claimIssuer    = "iss"
	claimSubject   = "sub"
	claimIssuedAt  = "iat"
	claimExpiresAt = "exp"
	claimJTI       = "jti"
	claimTokenType = "token_type"
)

// TokenClaims is the decoded form of a signed token. Extra holds the
// type-specific claims (roles, associated_access_token, email, ...)
// that the issuer attaches and reads back; the codec does not interpret
// them.
type TokenClaims struct {
	Issuer    string
	Subject   string
	TokenType models.TokenType
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Extra     map[string]any
}

// StringExtra returns the named payload claim if present and a string.
func (c *TokenClaims) StringExtra(key string) string {
	s, _ := c.Extra[key].(string)
	return s
}

// TokenCodec encodes and decodes signed tokens. Decoding verifies the
// signature against the current public key and rejects expired tokens.
type TokenCodec struct {
	keys *SigningKeys
}

func NewTokenCodec(keys *SigningKeys) *TokenCodec {
	return &TokenCodec{keys: keys}
}

// Encode signs the claims and returns the encoded token string.
func (c *TokenCodec) Encode(claims *TokenClaims) (string, error) {
	mapClaims := jwt.MapClaims{
		claimIssuer:    claims.Issuer,
		claimSubject:   claims.Subject,
		claimIssuedAt:  claims.IssuedAt.Unix(),
		claimExpiresAt: claims.ExpiresAt.Unix(),
		claimJTI:       claims.JTI,
		claimTokenType: string(claims.TokenType),
	}
	for k, v := range claims.Extra {
		mapClaims[k] = v
	}
	return c.keys.Sign(mapClaims)
}

// Decode parses and verifies an encoded token. Failures are reported as
// utils.ErrMalformedToken, utils.ErrSignatureInvalid or utils.ErrTokenExpired.
func (c *TokenCodec) Decode(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, c.keys.Keyfunc)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, utils.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, utils.ErrSignatureInvalid
		default:
			return nil, utils.ErrMalformedToken
		}
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, utils.ErrMalformedToken
	}

	iss, _ := mapClaims[claimIssuer].(string)
	if iss != TokenIssuer {
		return nil, utils.ErrMalformedToken
	}

	sub, ok := mapClaims[claimSubject].(string)
	if !ok || sub == "" {
		return nil, utils.ErrMalformedToken
	}

	exp, ok := mapClaims[claimExpiresAt].(float64)
	if !ok {
		return nil, utils.ErrMalformedToken
	}

	claims := &TokenClaims{
		Issuer:    iss,
		Subject:   sub,
		ExpiresAt: time.Unix(int64(exp), 0),
		Extra:     make(map[string]any),
	}

	if iat, ok := mapClaims[claimIssuedAt].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if jti, ok := mapClaims[claimJTI].(string); ok {
		claims.JTI = jti
	}
	if tokenType, ok := mapClaims[claimTokenType].(string); ok {
		claims.TokenType = models.TokenType(tokenType)
	}

	for k, v := range mapClaims {
		switch k {
		case claimIssuer, claimSubject, claimIssuedAt, claimExpiresAt, claimJTI, claimTokenType:
		default:
			claims.Extra[k] = v
		}
	}

	return claims, nil
}
