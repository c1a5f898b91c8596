package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/talenthub/auth-service/internal/config"
	"github.com/talenthub/auth-service/internal/models"
	"github.com/talenthub/auth-service/internal/repositories"
	"github.com/talenthub/auth-service/internal/utils"
)

// Payload claim names owned by the token service.
const (
	claimRoles           = "roles"
	claimProfileID       = "profile_id"
	claimAssociatedToken = "associated_access_token"
	claimEmail           = "email"
	claimName            = "name"
	claimAuthTime        = "auth_time"
)

// ---------------------------------------------------------------------
// TokenService interface
// ---------------------------------------------------------------------

// TokenService mints, rotates, revokes and introspects the linked
// access/refresh/ID token triple.
type TokenService interface {
	// IssueForPrincipal mints a fresh triple for the principal and records
	// all three tokens in the blacklist's per-user index. Callers get all
	// three tokens or an error; no partial triples are surfaced.
	IssueForPrincipal(ctx context.Context, p *models.Principal) (*models.TokenSet, error)

	// Rotate exchanges a refresh token for a new triple. The linked access
	// token and the presented refresh token are blacklisted. Every failure
	// on this path is reported as utils.ErrInvalidRefreshToken except a
	// well-formed token of the wrong type, which is utils.ErrWrongTokenType.
	Rotate(ctx context.Context, refreshToken string) (*models.TokenSet, error)

	// RevokeOne blacklists a single token, best-effort. A token that cannot
	// be decoded cannot be usefully blacklisted by content, so the call is
	// a logged no-op; it never fails the caller.
	RevokeOne(tokenString string)

	// RevokeAllForSubject blacklists every token ever recorded for the
	// subject, whatever their natural expiry.
	RevokeAllForSubject(subjectID string)

	// Introspect answers whether the token is currently valid. It is a
	// query, not a validator: it never returns an error, and a token that
	// fails to decode simply introspects as inactive.
	Introspect(tokenString string) models.Introspection

	// UsernameOf extracts the subject from a token, or utils.ErrInvalidToken.
	UsernameOf(tokenString string) (string, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type tokenService struct {
	codec      *TokenCodec
	blacklist  TokenBlacklistService
	principals repositories.PrincipalRepository

	accessExpiry  time.Duration
	refreshExpiry time.Duration
	idExpiry      time.Duration
}

func NewTokenService(
	cfg *config.Config,
	codec *TokenCodec,
	blacklist TokenBlacklistService,
	principals repositories.PrincipalRepository,
) TokenService {
	return &tokenService{
		codec:         codec,
		blacklist:     blacklist,
		principals:    principals,
		accessExpiry:  cfg.AccessTokenExpiry,
		refreshExpiry: cfg.RefreshTokenExpiry,
		idExpiry:      cfg.IDTokenExpiry,
	}
}

// ---------------------------------------------------------------------
// IssueForPrincipal
// ---------------------------------------------------------------------

func (s *tokenService) IssueForPrincipal(ctx context.Context, p *models.Principal) (*models.TokenSet, error) {
	now := time.Now()

	accessToken, err := s.generateAccessToken(p, now)
	if err != nil {
		return nil, err
	}

	// The refresh token must be minted after the access token so it can
	// embed the exact access-token string: that claim is the rotation
	// chain pointer.
	refreshToken, err := s.generateRefreshToken(p, accessToken, now)
	if err != nil {
		return nil, err
	}

	idToken, err := s.generateIDToken(p, now)
	if err != nil {
		return nil, err
	}

	utils.Logger.Infof("Generated all tokens for user %s", p.ID)

	return &models.TokenSet{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		IDToken:      idToken,
		Role:         p.Role,
	}, nil
}

func (s *tokenService) generateAccessToken(p *models.Principal, now time.Time) (string, error) {
	subject := p.ID.String()
	accessToken, err := s.codec.Encode(&TokenClaims{
		Issuer:    TokenIssuer,
		Subject:   subject,
		TokenType: models.TokenTypeAccess,
		JTI:       uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.accessExpiry),
		Extra: map[string]any{
			claimRoles:     []string{string(p.Role)},
			claimProfileID: p.ProfileID,
		},
	})
	if err != nil {
		return "", &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to sign access token", Err: err}
	}

	s.blacklist.RecordIssued(subject, accessToken)
	return accessToken, nil
}

func (s *tokenService) generateRefreshToken(p *models.Principal, accessToken string, now time.Time) (string, error) {
	subject := p.ID.String()
	refreshToken, err := s.codec.Encode(&TokenClaims{
		Issuer:    TokenIssuer,
		Subject:   subject,
		TokenType: models.TokenTypeRefresh,
		JTI:       uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshExpiry),
		Extra: map[string]any{
			claimAssociatedToken: accessToken,
		},
	})
	if err != nil {
		return "", &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to sign refresh token", Err: err}
	}

	s.blacklist.RecordIssued(subject, refreshToken)
	return refreshToken, nil
}

func (s *tokenService) generateIDToken(p *models.Principal, now time.Time) (string, error) {
	// Accounts registered before display names were captured fall back
	// to the email.
	name := p.DisplayName
	if name == "" {
		name = p.Email
	}

	subject := p.ID.String()
	idToken, err := s.codec.Encode(&TokenClaims{
		Issuer:    TokenIssuer,
		Subject:   subject,
		TokenType: models.TokenTypeID,
		JTI:       uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.idExpiry),
		Extra: map[string]any{
			claimEmail:     p.Email,
			claimName:      name,
			claimAuthTime:  now.Unix(),
			claimProfileID: p.ProfileID,
		},
	})
	if err != nil {
		return "", &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: "Failed to sign id token", Err: err}
	}

	s.blacklist.RecordIssued(subject, idToken)
	return idToken, nil
}

// ---------------------------------------------------------------------
// Rotate
// ---------------------------------------------------------------------

func (s *tokenService) Rotate(ctx context.Context, refreshToken string) (*models.TokenSet, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		// Raw codec detail must not leak past this boundary.
		utils.Logger.WithError(err).Warn("Refresh token failed verification during rotation")
		return nil, utils.ErrInvalidRefreshToken
	}

	if claims.TokenType != models.TokenTypeRefresh {
		return nil, utils.ErrWrongTokenType
	}

	// An already-rotated refresh token is blacklisted; reuse is rejected
	// even though its signature still verifies.
	if s.blacklist.IsBlacklisted(refreshToken) {
		utils.Logger.Warnf("Rejected reuse of a revoked refresh token for user %s", claims.Subject)
		return nil, utils.ErrInvalidRefreshToken
	}

	if linkedAccess := claims.StringExtra(claimAssociatedToken); linkedAccess != "" {
		s.blacklist.Blacklist(linkedAccess, claims.ExpiresAt)
		utils.Logger.Info("Blacklisted access token during refresh")
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, utils.ErrInvalidRefreshToken
	}
	principal, err := s.principals.GetByID(ctx, subjectID)
	if err != nil {
		utils.Logger.WithError(err).Error("Principal lookup failed during rotation")
		return nil, utils.ErrInvalidRefreshToken
	}
	if principal == nil {
		return nil, utils.ErrInvalidRefreshToken
	}

	newSet, err := s.IssueForPrincipal(ctx, principal)
	if err != nil {
		return nil, err
	}

	s.blacklist.Blacklist(refreshToken, claims.ExpiresAt)
	utils.Logger.Infof("Blacklisted old refresh token during refresh for user %s", claims.Subject)

	return newSet, nil
}

// ---------------------------------------------------------------------
// Revocation
// ---------------------------------------------------------------------

func (s *tokenService) RevokeOne(tokenString string) {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		utils.Logger.WithError(err).Warn("Failed to blacklist token")
		return
	}
	s.blacklist.Blacklist(tokenString, claims.ExpiresAt)
	utils.Logger.Infof("Token blacklisted: %s", claims.TokenType)
}

func (s *tokenService) RevokeAllForSubject(subjectID string) {
	s.blacklist.BlacklistAllForUser(subjectID)
	utils.Logger.Infof("Blacklisted all tokens for user %s", subjectID)
}

// ---------------------------------------------------------------------
// Introspection
// ---------------------------------------------------------------------

func (s *tokenService) Introspect(tokenString string) models.Introspection {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return models.Introspection{Active: false}
	}

	active := !s.blacklist.IsBlacklisted(tokenString) && time.Now().Before(claims.ExpiresAt)

	return models.Introspection{
		Active:    active,
		Subject:   claims.Subject,
		TokenType: claims.TokenType,
		ExpiresAt: claims.ExpiresAt.UnixMilli(),
	}
}

func (s *tokenService) UsernameOf(tokenString string) (string, error) {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		utils.Logger.WithError(err).Debug("Failed to extract subject from token")
		return "", utils.ErrInvalidToken
	}
	return claims.Subject, nil
}
