package services

import (
	"sync"
	"time"

	"github.com/talenthub/auth-service/internal/utils"
)

// TokenBlacklistService is the process-wide revocation registry. A token
// present in the blacklist is considered revoked regardless of its own
// signature or expiry state. The per-user index exists purely so that
// logout can blacklist everything a user was ever issued.
//
// All methods are safe for concurrent use from request handlers and the
// sweep timer; callers need no external locking.
type TokenBlacklistService interface {
	// RecordIssued appends the token to the user's index. The index has
	// no expiry semantics of its own and grows until the next
	// BlacklistAllForUser sweep for that user.
	RecordIssued(userID string, tokenString string)

	// Blacklist inserts or refreshes the entry for the token. Idempotent;
	// last writer wins on concurrent calls for the same token.
	Blacklist(tokenString string, expiresAt time.Time)

	IsBlacklisted(tokenString string) bool

	// BlacklistAllForUser blacklists every token indexed for the user
	// with a uniform conservative horizon instead of each token's real
	// expiry, then clears the user's index set. Returns the number of
	// tokens blacklisted.
	BlacklistAllForUser(userID string) int

	// SweepExpired deletes blacklist entries whose recorded expiry has
	// passed and returns how many were removed. Safe to run concurrently
	// with all other operations.
	SweepExpired() int
}

type tokenBlacklistService struct {
	mu sync.RWMutex

	// token string -> recorded expiry of the blacklist entry
	blacklisted map[string]time.Time

	// user id -> set of every token string issued to that user
	userTokens map[string]map[string]struct{}

	revokeAllHorizon time.Duration
}

func NewTokenBlacklistService(revokeAllHorizon time.Duration) TokenBlacklistService {
	return &tokenBlacklistService{
		blacklisted:      make(map[string]time.Time),
		userTokens:       make(map[string]map[string]struct{}),
		revokeAllHorizon: revokeAllHorizon,
	}
}

func (s *tokenBlacklistService) RecordIssued(userID string, tokenString string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.userTokens[userID]
	if !ok {
		set = make(map[string]struct{})
		s.userTokens[userID] = set
	}
	set[tokenString] = struct{}{}

	utils.Logger.Debugf("Recorded issued token for user %s", userID)
}

func (s *tokenBlacklistService) Blacklist(tokenString string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklisted[tokenString] = expiresAt
}

func (s *tokenBlacklistService) IsBlacklisted(tokenString string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, found := s.blacklisted[tokenString]
	return found
}

func (s *tokenBlacklistService) BlacklistAllForUser(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.userTokens[userID]
	if !ok || len(set) == 0 {
		utils.Logger.Infof("No tokens found to blacklist for user %s", userID)
		return 0
	}

	// A uniform horizon keeps every token covered without decoding each
	// one to learn its real expiry.
	expiry := time.Now().Add(s.revokeAllHorizon)
	for token := range set {
		s.blacklisted[token] = expiry
	}

	count := len(set)
	utils.Logger.Infof("Blacklisted %d tokens for user %s", count, userID)

	// Clear the set but keep the index key, matching how re-login after
	// logout starts recording into the same slot.
	s.userTokens[userID] = make(map[string]struct{})

	return count
}

func (s *tokenBlacklistService) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for token, expiry := range s.blacklisted {
		if expiry.Before(now) {
			delete(s.blacklisted, token)
			removed++
		}
	}

	utils.Logger.Infof("Cleaned up %d expired tokens from blacklist", removed)
	return removed
}
