package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const sessionKeyPrefix = "session:"

// cachedSession is the Redis representation of a resolved session.
type cachedSession struct {
	User      user.User `json:"user"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionService resolves session cookies into identities.
type SessionService struct {
	users  *repository.UserRepository
	redis  *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
	now    func() time.Time
}

func NewSessionService(users *repository.UserRepository, rdb *redis.Client, ttl time.Duration, logger *zerolog.Logger) *SessionService {
	return &SessionService{
		users:  users,
		redis:  rdb,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// HashToken returns the hex sha256 stored in sessions.token_hash.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func sessionKey(hash string) string {
	return sessionKeyPrefix + hash
}

// cacheTTL bounds a cache entry by both the configured TTL and the session's
// remaining lifetime.
func cacheTTL(now, expiresAt time.Time, max time.Duration) time.Duration {
	left := expiresAt.Sub(now)
	if left < max {
		return left
	}
	return max
}

func unauthenticated() error {
	return errs.NewUnauthorizedError("No autenticado", true)
}

// Authenticate resolves a raw session token.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*user.SessionUser, error) {
	if token == "" {
		return nil, unauthenticated()
	}

	hash := HashToken(token)

	if su := s.fromCache(ctx, hash); su != nil {
		return su, nil
	}

	su, err := s.users.FindSession(ctx, hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, unauthenticated()
	}
	if err != nil {
		return nil, err
	}

	s.store(ctx, su)
	return su, nil
}

func (s *SessionService) fromCache(ctx context.Context, hash string) *user.SessionUser {
	if s.redis == nil {
		return nil
	}

	raw, err := s.redis.Get(ctx, sessionKey(hash)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("session cache read failed, falling back to database")
		}
		return nil
	}

	var cached cachedSession
	if err := json.Unmarshal(raw, &cached); err != nil {
		s.logger.Warn().Err(err).Msg("discarding corrupt session cache entry")
		return nil
	}
	if !cached.ExpiresAt.After(s.now()) {
		return nil
	}

	return &user.SessionUser{
		User:      cached.User,
		Roles:     cached.Roles,
		TokenHash: hash,
		ExpiresAt: cached.ExpiresAt,
	}
}

func (s *SessionService) store(ctx context.Context, su *user.SessionUser) {
	if s.redis == nil || s.ttl <= 0 {
		return
	}

	ttl := cacheTTL(s.now(), su.ExpiresAt, s.ttl)
	if ttl <= 0 {
		return
	}

	raw, err := json.Marshal(cachedSession{User: su.User, Roles: su.Roles, ExpiresAt: su.ExpiresAt})
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, sessionKey(su.TokenHash), raw, ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("session cache write failed")
	}
}

func (s *SessionService) forget(ctx context.Context, hashes []string) {
	if s.redis == nil || len(hashes) == 0 {
		return
	}

	keys := make([]string, len(hashes))
	for i, h := range hashes {
		keys[i] = sessionKey(h)
	}

	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Int("keys", len(keys)).Msg("session cache invalidation failed")
	}
}

// RevokeAll revokes every session of a user and drops them from the cache.
func (s *SessionService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	hashes, err := s.users.RevokeSessions(ctx, userID)
	if err != nil {
		return err
	}
	s.forget(ctx, hashes)

	zerolog.Ctx(ctx).Info().
		Str("target_user_id", userID.String()).
		Int("sessions", len(hashes)).
		Msg("revoked sessions")
	return nil
}

// Invalidate drops a user's cached sessions so the next request reloads
// roles and profile from the database.
func (s *SessionService) Invalidate(ctx context.Context, userID uuid.UUID) error {
	hashes, err := s.users.ActiveSessionHashes(ctx, userID)
	if err != nil {
		return err
	}
	s.forget(ctx, hashes)
	return nil
}
