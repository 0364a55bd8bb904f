package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/PierreClouet/WorkEat/internal/core/domain"
	"github.com/PierreClouet/WorkEat/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore implements ports.SessionStore with Redis as the source of
// truth and a signed JWT as the client-facing envelope. The JWT carries only
// the session id; deleting the Redis key revokes the session immediately,
// which a bare JWT could not do.
type SessionStore struct {
	client *redis.Client
	secret string
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, secret string, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, secret: secret, ttl: ttl}
}

// Create stores the identity under a fresh session id and returns the signed
// token the client must present on subsequent requests.
func (s *SessionStore) Create(ctx context.Context, identity ports.SessionIdentity) (string, error) {
	sid, err := newSessionID()
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sid), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		_ = s.client.Del(ctx, s.key(sid)).Err()
		return "", fmt.Errorf("create session: sign token: %w", err)
	}
	return token, nil
}

// Resolve returns the identity bound to the token, or ErrNotLoggedIn when
// the token is malformed, expired, or the session has been destroyed.
func (s *SessionStore) Resolve(ctx context.Context, token string) (ports.SessionIdentity, error) {
	sid, err := s.sessionID(token)
	if err != nil {
		return ports.SessionIdentity{}, domain.ErrNotLoggedIn
	}

	payload, err := s.client.Get(ctx, s.key(sid)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ports.SessionIdentity{}, domain.ErrNotLoggedIn
		}
		return ports.SessionIdentity{}, fmt.Errorf("resolve session: %w", err)
	}

	var identity ports.SessionIdentity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return ports.SessionIdentity{}, fmt.Errorf("resolve session: %w", err)
	}
	return identity, nil
}

// Destroy revokes the session behind the token. Destroying an already absent
// session is not an error.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	sid, err := s.sessionID(token)
	if err != nil {
		return domain.ErrNotLoggedIn
	}
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *SessionStore) sessionID(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sid, nil
}

func (s *SessionStore) key(sid string) string {
	return "session:" + sid
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
