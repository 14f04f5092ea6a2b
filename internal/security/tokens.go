package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the session token lifetime when none is configured.
const DefaultSessionTTL = 7 * 24 * time.Hour

var (
	// ErrInvalidToken is the parent of every verification failure.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpired is returned when the token's exp is in the past.
	ErrExpired = fmt.Errorf("%w: expired", ErrInvalidToken)
	// ErrInvalidSignature is returned when the token cannot be verified with the
	// server secret: tampered, signed with another key or algorithm, or malformed.
	ErrInvalidSignature = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
	// ErrMissingSecret is returned by NewTokenCodec for an empty secret.
	ErrMissingSecret = errors.New("token signing secret is not configured")
)

// SessionClaims is the JWT payload of a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	AccountID string `json:"accountId"`
}

// Claims is the decoded, verified content of a session token.
type Claims struct {
	AccountID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec signs and verifies HS256 session tokens with a process-wide secret.
// Safe for concurrent use; the secret is read-only after construction.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	nowF   func() time.Time
}

// NewTokenCodec returns a codec for the given secret. ttl <= 0 selects DefaultSessionTTL.
func NewTokenCodec(secret []byte, ttl time.Duration) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenCodec{secret: key, ttl: ttl, nowF: time.Now}, nil
}

// TTL returns the lifetime applied by Sign.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Sign issues a token for accountID that expires after the codec TTL.
func (c *TokenCodec) Sign(accountID string) (token string, expiresAt time.Time, err error) {
	return c.SignWithTTL(accountID, c.ttl)
}

// SignWithTTL issues a token for accountID with exp = now + ttl. A random jti
// keeps tokens issued within the same second distinct.
func (c *TokenCodec) SignWithTTL(accountID string, ttl time.Duration) (token string, expiresAt time.Time, err error) {
	jti, err := generateJTI()
	if err != nil {
		return "", time.Time{}, err
	}
	now := c.nowF().UTC()
	expiresAt = now.Add(ttl)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		AccountID: accountID,
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify checks the signature and expiry of tokenString and returns its claims.
// Only HS256 is accepted. Failures are ErrExpired or ErrInvalidSignature.
func (c *TokenCodec) Verify(tokenString string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.nowF),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalidSignature
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.AccountID == "" {
		return Claims{}, ErrInvalidSignature
	}
	out := Claims{AccountID: claims.AccountID}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func generateJTI() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
