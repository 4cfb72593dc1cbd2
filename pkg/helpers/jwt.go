package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token verification failures. Callers map each kind to its own response.
var (
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired          = errors.New("token has expired")
	ErrTokenMalformed        = errors.New("token is malformed")
)

const (
	purposeAuth  = "auth"
	purposeReset = "reset"
)

// resetLeeway covers the sub-second part of the reset expiry that
// NumericDate drops, so the stored expiration stays the one that decides.
const resetLeeway = 2 * time.Second

// JWTManager issues and verifies HS256 tokens signed with a single secret.
type JWTManager struct {
	Secret   []byte
	AuthTTL  time.Duration
	ResetTTL time.Duration

	now func() time.Time
}

func NewJWTManager(secret string, authTTL, resetTTL time.Duration) *JWTManager {
	return &JWTManager{
		Secret:   []byte(secret),
		AuthTTL:  authTTL,
		ResetTTL: resetTTL,
		now:      time.Now,
	}
}

// AuthClaims is the session assertion carried by auth tokens.
type AuthClaims struct {
	UserID    string
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ResetClaims is the single-purpose assertion carried by reset tokens.
type ResetClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type tokenClaims struct {
	UserID  string `json:"_id"`
	IsAdmin *bool  `json:"isAdmin,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// IssueAuthToken signs an auth token for c. A ttl <= 0 uses AuthTTL.
func (m *JWTManager) IssueAuthToken(c AuthClaims, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = m.AuthTTL
	}
	isAdmin := c.IsAdmin
	return m.issue(tokenClaims{UserID: c.UserID, IsAdmin: &isAdmin, Purpose: purposeAuth}, ttl)
}

// IssueResetToken signs a reset token for c. A ttl <= 0 uses ResetTTL.
func (m *JWTManager) IssueResetToken(c ResetClaims, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = m.ResetTTL
	}
	return m.issue(tokenClaims{UserID: c.UserID, Purpose: purposeReset}, ttl)
}

func (m *JWTManager) issue(claims tokenClaims, ttl time.Duration) (string, time.Time, error) {
	now := m.clock()
	exp := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// VerifyAuthToken checks signature, expiry and purpose of an auth token.
func (m *JWTManager) VerifyAuthToken(tokenStr string) (*AuthClaims, error) {
	claims, err := m.parse(tokenStr, purposeAuth)
	if err != nil {
		return nil, err
	}
	out := &AuthClaims{UserID: claims.UserID, IssuedAt: claims.IssuedAt.Time, ExpiresAt: claims.ExpiresAt.Time}
	if claims.IsAdmin != nil {
		out.IsAdmin = *claims.IsAdmin
	}
	return out, nil
}

// VerifyResetToken checks signature, expiry and purpose of a reset token.
func (m *JWTManager) VerifyResetToken(tokenStr string) (*ResetClaims, error) {
	claims, err := m.parse(tokenStr, purposeReset)
	if err != nil {
		return nil, err
	}
	return &ResetClaims{UserID: claims.UserID, IssuedAt: claims.IssuedAt.Time, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (m *JWTManager) parse(tokenStr, purpose string) (*tokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock),
	}
	if purpose == purposeReset {
		opts = append(opts, jwt.WithLeeway(resetLeeway))
	}
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.Secret, nil
	}, opts...)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrTokenInvalidSignature
	default:
		return nil, ErrTokenMalformed
	}
	if !tkn.Valid || claims.Purpose != purpose || claims.UserID == "" || claims.IssuedAt == nil {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

func (m *JWTManager) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}
