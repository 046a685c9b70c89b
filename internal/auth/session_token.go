// Package auth carries the admin session across HTTP requests as a signed
// cookie value.
package auth

import (
	"errors"
	"time"

	"github.com/example/luxa-shop/internal/domain/admin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrNotLoggedIn  = errors.New("session is not logged in")
)

const (
	issuer  = "luxa-admin"
	subject = "admin"
)

// Claims represents the session token claims. IssuedAt is the instant the
// admin logged in.
type Claims struct {
	jwt.RegisteredClaims
}

// SessionTokens signs and restores admin sessions
type SessionTokens struct {
	secretKey []byte
	now       func() time.Time
}

// NewSessionTokens creates a token service. now may be nil.
func NewSessionTokens(secretKey string, now func() time.Time) *SessionTokens {
	if now == nil {
		now = time.Now
	}
	return &SessionTokens{secretKey: []byte(secretKey), now: now}
}

// Issue signs a token for a logged-in session. The token expires when the
// session does.
func (s *SessionTokens) Issue(session *admin.Session) (string, time.Time, error) {
	if session == nil || !session.IsLoggedIn() {
		return "", time.Time{}, ErrNotLoggedIn
	}
	expiresAt := session.ExpiresAt()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(session.StartedAt()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Restore validates tokenString and rebuilds the session it was issued
// for. The caller still runs the session through admin.Gate.Check.
func (s *SessionTokens) Restore(tokenString string) (*admin.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuer(issuer),
		jwt.WithSubject(subject),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.IssuedAt == nil {
		return nil, ErrInvalidToken
	}
	return admin.RestoreSession(claims.IssuedAt.Time), nil
}
