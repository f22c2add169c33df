package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"redviva-data/internal/domain"
)

var (
	ErrNoToken      = errors.New("no access token")
	ErrTokenExpired = errors.New("access token expired")
	ErrTokenInvalid = errors.New("access token invalid")
)

// TokenVerifier checks the auth service's HS256 access tokens locally,
// without a round trip per request.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verify parses and validates an access token and returns the session
// identity carried in it.
func (v *TokenVerifier) Verify(tokenString string) (*domain.Session, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	session := &domain.Session{
		UserID: claims.Subject,
		Email:  claims.Email,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

// SignForTest issues a token the verifier accepts. Test helper only.
func (v *TokenVerifier) SignForTest(userID, email string, ttl time.Duration) (string, error) {
	claims := &accessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
