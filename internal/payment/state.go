package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidState is returned when a callback state token fails
// signature or claim validation.
var ErrInvalidState = errors.New("invalid payment state token")

// StateSigner issues and verifies the signed state tokens attached to
// provider callback URLs. The token binds a payment reference to the
// user that initiated it, so a callback cannot be replayed against
// another user's transaction.
type StateSigner struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

type stateClaims struct {
	Reference string `json:"ref"`
	jwt.RegisteredClaims
}

// Sign produces a state token for the given payment reference and user.
func (s *StateSigner) Sign(reference, userID string) (string, error) {
	now := time.Now().UTC()

	claims := stateClaims{
		Reference: reference,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign state token: %w", err)
	}
	return token, nil
}

// Verify checks the token's signature and expiry and returns the
// payment reference and user id it was issued for.
func (s *StateSigner) Verify(token string) (reference, userID string, err error) {
	var claims stateClaims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", "", ErrInvalidState
	}
	if claims.Reference == "" || claims.Subject == "" {
		return "", "", ErrInvalidState
	}

	return claims.Reference, claims.Subject, nil
}
