package tokens

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalid = errors.New("invalid token")

// Issuer mints and validates the service's own tokens: short-lived access
// tokens and long-lived refresh tokens, both HS256 over a service-held secret.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type AccessClaims struct {
	AccountID int64    `json:"account_id"`
	Roles     []string `json:"roles,omitempty"`
	jwtlib.RegisteredClaims
}

// RefreshClaims carries just enough for the rotation path to cross-check the
// stored record's owner. Everything else lives out-of-band in refresh_tokens.
type RefreshClaims struct {
	AccountID int64 `json:"account_id"`
	jwtlib.RegisteredClaims
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *Issuer) AccessTTL() time.Duration  { return s.accessTTL }
func (s *Issuer) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *Issuer) GenerateAccessToken(accountID int64, roles []string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		AccountID: accountID,
		Roles:     roles,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Issuer) ParseAccessToken(raw string) (*AccessClaims, error) {
	token, err := jwtlib.ParseWithClaims(raw, &AccessClaims{}, s.keyFunc,
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalid
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, ErrInvalid
	}
	return claims, nil
}

func (s *Issuer) GenerateRefreshToken(accountID int64) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		AccountID: accountID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.refreshTTL)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseRefreshToken checks structure and signature only. Expiry is not
// validated here: the session manager enforces it against the stored record so
// that an expired-but-known token fails with its own distinct reason instead
// of looking malformed.
func (s *Issuer) ParseRefreshToken(raw string) (*RefreshClaims, error) {
	token, err := jwtlib.ParseWithClaims(raw, &RefreshClaims{}, s.keyFunc,
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithoutClaimsValidation())
	if err != nil || !token.Valid {
		return nil, ErrInvalid
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok {
		return nil, ErrInvalid
	}
	return claims, nil
}

func (s *Issuer) keyFunc(t *jwtlib.Token) (any, error) {
	return s.secret, nil
}
