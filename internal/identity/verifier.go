package identity

import (
	"context"
	"errors"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"hackhub/internal/domain"
)

// ErrInvalidToken is the only failure a caller ever sees from Verify.
// Structural, signature, audience, issuer and expiry problems are deliberately
// indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid identity token")

// Claims is the normalized profile extracted from a verified provider ID token.
type Claims struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	GivenName     string
	FamilyName    string
	Picture       string
	Locale        string
}

// Verifier validates a raw provider-issued ID token and returns normalized
// claims. One implementation per provider; all share the OIDC core below.
type Verifier interface {
	Provider() domain.Provider
	Verify(ctx context.Context, rawIDToken string) (*Claims, error)
}

type idTokenClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
	jwtlib.RegisteredClaims
}

// oidcVerifier is the provider-agnostic core: RS256 signature against the
// provider's published key set, audience == our client id, issuer in the
// provider's accepted set, expiry in the future.
type oidcVerifier struct {
	provider domain.Provider
	clientID string
	issuers  []string
	keys     *KeySet
}

func (v *oidcVerifier) Provider() domain.Provider { return v.provider }

// Close releases the key-set cache. Safe to call once the verifier is no
// longer in use.
func (v *oidcVerifier) Close() {
	v.keys.Close()
}

func (v *oidcVerifier) Verify(ctx context.Context, rawIDToken string) (*Claims, error) {
	claims := &idTokenClaims{}
	token, err := jwtlib.ParseWithClaims(rawIDToken, claims, func(t *jwtlib.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		return v.keys.Key(ctx, kid)
	},
		jwtlib.WithValidMethods([]string{"RS256"}),
		jwtlib.WithAudience(v.clientID),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if !v.issuerAccepted(claims.Issuer) {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		GivenName:     claims.GivenName,
		FamilyName:    claims.FamilyName,
		Picture:       claims.Picture,
		Locale:        claims.Locale,
	}, nil
}

func (v *oidcVerifier) issuerAccepted(issuer string) bool {
	for _, iss := range v.issuers {
		if issuer == iss {
			return true
		}
	}
	return false
}
