package identity

import (
	"time"

	"hackhub/internal/domain"
)

const (
	googleIssuer     = "https://accounts.google.com"
	googleIssuerBare = "accounts.google.com"
	googleJWKSURL    = "https://www.googleapis.com/oauth2/v3/certs"
)

// NewGoogleVerifier verifies Google ID tokens for the given OAuth client id.
// jwksURL is overridable for tests; empty means Google's published endpoint.
func NewGoogleVerifier(clientID, jwksURL string, cacheTTL time.Duration) Verifier {
	if jwksURL == "" {
		jwksURL = googleJWKSURL
	}
	return &oidcVerifier{
		provider: domain.ProviderGoogle,
		clientID: clientID,
		// Google historically issues both forms.
		issuers: []string{googleIssuer, googleIssuerBare},
		keys:    NewKeySet(jwksURL, cacheTTL),
	}
}
