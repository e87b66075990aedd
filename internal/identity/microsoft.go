package identity

import (
	"strings"
	"time"

	"hackhub/internal/domain"
)

// NewMicrosoftVerifier verifies Microsoft Entra ID tokens. issuer is
// tenant-specific (https://login.microsoftonline.com/{tenant}/v2.0); when
// jwksURL is empty it is derived from the issuer the same way the discovery
// document would resolve it.
func NewMicrosoftVerifier(clientID, issuer, jwksURL string, cacheTTL time.Duration) Verifier {
	if jwksURL == "" {
		jwksURL = strings.TrimSuffix(issuer, "/v2.0") + "/discovery/v2.0/keys"
	}
	return &oidcVerifier{
		provider: domain.ProviderMicrosoft,
		clientID: clientID,
		issuers:  []string{issuer},
		keys:     NewKeySet(jwksURL, cacheTTL),
	}
}
