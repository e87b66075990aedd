package identity

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// KeySet fetches a provider's JWKS endpoint and caches decoded RSA public keys
// by kid. Fetches happen lazily on a cache miss; a miss after a fresh fetch
// means the kid is genuinely unknown.
type KeySet struct {
	url        string
	httpClient *http.Client
	cache      *ttlcache.Cache[string, *rsa.PublicKey]
}

func NewKeySet(url string, ttl time.Duration) *KeySet {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, *rsa.PublicKey](ttl),
		ttlcache.WithDisableTouchOnHit[string, *rsa.PublicKey](),
	)
	go cache.Start()

	return &KeySet{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
	}
}

// Close stops the cache janitor goroutine started by NewKeySet.
func (k *KeySet) Close() {
	k.cache.Stop()
}

func (k *KeySet) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if kid == "" {
		return nil, fmt.Errorf("token header has no kid")
	}
	if item := k.cache.Get(kid); item != nil {
		return item.Value(), nil
	}

	if err := k.refresh(ctx); err != nil {
		return nil, err
	}

	item := k.cache.Get(kid)
	if item == nil {
		return nil, fmt.Errorf("no key %q in key set", kid)
	}
	return item.Value(), nil
}

type jwksDocument struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (k *KeySet) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url, nil)
	if err != nil {
		return err
	}

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch key set: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch key set: status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("decode key set: %w", err)
	}

	for _, key := range doc.Keys {
		if key.Kty != "RSA" || key.Kid == "" {
			continue
		}
		pub, err := key.rsaPublicKey()
		if err != nil {
			continue
		}
		k.cache.Set(key.Kid, pub, ttlcache.DefaultTTL)
	}
	return nil
}

func (j jwk) rsaPublicKey() (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(j.N)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(j.E)
	if err != nil {
		return nil, err
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}
	if e == 0 {
		return nil, fmt.Errorf("jwk has zero exponent")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
