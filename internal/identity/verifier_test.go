package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testClientID = "test-client-id"
	testKid      = "test-key-1"
)

type providerFixture struct {
	key     *rsa.PrivateKey
	jwksURL string
}

func newProviderFixture(t *testing.T) *providerFixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	doc := jwksDocument{Keys: []jwk{{
		Kty: "RSA",
		Kid: testKid,
		Use: "sig",
		Alg: "RS256",
		N:   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
	}}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(server.Close)

	return &providerFixture{key: key, jwksURL: server.URL}
}

func closeAfterTest(t *testing.T, v Verifier) Verifier {
	t.Helper()
	t.Cleanup(func() {
		if closer, ok := v.(interface{ Close() }); ok {
			closer.Close()
		}
	})
	return v
}

type tokenOverrides struct {
	audience string
	issuer   string
	expires  time.Time
	kid      string
	noEmail  bool
}

func (f *providerFixture) signIDToken(t *testing.T, o tokenOverrides) string {
	t.Helper()

	if o.audience == "" {
		o.audience = testClientID
	}
	if o.issuer == "" {
		o.issuer = "https://accounts.google.com"
	}
	if o.expires.IsZero() {
		o.expires = time.Now().Add(time.Hour)
	}
	if o.kid == "" {
		o.kid = testKid
	}

	claims := jwtlib.MapClaims{
		"sub":            "google-sub-1",
		"aud":            o.audience,
		"iss":            o.issuer,
		"exp":            o.expires.Unix(),
		"iat":            time.Now().Unix(),
		"email":          "alice@example.com",
		"email_verified": true,
		"name":           "Alice Example",
		"given_name":     "Alice",
		"family_name":    "Example",
	}
	if o.noEmail {
		delete(claims, "email")
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, claims)
	token.Header["kid"] = o.kid

	raw, err := token.SignedString(f.key)
	require.NoError(t, err)
	return raw
}

func TestVerifyGoogleIDToken(t *testing.T) {
	f := newProviderFixture(t)
	v := closeAfterTest(t, NewGoogleVerifier(testClientID, f.jwksURL, time.Minute))

	claims, err := v.Verify(context.Background(), f.signIDToken(t, tokenOverrides{}))
	require.NoError(t, err)

	assert.Equal(t, "google-sub-1", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice Example", claims.Name)
	assert.True(t, claims.EmailVerified)
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	f := newProviderFixture(t)
	v := closeAfterTest(t, NewGoogleVerifier(testClientID, f.jwksURL, time.Minute))

	_, err := v.Verify(context.Background(), f.signIDToken(t, tokenOverrides{audience: "someone-else"}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	f := newProviderFixture(t)
	v := closeAfterTest(t, NewGoogleVerifier(testClientID, f.jwksURL, time.Minute))

	_, err := v.Verify(context.Background(), f.signIDToken(t, tokenOverrides{issuer: "https://evil.example.com"}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	f := newProviderFixture(t)
	v := closeAfterTest(t, NewGoogleVerifier(testClientID, f.jwksURL, time.Minute))

	_, err := v.Verify(context.Background(), f.signIDToken(t, tokenOverrides{expires: time.Now().Add(-time.Hour)}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnknownKid(t *testing.T) {
	f := newProviderFixture(t)
	v := closeAfterTest(t, NewGoogleVerifier(testClientID, f.jwksURL, time.Minute))

	_, err := v.Verify(context.Background(), f.signIDToken(t, tokenOverrides{kid: "unknown-key"}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingEmail(t *testing.T) {
	f := newProviderFixture(t)
	v := closeAfterTest(t, NewGoogleVerifier(testClientID, f.jwksURL, time.Minute))

	_, err := v.Verify(context.Background(), f.signIDToken(t, tokenOverrides{noEmail: true}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsSymmetricAlg(t *testing.T) {
	f := newProviderFixture(t)
	v := closeAfterTest(t, NewGoogleVerifier(testClientID, f.jwksURL, time.Minute))

	// A token signed with HS256 must never pass, whatever the key.
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub":   "google-sub-1",
		"aud":   testClientID,
		"iss":   "https://accounts.google.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"email": "alice@example.com",
	})
	token.Header["kid"] = testKid
	raw, err := token.SignedString([]byte("hmac-secret"))
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestKeySetClose(t *testing.T) {
	f := newProviderFixture(t)
	ks := NewKeySet(f.jwksURL, time.Minute)

	_, err := ks.Key(context.Background(), testKid)
	require.NoError(t, err)

	ks.Close()

	// Cached keys stay readable after the janitor goroutine stops.
	pub, err := ks.Key(context.Background(), testKid)
	require.NoError(t, err)
	assert.Equal(t, f.key.PublicKey.N, pub.N)
}

func TestVerifyMicrosoftIssuer(t *testing.T) {
	f := newProviderFixture(t)
	issuer := "https://login.microsoftonline.com/tenant-1/v2.0"
	v := closeAfterTest(t, NewMicrosoftVerifier(testClientID, issuer, f.jwksURL, time.Minute))

	claims, err := v.Verify(context.Background(), f.signIDToken(t, tokenOverrides{issuer: issuer}))
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", claims.Subject)

	// Google's issuer is not acceptable to the Microsoft verifier.
	_, err = v.Verify(context.Background(), f.signIDToken(t, tokenOverrides{}))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
