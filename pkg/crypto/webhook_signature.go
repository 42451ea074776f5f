package crypto

import (
	stdcrypto "crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	jose "github.com/go-jose/go-jose/v3"
)

const (
	// WebhookSignatureHeader carries "t=<unix-ms>,v0=<base64 signature>"
	WebhookSignatureHeader = "X-Webhook-Signature"
	// DefaultWebhookTolerance bounds how far the signed timestamp may drift from now
	DefaultWebhookTolerance = 10 * time.Minute
)

var (
	ErrMalformedSignatureHeader = errors.New("malformed webhook signature header")
	ErrUnsupportedPublicKey     = errors.New("webhook public key is not an RSA key")

	pemDelimiter = regexp.MustCompile(`-----(BEGIN|END) [A-Z0-9 ]+-----`)
)

// WebhookVerifier checks provider webhook signatures (RSA PKCS#1 v1.5 over
// SHA-256 of "{t}.{rawBody}") and rejects timestamps outside the tolerance.
type WebhookVerifier struct {
	publicKey *rsa.PublicKey
	tolerance time.Duration
	now       func() time.Time
}

// NewWebhookVerifier builds a verifier from a PEM/SPKI or JWK encoded public key.
// An empty key yields a disabled verifier: deployments without a key skip verification.
func NewWebhookVerifier(publicKey string, tolerance time.Duration) (*WebhookVerifier, error) {
	if tolerance <= 0 {
		tolerance = DefaultWebhookTolerance
	}
	v := &WebhookVerifier{tolerance: tolerance, now: time.Now}
	if strings.TrimSpace(publicKey) == "" {
		return v, nil
	}

	key, err := ParseWebhookPublicKey(publicKey)
	if err != nil {
		return nil, err
	}
	v.publicKey = key
	return v, nil
}

// Enabled reports whether a public key is configured
func (v *WebhookVerifier) Enabled() bool {
	return v != nil && v.publicKey != nil
}

// Verify returns true only when the header is well formed, fresh and carries a
// valid signature of the untouched raw body. It never panics or errors; any
// failure is a false.
func (v *WebhookVerifier) Verify(header string, rawBody []byte) bool {
	if !v.Enabled() {
		return false
	}

	timestamp, signature, err := ParseSignatureHeader(header)
	if err != nil {
		return false
	}

	sentMs, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	// Integer bounds: a Duration from Sub saturates on extreme timestamps
	nowMs := v.now().UnixMilli()
	toleranceMs := v.tolerance.Milliseconds()
	if sentMs > nowMs+toleranceMs || sentMs < nowMs-toleranceMs {
		return false
	}

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}

	digest := sha256.Sum256([]byte(timestamp + "." + string(rawBody)))
	return rsa.VerifyPKCS1v15(v.publicKey, stdcrypto.SHA256, digest[:], sig) == nil
}

// ParseSignatureHeader extracts the t and v0 components. Both are required.
func ParseSignatureHeader(header string) (timestamp, signature string, err error) {
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v0":
			signature = value
		}
	}
	if timestamp == "" || signature == "" {
		return "", "", ErrMalformedSignatureHeader
	}
	return timestamp, signature, nil
}

// ParseWebhookPublicKey accepts a JWK (JSON) or a PEM/SPKI key. PEM delimiters
// and whitespace are stripped before base64 decoding so keys pasted into a
// single env var line still parse.
func ParseWebhookPublicKey(raw string) (*rsa.PublicKey, error) {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "{") {
		var jwk jose.JSONWebKey
		if err := jwk.UnmarshalJSON([]byte(trimmed)); err != nil {
			return nil, fmt.Errorf("failed to parse webhook JWK: %w", err)
		}
		pub, ok := jwk.Key.(*rsa.PublicKey)
		if !ok {
			return nil, ErrUnsupportedPublicKey
		}
		return pub, nil
	}

	body := strings.ReplaceAll(trimmed, `\n`, "\n")
	body = pemDelimiter.ReplaceAllString(body, "")
	body = strings.Join(strings.Fields(body), "")

	der, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode webhook public key: %w", err)
	}

	if parsed, err := x509.ParsePKIXPublicKey(der); err == nil {
		pub, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, ErrUnsupportedPublicKey
		}
		return pub, nil
	}

	pub, err := x509.ParsePKCS1PublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse webhook public key: %w", err)
	}
	return pub, nil
}

// SignWebhookPayload produces a signature header value for body at ts. Used by
// local replay tooling and tests to emulate provider deliveries.
func SignWebhookPayload(key *rsa.PrivateKey, ts time.Time, body []byte) (string, error) {
	return signWebhookTimestamp(key, strconv.FormatInt(ts.UnixMilli(), 10), body)
}

func signWebhookTimestamp(key *rsa.PrivateKey, timestamp string, body []byte) (string, error) {
	digest := sha256.Sum256([]byte(timestamp + "." + string(body)))
	sig, err := rsa.SignPKCS1v15(nil, key, stdcrypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign webhook payload: %w", err)
	}
	return "t=" + timestamp + ",v0=" + base64.StdEncoding.EncodeToString(sig), nil
}
