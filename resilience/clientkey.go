package resilience

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ClientKeyer derives the admission-control key for a caller from the raw
// identifier the transport layer hands over (remote address, API key, or
// bearer token).
//
// Contract:
// - Determinism: the same caller must always map to the same key.
// - Concurrency: implementations must be safe for concurrent use.
type ClientKeyer interface {
	ClientKey(raw string) (string, error)
}

// IPClientKeyer keys clients by remote IP, discarding the ephemeral port.
type IPClientKeyer struct{}

// ClientKey returns the host part of a host:port remote address, or the
// input unchanged when it carries no port.
func (IPClientKeyer) ClientKey(remoteAddr string) (string, error) {
	if remoteAddr == "" {
		return "", ErrNoClientKey
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return "ip:" + host, nil
	}
	return "ip:" + remoteAddr, nil
}

// APIKeyClientKeyer keys clients by a SHA-256 digest of the presented API
// key, so raw credentials never sit in limiter state.
type APIKeyClientKeyer struct{}

// ClientKey returns "key:" + the first 16 hex characters of the key digest.
func (APIKeyClientKeyer) ClientKey(apiKey string) (string, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return "", ErrNoClientKey
	}
	digest := sha256.Sum256([]byte(apiKey))
	return "key:" + hex.EncodeToString(digest[:8]), nil
}

// TokenClientKeyer keys clients by the subject claim of a bearer token.
//
// The token is parsed without signature verification: admission control
// runs in front of authentication, and the derived key only buckets
// traffic - it grants nothing.
type TokenClientKeyer struct{}

// ClientKey extracts the subject claim from a JWT, tolerating a
// "Bearer " prefix.
func (TokenClientKeyer) ClientKey(token string) (string, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return "", ErrNoClientKey
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", ErrNoClientKey
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrNoClientKey
	}
	return "sub:" + sub, nil
}

// Ensure keyers implement ClientKeyer
var (
	_ ClientKeyer = IPClientKeyer{}
	_ ClientKeyer = APIKeyClientKeyer{}
	_ ClientKeyer = TokenClientKeyer{}
)
