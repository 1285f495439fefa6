package api

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/hexmech/hexmech/internal/constants"
)

// Commander sessions are self-issued HS256 JWTs held in an HttpOnly cookie.
// Only the login identity travels in the token; battle authorization is
// always re-checked against the commander seats in storage.

// commanderClaims is the session payload for one signed-in commander.
type commanderClaims struct {
	Email    string `json:"sub"`
	Name     string `json:"name"`
	IssuedAt int64  `json:"iat"`
	Expires  int64  `json:"exp"`
}

// fallbackSecret backs sessions when SESSION_SECRET is unset (development
// only); being per-process, it invalidates every session on restart.
var fallbackSecret []byte

func sessionSecret() ([]byte, error) {
	if secret := os.Getenv(constants.EnvSessionSecret); secret != "" {
		return []byte(secret), nil
	}
	if len(fallbackSecret) == 0 {
		fallbackSecret = make([]byte, 32)
		if _, err := crand.Read(fallbackSecret); err != nil {
			return nil, errors.New("failed to generate fallback session secret")
		}
	}
	return fallbackSecret, nil
}

func encodeSegment(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func decodeSegment(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

func signSegments(unsigned string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(unsigned))
	return encodeSegment(mac.Sum(nil))
}

// issueCommanderSession mints a signed session token for the commander.
func issueCommanderSession(email, name string, ttl time.Duration) (string, error) {
	secret, err := sessionSecret()
	if err != nil {
		return "", err
	}
	hdrJSON, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	now := time.Now().Unix()
	claims := commanderClaims{
		Email:    email,
		Name:     name,
		IssuedAt: now,
		Expires:  now + int64(ttl.Seconds()),
	}
	clJSON, _ := json.Marshal(claims)
	unsigned := encodeSegment(hdrJSON) + "." + encodeSegment(clJSON)
	return unsigned + "." + signSegments(unsigned, secret), nil
}

// verifyCommanderSession checks the token's signature and expiry and
// returns the embedded claims.
func verifyCommanderSession(token string) (*commanderClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid token format")
	}
	secret, err := sessionSecret()
	if err != nil {
		return nil, err
	}
	unsigned := parts[0] + "." + parts[1]
	expected := signSegments(unsigned, secret)
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return nil, errors.New("invalid signature")
	}
	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, err
	}
	var claims commanderClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, err
	}
	if time.Now().Unix() > claims.Expires {
		return nil, errors.New("session expired")
	}
	return &claims, nil
}
