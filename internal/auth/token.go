package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized is returned when the presented operator token does
// not match the configured hash.
var ErrUnauthorized = errors.New("unauthorized")

// TokenGate checks operator tokens against a bcrypt hash. With no hash
// configured the gate is open; forced refreshes are then unprotected,
// which is acceptable for local development only.
type TokenGate struct {
	hash []byte
}

func NewTokenGate(bcryptHash string) *TokenGate {
	return &TokenGate{hash: []byte(bcryptHash)}
}

// Enabled reports whether a token hash is configured.
func (g *TokenGate) Enabled() bool {
	return len(g.hash) > 0
}

// Verify checks a presented token. Always succeeds when no hash is
// configured.
func (g *TokenGate) Verify(token string) error {
	if !g.Enabled() {
		return nil
	}
	if token == "" {
		return ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(token)); err != nil {
		return ErrUnauthorized
	}
	return nil
}

// HashToken produces the bcrypt hash to store in configuration.
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
