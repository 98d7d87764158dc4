package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
)

// Hasher turns passwords into stored credentials and verifies them.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, credential string) (bool, error)
}

// Plain stores passwords verbatim. It is the default for the console shop.
type Plain struct{}

func (Plain) Hash(password string) (string, error) { return password, nil }

func (Plain) Verify(password, credential string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(password), []byte(credential)) == 1, nil
}

// Argon2id stores argon2id encoded hashes.
type Argon2id struct {
	Params *argon2id.Params
}

func (a Argon2id) Hash(password string) (string, error) {
	params := a.Params
	if params == nil {
		params = argon2id.DefaultParams
	}
	hash, err := argon2id.CreateHash(password, params)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func (Argon2id) Verify(password, credential string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, credential)
}

// NewHasher resolves a hasher by name ("plain" or "argon2id").
func NewHasher(name string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "plain":
		return Plain{}, nil
	case "argon2id":
		return Argon2id{}, nil
	default:
		return nil, fmt.Errorf("auth: unknown password hasher %q", name)
	}
}
