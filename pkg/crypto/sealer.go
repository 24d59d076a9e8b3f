// Package crypto seals provider API keys held by the settings store.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned when the sealing secret is empty.
	ErrInvalidKey = errors.New("invalid sealing secret: must not be empty")
	// ErrOpenFailed is returned when a sealed value cannot be opened.
	ErrOpenFailed = errors.New("open failed: invalid sealed value or wrong secret")
)

// KeySealer encrypts secrets with AES-256-GCM.
type KeySealer struct {
	gcm cipher.AEAD
}

// NewKeySealer creates a sealer from a secret. A base64 string decoding to
// exactly 32 bytes is used as the key; anything else is hashed with SHA-256.
func NewKeySealer(secret string) (*KeySealer, error) {
	if secret == "" {
		return nil, ErrInvalidKey
	}

	decoded, err := base64.StdEncoding.DecodeString(secret)
	if err == nil && len(decoded) == 32 {
		return newKeySealer(decoded)
	}
	sum := sha256.Sum256([]byte(secret))
	return newKeySealer(sum[:])
}

// NewEphemeralKeySealer creates a sealer with a random key. Values sealed
// with it cannot be opened after the process exits.
func NewEphemeralKeySealer() *KeySealer {
	key := make([]byte, 32)
	rand.Read(key)

	s, err := newKeySealer(key)
	if err != nil {
		// aes.NewCipher only fails on bad key sizes.
		panic(err)
	}
	return s
}

func newKeySealer(key []byte) (*KeySealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &KeySealer{gcm: gcm}, nil
}

// Seal encrypts plaintext and returns base64(nonce || ciphertext).
// Empty input seals to "".
func (s *KeySealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := s.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. Empty input opens to "".
func (s *KeySealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode failed", ErrOpenFailed)
	}

	nonceSize := s.gcm.NonceSize()
	if len(data) < nonceSize+s.gcm.Overhead() {
		return "", fmt.Errorf("%w: value too short", ErrOpenFailed)
	}

	plaintext, err := s.gcm.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrOpenFailed)
	}
	return string(plaintext), nil
}
