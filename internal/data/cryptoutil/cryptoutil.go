// Package cryptoutil seals session payloads before they are written to Redis. Sessions carry
// the backend bearer tokens, so a Redis dump must not be enough to act as a user.
package cryptoutil

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sealer encrypts and authenticates opaque payloads.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// sealedMagic prefixes every sealed payload, followed by a 4-byte key ID.
var sealedMagic = []byte("gcm1:")

const keyIDLen = 4

// ErrUnknownKey is returned when a payload was sealed with a key that is no longer configured.
var ErrUnknownKey = errors.New("sealed with an unknown key")

// ErrNotSealed is returned by Open for payloads without the sealed prefix when plaintext is not accepted.
var ErrNotSealed = errors.New("payload is not sealed")

// KeyRing seals with the first key and opens with any of them, so keys can be rotated by
// prepending the new one.
type KeyRing struct {
	current []byte
	aeads   map[string]cipher.AEAD
	// AcceptPlaintext lets Open pass through payloads written before sealing was enabled.
	AcceptPlaintext bool
}

// NewKeyRing builds a ring from 32-byte AES-256 keys. The first key seals.
func NewKeyRing(keys ...[]byte) (*KeyRing, error) {
	if len(keys) == 0 {
		return nil, errors.New("at least one key is required")
	}
	ring := &KeyRing{aeads: make(map[string]cipher.AEAD, len(keys))}
	for i, key := range keys {
		if len(key) != 32 {
			return nil, fmt.Errorf("key %d: aes-256 key must be 32 bytes, got %d", i, len(key))
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		id := keyID(key)
		if i == 0 {
			ring.current = id
		}
		ring.aeads[string(id)] = aead
	}
	return ring, nil
}

// ParseKey accepts a 64-character hex key as-is and derives 32 bytes from anything else with SHA-256.
func ParseKey(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("encryption key is empty")
	}
	if decoded, err := hex.DecodeString(raw); err == nil && len(decoded) == 32 {
		return decoded, nil
	}
	sum := sha256.Sum256([]byte(raw))
	return sum[:], nil
}

func keyID(key []byte) []byte {
	sum := sha256.Sum256(key)
	return sum[:keyIDLen]
}

// Seal returns magic || key ID || nonce || ciphertext. The key ID is bound as additional data.
func (k *KeyRing) Seal(plaintext []byte) ([]byte, error) {
	aead := k.aeads[string(k.current)]
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("read nonce: %w", err)
	}
	out := make([]byte, 0, len(sealedMagic)+keyIDLen+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, sealedMagic...)
	out = append(out, k.current...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, k.current), nil
}

// Open reverses Seal.
func (k *KeyRing) Open(sealed []byte) ([]byte, error) {
	if !bytes.HasPrefix(sealed, sealedMagic) {
		if k.AcceptPlaintext {
			return sealed, nil
		}
		return nil, ErrNotSealed
	}
	rest := sealed[len(sealedMagic):]
	if len(rest) < keyIDLen {
		return nil, errors.New("sealed payload too short")
	}
	id, rest := rest[:keyIDLen], rest[keyIDLen:]
	aead, ok := k.aeads[string(id)]
	if !ok {
		return nil, ErrUnknownKey
	}
	if len(rest) < aead.NonceSize() {
		return nil, errors.New("sealed payload too short")
	}
	nonce, ct := rest[:aead.NonceSize()], rest[aead.NonceSize():]
	pt, err := aead.Open(nil, nonce, ct, id)
	if err != nil {
		return nil, fmt.Errorf("open sealed payload: %w", err)
	}
	return pt, nil
}

// Plain stores payloads unchanged. Used when no key is configured.
type Plain struct{}

// Seal implements Sealer.
func (Plain) Seal(plaintext []byte) ([]byte, error) { return plaintext, nil }

// Open implements Sealer. Sealed payloads cannot be read without a key.
func (Plain) Open(sealed []byte) ([]byte, error) {
	if bytes.HasPrefix(sealed, sealedMagic) {
		return nil, ErrUnknownKey
	}
	return sealed, nil
}
