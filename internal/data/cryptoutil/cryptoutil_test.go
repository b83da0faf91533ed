package cryptoutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, 32)
}

func TestKeyRing_SealOpen(t *testing.T) {
	ring, err := NewKeyRing(testKey(1))
	require.NoError(t, err)

	payload := []byte(`{"tokens":{"authToken":"secret"}}`)
	sealed, err := ring.Seal(payload)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(sealed, sealedMagic))
	assert.NotContains(t, string(sealed), "secret")

	again, err := ring.Seal(payload)
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per seal")

	opened, err := ring.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, payload, opened)
}

func TestKeyRing_Rotation(t *testing.T) {
	old, err := NewKeyRing(testKey(1))
	require.NoError(t, err)
	sealed, err := old.Seal([]byte("hello"))
	require.NoError(t, err)

	rotated, err := NewKeyRing(testKey(2), testKey(1))
	require.NoError(t, err)
	opened, err := rotated.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(opened))

	fresh, err := NewKeyRing(testKey(3))
	require.NoError(t, err)
	_, err = fresh.Open(sealed)
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestKeyRing_Tampered(t *testing.T) {
	ring, err := NewKeyRing(testKey(1))
	require.NoError(t, err)
	sealed, err := ring.Seal([]byte("hello"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xff
	_, err = ring.Open(sealed)
	require.Error(t, err)

	_, err = ring.Open(sealed[:len(sealedMagic)+2])
	require.Error(t, err)
}

func TestKeyRing_Plaintext(t *testing.T) {
	ring, err := NewKeyRing(testKey(1))
	require.NoError(t, err)

	_, err = ring.Open([]byte(`{"id":"s-1"}`))
	require.ErrorIs(t, err, ErrNotSealed)

	ring.AcceptPlaintext = true
	got, err := ring.Open([]byte(`{"id":"s-1"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"s-1"}`, string(got))
}

func TestNewKeyRing_Invalid(t *testing.T) {
	_, err := NewKeyRing()
	require.Error(t, err)

	_, err = NewKeyRing([]byte("short"))
	require.ErrorContains(t, err, "32 bytes")
}

func TestParseKey(t *testing.T) {
	hexKey := strings.Repeat("ab", 32)
	got, err := ParseKey(hexKey)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xab}, 32), got)

	derived, err := ParseKey("correct horse battery staple")
	require.NoError(t, err)
	assert.Len(t, derived, 32)
	again, err := ParseKey("  correct horse battery staple ")
	require.NoError(t, err)
	assert.Equal(t, derived, again)

	_, err = ParseKey("   ")
	require.Error(t, err)
}

func TestPlain(t *testing.T) {
	var p Plain
	sealed, err := p.Seal([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), sealed)

	_, err = p.Open(append([]byte("gcm1:"), 1, 2, 3, 4))
	require.ErrorIs(t, err, ErrUnknownKey)
}
