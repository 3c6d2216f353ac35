package crypto

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	eng := NewCredentialEngine()

	s1, err := eng.GenerateSalt()
	require.NoError(t, err)
	s2, err := eng.GenerateSalt()
	require.NoError(t, err)

	require.Len(t, s1, 16)
	require.Len(t, s2, 16)
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestHashPassword_SelfDescribingFormat(t *testing.T) {
	eng := NewCredentialEngine()

	encoded, err := eng.HashPassword("secret", DefaultKDFParams)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))
	require.Contains(t, encoded, "m=19456,t=2,p=1")
	require.Len(t, strings.Split(encoded, "$"), 6)
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	eng := NewCredentialEngine()

	encoded, err := eng.HashPassword("correct horse battery staple", DefaultKDFParams)
	require.NoError(t, err)

	require.NoError(t, eng.VerifyPassword("correct horse battery staple", encoded))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	eng := NewCredentialEngine()

	encoded, err := eng.HashPassword("right", DefaultKDFParams)
	require.NoError(t, err)

	err = eng.VerifyPassword("wrong", encoded)
	require.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	eng := NewCredentialEngine()

	tests := []struct {
		name    string
		encoded string
		want    error
	}{
		{name: "empty", encoded: "", want: ErrHashMalformed},
		{name: "not enough sections", encoded: "$argon2id$v=19$m=19456,t=2,p=1", want: ErrHashMalformed},
		{name: "wrong algorithm", encoded: "$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$ZGlnZXN0", want: ErrUnsupportedAlgorithm},
		{name: "wrong version", encoded: "$argon2id$v=16$m=19456,t=2,p=1$c2FsdA$ZGlnZXN0", want: ErrIncompatibleVersion},
		{name: "bad salt encoding", encoded: "$argon2id$v=19$m=19456,t=2,p=1$!!$ZGlnZXN0", want: ErrHashMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := eng.VerifyPassword("whatever", tt.encoded)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHashPassword_SamePasswordDistinctHashes(t *testing.T) {
	eng := NewCredentialEngine()

	h1, err := eng.HashPassword("same-password", DefaultKDFParams)
	require.NoError(t, err)
	h2, err := eng.HashPassword("same-password", DefaultKDFParams)
	require.NoError(t, err)

	// fresh random salts must produce distinct encodings
	assert.NotEqual(t, h1, h2)

	// and both must still verify
	require.NoError(t, eng.VerifyPassword("same-password", h1))
	require.NoError(t, eng.VerifyPassword("same-password", h2))
}

func TestDeriveStorageKey_Deterministic(t *testing.T) {
	eng := NewCredentialEngine()
	salt := bytes.Repeat([]byte{0xAB}, 16)

	k1 := eng.DeriveStorageKey("pw", salt, DefaultKDFParams)
	k2 := eng.DeriveStorageKey("pw", salt, DefaultKDFParams)

	require.Len(t, k1, int(DefaultKDFParams.OutputLen))
	require.True(t, bytes.Equal(k1, k2), "expected identical keys for identical inputs")
}

func TestDeriveStorageKey_SaltChangesKey(t *testing.T) {
	eng := NewCredentialEngine()

	k1 := eng.DeriveStorageKey("pw", bytes.Repeat([]byte{0x01}, 16), DefaultKDFParams)
	k2 := eng.DeriveStorageKey("pw", bytes.Repeat([]byte{0x02}, 16), DefaultKDFParams)

	if bytes.Equal(k1, k2) {
		t.Fatalf("same password with different salts must yield different keys")
	}
}

func TestDeriveStorageKey_IndependentFromPasswordHash(t *testing.T) {
	eng := NewCredentialEngine()

	encoded, err := eng.HashPassword("pw", DefaultKDFParams)
	require.NoError(t, err)

	key := eng.DeriveStorageKey("pw", bytes.Repeat([]byte{0x03}, 16), DefaultKDFParams)

	// the PHC digest must not leak the storage key
	require.NotContains(t, encoded, string(key))
}

func TestKeyChecksum_StableAndKeyBound(t *testing.T) {
	eng := NewCredentialEngine()

	key := bytes.Repeat([]byte{0x42}, 32)
	other := bytes.Repeat([]byte{0x43}, 32)

	require.Equal(t, eng.KeyChecksum(key), eng.KeyChecksum(key))
	require.NotEqual(t, eng.KeyChecksum(key), eng.KeyChecksum(other))
	require.Len(t, eng.KeyChecksum(key), 64) // hex sha-256
}

func TestZeroize_OverwritesBuffer(t *testing.T) {
	key := []byte{1, 2, 3, 4}
	Zeroize(key)
	require.Equal(t, []byte{0, 0, 0, 0}, key)
}
