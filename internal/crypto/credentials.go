// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sébastien Maillet

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/smaillet/cabinet/models"
)

// saltLen is the random salt size in bytes, for both the hashing salt and
// the storage-key salt.
const saltLen = 16

// keyCheckDomain separates the key checksum from any other SHA-256 use of
// the same key material.
const keyCheckDomain = "cabinet/key-check/v1"

// DefaultKDFParams are the Argon2id costs applied to newly created profiles.
// Existing profiles keep the costs persisted in their catalog entry.
var DefaultKDFParams = models.KDFParams{
	Memory:    19456, // KiB
	Time:      2,
	Threads:   1,
	OutputLen: 32,
}

// credentialEngine is the Argon2id-backed implementation of
// [CredentialEngine]. Stateless; safe for concurrent use.
type credentialEngine struct{}

// NewCredentialEngine constructs the production [CredentialEngine].
func NewCredentialEngine() CredentialEngine {
	return &credentialEngine{}
}

// GenerateSalt implements [CredentialEngine].
func (e *credentialEngine) GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("read random salt: %w", err)
	}
	return salt, nil
}

// HashPassword implements [CredentialEngine]. The returned string embeds
// everything VerifyPassword needs, so later changes to the application
// defaults never break stored hashes.
func (e *credentialEngine) HashPassword(password string, params models.KDFParams) (string, error) {
	salt, err := e.GenerateSalt()
	if err != nil {
		return "", err
	}

	digest := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, params.OutputLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		params.Memory,
		params.Time,
		params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	return encoded, nil
}

// VerifyPassword implements [CredentialEngine]. The comparison uses
// [subtle.ConstantTimeCompare]; the password itself is never logged.
func (e *credentialEngine) VerifyPassword(password, encodedHash string) error {
	params, salt, digest, err := decodeHash(encodedHash)
	if err != nil {
		return err
	}

	computed := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, params.OutputLen)

	if subtle.ConstantTimeCompare(digest, computed) != 1 {
		return ErrPasswordMismatch
	}

	return nil
}

// DeriveStorageKey implements [CredentialEngine]. The same password, salt
// and costs must always yield a bit-identical key: the encrypted store can
// only ever be opened by the exact key it was created with.
func (e *credentialEngine) DeriveStorageKey(password string, keySalt []byte, params models.KDFParams) []byte {
	return argon2.IDKey([]byte(password), keySalt, params.Time, params.Memory, params.Threads, params.OutputLen)
}

// KeyChecksum implements [CredentialEngine]. SHA-256 over the key plus a
// fixed domain string; irreversible, so it is safe to persist next to the
// (non-secret) key salt.
func (e *credentialEngine) KeyChecksum(key []byte) string {
	h := sha256.New()
	h.Write(key)
	h.Write([]byte(keyCheckDomain))
	return hex.EncodeToString(h.Sum(nil))
}

// decodeHash splits a PHC argon2id string back into its parameters, salt
// and digest.
func decodeHash(encodedHash string) (models.KDFParams, []byte, []byte, error) {
	var params models.KDFParams

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return params, nil, nil, ErrHashMalformed
	}

	if parts[1] != "argon2id" {
		return params, nil, nil, ErrUnsupportedAlgorithm
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, ErrHashMalformed
	}
	if version != argon2.Version {
		return params, nil, nil, ErrIncompatibleVersion
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Time, &params.Threads); err != nil {
		return params, nil, nil, ErrHashMalformed
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, ErrHashMalformed
	}

	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, ErrHashMalformed
	}
	params.OutputLen = uint32(len(digest))

	return params, salt, digest, nil
}

// Zeroize overwrites key material in place before it is released.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
