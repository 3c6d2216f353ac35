package crypto

import "github.com/smaillet/cabinet/models"

// CredentialEngine turns a profile password into its two independent
// artifacts: a verifiable hash and a reproducible storage key.
//
// Both operations run Argon2id, but with separate random salts and separate
// derivation calls, so neither output can be used to reconstruct the other.
// An attacker holding only the catalog file still has to pay the full
// memory-hard computation per password guess.
type CredentialEngine interface {
	// HashPassword runs Argon2id in password-hashing mode with a fresh
	// random salt and returns a self-describing PHC string
	// ($argon2id$v=19$m=..,t=..,p=..$salt$digest). Used only at profile
	// creation.
	HashPassword(password string, params models.KDFParams) (string, error)

	// VerifyPassword re-runs the hash using the parameters embedded in
	// encodedHash and compares digests in constant time.
	// Returns ErrPasswordMismatch when the password is wrong.
	VerifyPassword(password, encodedHash string) error

	// DeriveStorageKey runs Argon2id in raw-output mode with the storage
	// salt and the profile's persisted costs. Deterministic: identical
	// inputs always yield byte-identical keys of params.OutputLen bytes.
	DeriveStorageKey(password string, keySalt []byte, params models.KDFParams) []byte

	// GenerateSalt reads 16 random bytes from the OS CSPRNG.
	GenerateSalt() ([]byte, error)

	// KeyChecksum computes the hex SHA-256 checksum stored alongside a
	// profile so a wrong-but-plausible key is rejected at open time,
	// before any statement touches the encrypted store.
	KeyChecksum(key []byte) string
}
