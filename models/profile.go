package models

import "time"

// KDFParams holds the Argon2id cost parameters used for one profile.
//
// The triplet plus the output length is persisted per profile so that
// verification and key derivation stay reproducible even if the application
// defaults change in a later release.
type KDFParams struct {
	// Memory is the Argon2id memory cost in KiB.
	Memory uint32 `json:"m_cost"`

	// Time is the Argon2id iteration count.
	Time uint32 `json:"t_cost"`

	// Threads is the Argon2id parallelism degree.
	Threads uint8 `json:"p_cost"`

	// OutputLen is the derived key length in bytes.
	OutputLen uint32 `json:"output_len"`
}

// StoredProfile is one catalog entry: everything the application needs to
// authenticate a profile and re-derive its storage key. It never contains
// the password or the key itself.
type StoredProfile struct {
	// ID is the opaque, immutable profile identifier assigned at creation.
	ID string `json:"id"`

	// Name is the user-facing label.
	Name string `json:"name"`

	// CreatedAt is the creation timestamp, immutable.
	CreatedAt time.Time `json:"created_at"`

	// StorageLocation is the path of this profile's encrypted store,
	// assigned at creation. Must not collide across profiles.
	StorageLocation string `json:"storage_location"`

	// PasswordHash is the self-describing PHC hash string
	// (algorithm, version, costs, salt, digest). Verification only.
	PasswordHash string `json:"password_hash"`

	// KeySalt is the base64-encoded salt for storage-key derivation.
	// Independent of the salt embedded in PasswordHash.
	KeySalt string `json:"key_salt"`

	// KDFParams are the Argon2id costs used for both the hash and the key.
	KDFParams KDFParams `json:"kdf_params"`

	// KeyCheck is a hex SHA-256 checksum of the derived storage key,
	// computed once at creation. Lets open reject a wrong key before any
	// statement runs against the store.
	KeyCheck string `json:"key_check"`
}

// Summary strips a StoredProfile down to the fields the UI shell is allowed
// to see. Hash and salt material never leaves the data layer.
func (p StoredProfile) Summary() ProfileSummary {
	return ProfileSummary{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

// ProfileSummary is the public projection of a profile.
type ProfileSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
