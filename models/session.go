package models

// ActiveSession is the in-memory record of the currently unlocked profile.
// At most one exists per process; it is owned by the session holder and
// lives until it is replaced, closed, or the process exits.
type ActiveSession struct {
	// ProfileID identifies the unlocked profile.
	ProfileID string

	// StorageLocation is copied from the StoredProfile at unlock time.
	StorageLocation string

	// DerivedKey is the raw storage key. Memory only, never persisted.
	DerivedKey []byte
}
