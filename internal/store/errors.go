package store

import "errors"

// Sentinel errors returned by the encrypted store. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrOpeningStore is returned when the database file cannot be opened
	// or prepared for use.
	ErrOpeningStore = errors.New("error opening encrypted store")

	// ErrApplyingKey is returned when the key pragma itself fails. Note
	// that a wrong key does not fail here: SQLCipher accepts any key and
	// only errors on the first real read or write.
	ErrApplyingKey = errors.New("error applying encryption key")

	// ErrMigratingSchema is returned when the idempotent schema check
	// fails. With a wrong key this is typically the first visible error.
	ErrMigratingSchema = errors.New("error ensuring store schema")

	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement against
	// the store fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a
	// result row fails.
	ErrScanningRow = errors.New("failed to scan patient row")

	// ErrPatientNotFound is returned when a read-back by id after insert
	// matches no row. Deleting a missing patient is not an error.
	ErrPatientNotFound = errors.New("patient was not found")
)
