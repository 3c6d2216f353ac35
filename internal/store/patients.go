package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/smaillet/cabinet/models"
)

// qb builds patient queries with SQLite "?" placeholders.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// timeFormat is RFC 3339 with the fractional seconds padded to a fixed
// nine digits. Timestamps are stored as TEXT and compared lexicographically
// by ORDER BY, so every value must render at the same width; a trimmed
// fraction would let 'Z' sort against a digit.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

var patientColumns = []string{
	"id", "first_name", "last_name", "birth_date", "gender",
	"phone", "email", "created_at", "updated_at",
}

// ListPatients returns every patient ordered by creation time, most recent
// first. rowid breaks ties between rows created within the same timestamp.
func (s *EncryptedStore) ListPatients(ctx context.Context) ([]models.Patient, error) {
	query, args, err := qb.Select(patientColumns...).
		From("patients").
		OrderBy("created_at DESC", "rowid DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	patients := make([]models.Patient, 0)
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return patients, nil
}

// CreatePatient inserts a new patient with a fresh id and timestamps, then
// reads it back by id and returns the stored form. The read-back guards
// against any default or trigger applied by the store itself: what the
// caller gets is what the database actually holds.
func (s *EncryptedStore) CreatePatient(ctx context.Context, input models.PatientInput) (models.Patient, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(timeFormat)

	query, args, err := qb.Insert("patients").
		Columns(patientColumns...).
		Values(id, input.FirstName, input.LastName, input.BirthDate, input.Gender,
			input.Phone, input.Email, now, now).
		ToSql()
	if err != nil {
		return models.Patient{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return models.Patient{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return s.getPatient(ctx, id)
}

// DeletePatient removes the patient with the given id. Deleting an id that
// does not exist is not an error.
func (s *EncryptedStore) DeletePatient(ctx context.Context, id string) error {
	query, args, err := qb.Delete("patients").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// getPatient fetches one patient by id.
func (s *EncryptedStore) getPatient(ctx context.Context, id string) (models.Patient, error) {
	query, args, err := qb.Select(patientColumns...).
		From("patients").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Patient{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := s.db.QueryRowContext(ctx, query, args...)
	patient, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Patient{}, ErrPatientNotFound
		}
		return models.Patient{}, err
	}

	return patient, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (models.Patient, error) {
	var patient models.Patient
	var email sql.NullString

	err := row.Scan(
		&patient.ID,
		&patient.FirstName,
		&patient.LastName,
		&patient.BirthDate,
		&patient.Gender,
		&patient.Phone,
		&email,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Patient{}, err
		}
		return models.Patient{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if email.Valid {
		patient.Email = &email.String
	}

	return patient, nil
}
