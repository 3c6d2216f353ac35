package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smaillet/cabinet/internal/crypto"
	"github.com/smaillet/cabinet/internal/logger"
	"github.com/smaillet/cabinet/internal/registry"
	"github.com/smaillet/cabinet/internal/session"
	"github.com/smaillet/cabinet/models"
)

// testKDFParams keeps the memory-hard work cheap in tests. Correctness does
// not depend on the cost values; they are persisted per profile either way.
var testKDFParams = models.KDFParams{Memory: 64, Time: 1, Threads: 1, OutputLen: 32}

func newTestServices(t *testing.T) (*Services, string) {
	t.Helper()

	dataDir := t.TempDir()
	log := logger.Nop()
	svcs := NewServices(
		registry.NewFileRegistry(dataDir, log),
		crypto.NewCredentialEngine(),
		session.NewHolder(log),
		dataDir,
		testKDFParams,
		log,
	)
	return svcs, dataDir
}

func TestCreateProfile_BlankNameFailsBeforeAnyIO(t *testing.T) {
	svcs, dataDir := newTestServices(t)

	_, err := svcs.Profiles.CreateProfile(context.Background(), "   ", "password")
	require.ErrorIs(t, err, ErrEmptyProfileName)

	// no catalog, no profile dir
	entries, err := os.ReadDir(dataDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestCreateProfile_BlankPasswordFailsBeforeAnyIO(t *testing.T) {
	svcs, dataDir := newTestServices(t)

	_, err := svcs.Profiles.CreateProfile(context.Background(), "Dr. Martin", " \t ")
	require.ErrorIs(t, err, ErrEmptyPassword)

	entries, err := os.ReadDir(dataDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestCreateProfile_TrimsNameAndPersists(t *testing.T) {
	svcs, dataDir := newTestServices(t)

	summary, err := svcs.Profiles.CreateProfile(context.Background(), "  Dr. Martin  ", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, summary.ID)
	require.Equal(t, "Dr. Martin", summary.Name)
	require.False(t, summary.CreatedAt.IsZero())

	profiles, err := registry.NewFileRegistry(dataDir, logger.Nop()).List()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	require.Equal(t, summary.ID, profiles[0].ID)
	require.Equal(t, testKDFParams, profiles[0].KDFParams)
	require.Contains(t, profiles[0].StorageLocation, profiles[0].ID)
}

func TestCreateProfile_SamePasswordIndependentMaterial(t *testing.T) {
	svcs, dataDir := newTestServices(t)
	ctx := context.Background()

	_, err := svcs.Profiles.CreateProfile(ctx, "one", "shared-password")
	require.NoError(t, err)
	_, err = svcs.Profiles.CreateProfile(ctx, "two", "shared-password")
	require.NoError(t, err)

	profiles, err := registry.NewFileRegistry(dataDir, logger.Nop()).List()
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	// independent random salts on both paths
	require.NotEqual(t, profiles[0].PasswordHash, profiles[1].PasswordHash)
	require.NotEqual(t, profiles[0].KeySalt, profiles[1].KeySalt)
	require.NotEqual(t, profiles[0].KeyCheck, profiles[1].KeyCheck)
	require.NotEqual(t, profiles[0].StorageLocation, profiles[1].StorageLocation)
}

func TestListProfiles_NeverLeaksSecretMaterial(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svcs.Profiles.CreateProfile(ctx, "Dr. Martin", "s3cret")
	require.NoError(t, err)

	summaries, err := svcs.Profiles.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	payload, err := json.Marshal(summaries)
	require.NoError(t, err)
	require.NotContains(t, string(payload), "argon2id")
	require.NotContains(t, string(payload), "key_salt")
	require.NotContains(t, string(payload), "password")
}

func TestOpenProfile_UnknownID(t *testing.T) {
	svcs, _ := newTestServices(t)

	_, err := svcs.Profiles.OpenProfile(context.Background(), "no-such-id", "pw")
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestOpenProfile_WrongPassword(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	summary, err := svcs.Profiles.CreateProfile(ctx, "Dr. Martin", "right")
	require.NoError(t, err)

	_, err = svcs.Profiles.OpenProfile(ctx, summary.ID, "wrong")
	require.ErrorIs(t, err, crypto.ErrPasswordMismatch)
}

func TestOpenProfile_CorrectPassword(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	created, err := svcs.Profiles.CreateProfile(ctx, "Dr. Martin", "s3cret")
	require.NoError(t, err)

	opened, err := svcs.Profiles.OpenProfile(ctx, created.ID, "s3cret")
	require.NoError(t, err)
	require.Equal(t, created.ID, opened.ID)

	// freshly created profile has an empty store
	patients, err := svcs.Patients.ListPatients(ctx)
	require.NoError(t, err)
	require.Empty(t, patients)
}

func TestOpenProfile_TamperedKeyCheck(t *testing.T) {
	svcs, dataDir := newTestServices(t)
	ctx := context.Background()

	created, err := svcs.Profiles.CreateProfile(ctx, "Dr. Martin", "s3cret")
	require.NoError(t, err)

	// corrupt the stored checksum behind the registry's back
	catalogPath := filepath.Join(dataDir, "profiles.json")
	raw, err := os.ReadFile(catalogPath)
	require.NoError(t, err)

	var profiles []models.StoredProfile
	require.NoError(t, json.Unmarshal(raw, &profiles))
	profiles[0].KeyCheck = "0000000000000000000000000000000000000000000000000000000000000000"
	raw, err = json.Marshal(profiles)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(catalogPath, raw, 0o600))

	_, err = svcs.Profiles.OpenProfile(ctx, created.ID, "s3cret")
	require.ErrorIs(t, err, ErrKeyCheckMismatch)
}

func TestCloseProfile_EndsSession(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	created, err := svcs.Profiles.CreateProfile(ctx, "Dr. Martin", "s3cret")
	require.NoError(t, err)
	_, err = svcs.Profiles.OpenProfile(ctx, created.ID, "s3cret")
	require.NoError(t, err)

	svcs.Profiles.CloseProfile(ctx)

	_, err = svcs.Patients.ListPatients(ctx)
	require.ErrorIs(t, err, session.ErrNoActiveSession)
}
