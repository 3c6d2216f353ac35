package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smaillet/cabinet/internal/crypto"
	"github.com/smaillet/cabinet/internal/logger"
	"github.com/smaillet/cabinet/internal/registry"
	"github.com/smaillet/cabinet/internal/service"
	"github.com/smaillet/cabinet/internal/session"
	"github.com/smaillet/cabinet/models"
)

var testKDFParams = models.KDFParams{Memory: 64, Time: 1, Threads: 1, OutputLen: 32}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dataDir := t.TempDir()
	log := logger.Nop()
	svcs := service.NewServices(
		registry.NewFileRegistry(dataDir, log),
		crypto.NewCredentialEngine(),
		session.NewHolder(log),
		dataDir,
		testKDFParams,
		log,
	)

	srv := httptest.NewServer(NewHandler(svcs, log).Init())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createProfileReq(name, password string) map[string]string {
	return map[string]string{"name": name, "password": password}
}

func patientInputReq() map[string]any {
	return map[string]any{
		"first_name": "Alice",
		"last_name":  "Durand",
		"birth_date": "1984-03-12",
		"gender":     "F",
		"phone":      "+33 6 12 34 56 78",
	}
}

func TestListProfiles_EmptyOnFirstRun(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/profiles", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	summaries := decodeBody[[]models.ProfileSummary](t, resp)
	require.Empty(t, summaries)
}

func TestCreateProfile_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "blank name", body: createProfileReq("   ", "pw")},
		{name: "blank password", body: createProfileReq("Dr. Martin", " ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, srv.URL+"/api/profiles", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body := decodeBody[errorResponse](t, resp)
			assert.Equal(t, KindValidation, body.Error)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestCreateProfile_InvalidJSON(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/profiles", "application/json", bytes.NewBufferString("{broken"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateProfile_ReturnsSummaryOnly(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/profiles", createProfileReq("Dr. Martin", "s3cret"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	summary := decodeBody[map[string]any](t, resp)
	require.NotEmpty(t, summary["id"])
	require.Equal(t, "Dr. Martin", summary["name"])
	require.NotContains(t, summary, "password_hash")
	require.NotContains(t, summary, "key_salt")
	require.NotContains(t, summary, "kdf_params")
}

func TestOpenProfile_UnknownID(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/profiles/no-such-id/open", map[string]string{"password": "pw"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody[errorResponse](t, resp)
	assert.Equal(t, KindNotFound, body.Error)
}

func TestOpenProfile_WrongPassword(t *testing.T) {
	srv := newTestServer(t)

	created := decodeBody[models.ProfileSummary](t,
		doJSON(t, http.MethodPost, srv.URL+"/api/profiles", createProfileReq("Dr. Martin", "right")))

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/profiles/"+created.ID+"/open", map[string]string{"password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody[errorResponse](t, resp)
	assert.Equal(t, KindAuth, body.Error)
}

func TestPatients_RequireActiveSession(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		url    string
		body   any
	}{
		{name: "list", method: http.MethodGet, url: "/api/patients"},
		{name: "create", method: http.MethodPost, url: "/api/patients", body: patientInputReq()},
		{name: "delete", method: http.MethodDelete, url: "/api/patients/some-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, tt.method, srv.URL+tt.url, tt.body)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			body := decodeBody[errorResponse](t, resp)
			assert.Equal(t, KindAuth, body.Error)
		})
	}
}

func TestFullPatientFlow(t *testing.T) {
	srv := newTestServer(t)

	created := decodeBody[models.ProfileSummary](t,
		doJSON(t, http.MethodPost, srv.URL+"/api/profiles", createProfileReq("Dr. Martin", "s3cret")))

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/profiles/"+created.ID+"/open", map[string]string{"password": "s3cret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// fresh profile: nothing yet
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/patients", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, decodeBody[[]models.Patient](t, resp))

	// create one
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/patients", patientInputReq())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	patient := decodeBody[models.Patient](t, resp)
	require.NotEmpty(t, patient.ID)

	// list returns it
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/patients", nil)
	patients := decodeBody[[]models.Patient](t, resp)
	require.Len(t, patients, 1)
	require.Equal(t, patient.ID, patients[0].ID)

	// delete is 204, idempotent on repeat
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/patients/"+patient.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/patients/"+patient.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/patients", nil)
	require.Empty(t, decodeBody[[]models.Patient](t, resp))
}

func TestCreatePatient_MissingRequiredField(t *testing.T) {
	srv := newTestServer(t)

	created := decodeBody[models.ProfileSummary](t,
		doJSON(t, http.MethodPost, srv.URL+"/api/profiles", createProfileReq("Dr. Martin", "s3cret")))
	doJSON(t, http.MethodPost, srv.URL+"/api/profiles/"+created.ID+"/open", map[string]string{"password": "s3cret"})

	input := patientInputReq()
	input["first_name"] = ""

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/patients", input)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody[errorResponse](t, resp)
	assert.Equal(t, KindValidation, body.Error)
}

func TestCloseSession_LocksPatientCommands(t *testing.T) {
	srv := newTestServer(t)

	created := decodeBody[models.ProfileSummary](t,
		doJSON(t, http.MethodPost, srv.URL+"/api/profiles", createProfileReq("Dr. Martin", "s3cret")))
	doJSON(t, http.MethodPost, srv.URL+"/api/profiles/"+created.ID+"/open", map[string]string{"password": "s3cret"})

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/session/close", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/patients", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTraceIDHeader_SetOnResponses(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/profiles", nil)
	require.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestTraceIDHeader_ReusesInboundID(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/profiles", nil)
	require.NoError(t, err)
	req.Header.Set("X-Trace-ID", "trace-from-caller")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "trace-from-caller", resp.Header.Get("X-Trace-ID"))
}
