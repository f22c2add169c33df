package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"redviva-data/internal/auth"
	"redviva-data/internal/config"
	"redviva-data/internal/domain"
	"redviva-data/internal/repository"
)

type fakeProfiles struct {
	caregivers    map[string]*domain.CaregiverProfile
	professionals map[string]*domain.ProfessionalProfile
}

func (f *fakeProfiles) GetCaregiverByAuthUserID(_ context.Context, authUserID string) (*domain.CaregiverProfile, error) {
	if p, ok := f.caregivers[authUserID]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProfiles) GetProfessionalByAuthUserID(_ context.Context, authUserID string) (*domain.ProfessionalProfile, error) {
	if p, ok := f.professionals[authUserID]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func gateFixture(t *testing.T) (*SessionGate, *auth.TokenVerifier, *fakeProfiles, *int32) {
	t.Helper()

	var signOuts int32
	authSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/logout" {
			atomic.AddInt32(&signOuts, 1)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(authSrv.Close)

	verifier := auth.NewTokenVerifier("test-secret")
	client := auth.NewClient(config.AuthConfig{BaseURL: authSrv.URL, APIKey: "k"}, zap.NewNop())
	profiles := &fakeProfiles{
		caregivers: map[string]*domain.CaregiverProfile{
			"U1": {ProfileID: "CG1", AuthUserID: "U1", Email: "ana@example.org", Role: domain.RoleCaregiver, DisplayName: "Ana", Status: "active"},
			"U2": {ProfileID: "CG2", AuthUserID: "U2", Email: "off@example.org", Role: domain.RoleCaregiver, DisplayName: "Off", Status: "suspended"},
		},
		professionals: map[string]*domain.ProfessionalProfile{
			"U3": {ProfileID: "PR1", AuthUserID: "U3", Email: "nurse@example.org", Role: domain.RoleNurse, DisplayName: "Nia", Status: "active"},
		},
	}
	gate := NewSessionGate(verifier, client, profiles, zap.NewNop())
	return gate, verifier, profiles, &signOuts
}

func gatedEcho(t *testing.T) (http.HandlerFunc, *domain.Profile) {
	t.Helper()
	seen := &domain.Profile{}
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := ProfileFrom(r.Context())
		require.True(t, ok)
		*seen = p
		writeJSON(w, http.StatusOK, Ok("through"))
	}, seen
}

func doGated(gate http.HandlerFunc, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/care/api/v1/session", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	gate(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) Result[json.RawMessage] {
	t.Helper()
	var res Result[json.RawMessage]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestGate_ValidCaregiverPassesWithProfile(t *testing.T) {
	gate, verifier, _, signOuts := gateFixture(t)
	next, seen := gatedEcho(t)

	token, err := verifier.SignForTest("U1", "ana@example.org", time.Hour)
	require.NoError(t, err)

	rec := doGated(gate.RequireCaregiver(next), token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CG1", seen.ProfileID)
	assert.Equal(t, domain.RoleCaregiver, seen.Role)
	assert.Equal(t, int32(0), atomic.LoadInt32(signOuts))
}

func TestGate_NoTokenIsUnauthorized(t *testing.T) {
	gate, _, _, _ := gateFixture(t)
	next, _ := gatedEcho(t)

	rec := doGated(gate.RequireCaregiver(next), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ResultTokenExpired, decodeResult(t, rec).Code)
}

func TestGate_ExpiredTokenIsUnauthorized(t *testing.T) {
	gate, verifier, _, signOuts := gateFixture(t)
	next, _ := gatedEcho(t)

	token, err := verifier.SignForTest("U1", "ana@example.org", -time.Minute)
	require.NoError(t, err)

	rec := doGated(gate.RequireCaregiver(next), token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ResultTokenExpired, decodeResult(t, rec).Code)
	// expiry never triggers a sign-out; the session is already gone
	assert.Equal(t, int32(0), atomic.LoadInt32(signOuts))
}

func TestGate_MissingRoleRecordSignsOut(t *testing.T) {
	gate, verifier, _, signOuts := gateFixture(t)
	next, _ := gatedEcho(t)

	token, err := verifier.SignForTest("U9", "stranger@example.org", time.Hour)
	require.NoError(t, err)

	rec := doGated(gate.RequireCaregiver(next), token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, ResultWrongRole, decodeResult(t, rec).Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(signOuts))
}

func TestGate_SuspendedProfileIsForbidden(t *testing.T) {
	gate, verifier, _, _ := gateFixture(t)
	next, _ := gatedEcho(t)

	token, err := verifier.SignForTest("U2", "off@example.org", time.Hour)
	require.NoError(t, err)

	rec := doGated(gate.RequireCaregiver(next), token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, ResultWrongRole, decodeResult(t, rec).Code)
}

func TestGate_CaregiverCannotEnterProfessionalPortal(t *testing.T) {
	gate, verifier, _, signOuts := gateFixture(t)
	next, _ := gatedEcho(t)

	// U1 has a caregiver record but no professional one
	token, err := verifier.SignForTest("U1", "ana@example.org", time.Hour)
	require.NoError(t, err)

	rec := doGated(gate.RequireProfessional(next), token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, ResultWrongRole, decodeResult(t, rec).Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(signOuts))
}

func TestGate_ProfessionalPasses(t *testing.T) {
	gate, verifier, _, _ := gateFixture(t)
	next, seen := gatedEcho(t)

	token, err := verifier.SignForTest("U3", "nurse@example.org", time.Hour)
	require.NoError(t, err)

	rec := doGated(gate.RequireProfessional(next), token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PR1", seen.ProfileID)
	assert.Equal(t, domain.RoleNurse, seen.Role)
}
