package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

const secret = "mw-secret"

func ok(w http.ResponseWriter, r *http.Request) {
	p, _ := utils.PrincipalFrom(r.Context())
	utils.JSON(w, http.StatusOK, p)
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	h := Authenticate(zerolog.Nop(), secret)(http.HandlerFunc(ok))

	rec := serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", message(t, rec))

	rec = serve(h, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", message(t, rec))

	rec = serve(h, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", message(t, rec))

	expired, err := utils.SignJWT(secret, 3, models.RoleUser, -time.Minute)
	require.NoError(t, err)
	rec = serve(h, "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", message(t, rec))

	tok, err := utils.SignJWT(secret, 3, models.RoleUser, time.Minute)
	require.NoError(t, err)
	rec = serve(h, "Bearer "+tok)
	require.Equal(t, http.StatusOK, rec.Code)
	var p utils.Principal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, utils.Principal{UserID: 3, Role: models.RoleUser}, p)
}

func TestRequire(t *testing.T) {
	h := Authenticate(zerolog.Nop(), secret)(Require(ManageReference)(http.HandlerFunc(ok)))

	user, err := utils.SignJWT(secret, 1, models.RoleUser, time.Minute)
	require.NoError(t, err)
	rec := serve(h, "Bearer "+user)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access Denied: Insufficient permissions", message(t, rec))

	admin, err := utils.SignJWT(secret, 2, models.RoleAdmin, time.Minute)
	require.NoError(t, err)
	rec = serve(h, "Bearer "+admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(Require(ViewTickets)(http.HandlerFunc(ok)), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPolicy(t *testing.T) {
	for _, c := range []Capability{ViewTickets, SubmitTickets, ViewReference} {
		assert.True(t, Allowed(models.RoleUser, c), c)
		assert.True(t, Allowed(models.RoleAdmin, c), c)
	}
	for _, c := range []Capability{ManageTickets, ManageReference, ViewReports} {
		assert.False(t, Allowed(models.RoleUser, c), c)
		assert.True(t, Allowed(models.RoleAdmin, c), c)
	}
	assert.False(t, Allowed("guest", ViewTickets))
}

func TestRecovererAndRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	h := RequestLogger(log)(Recoverer(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	req := httptest.NewRequest(http.MethodGet, "/explode", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", message(t, rec))
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"panic":"boom"`)
	assert.Contains(t, buf.String(), `"status":500`)
}

func TestRequestLoggerGeneratesID(t *testing.T) {
	h := RequestLogger(zerolog.Nop())(http.HandlerFunc(ok))
	rec := serve(h, "")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}
