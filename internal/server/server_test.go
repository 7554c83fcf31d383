package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolber/school-portal/internal/auth"
	"github.com/wolber/school-portal/internal/config"
	"github.com/wolber/school-portal/internal/model"
	"github.com/wolber/school-portal/internal/server"
)

const testSecret = "test-secret-at-least-16-chars!!"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		Port:      0,
		DBPath:    ":memory:",
		JWTSecret: testSecret,
		TokenTTL:  auth.DefaultTokenTTL,
		SeedAdmin: config.SeedAdmin{
			Username: "admin",
			Password: "admin123",
			Name:     "Administrateur Principal",
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv, err := server.New(cfg, logger)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, token, body string) (int, map[string]interface{}, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	_ = json.Unmarshal(raw, &decoded)
	return resp.StatusCode, decoded, raw
}

func login(t *testing.T, ts *httptest.Server, username, password string) (id, token string) {
	t.Helper()
	status, body, _ := do(t, ts, http.MethodPost, "/login", "",
		`{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body["token"])
	return body["id"].(string), body["token"].(string)
}

func TestSeededAdminCanLogin(t *testing.T) {
	ts := newTestServer(t)

	status, body, _ := do(t, ts, http.MethodPost, "/login", "",
		`{"username":"admin","password":"admin123"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, model.RoleAdmin, body["role"])
	assert.NotEmpty(t, body["token"])
}

// The spec's concrete scenario: register alice, fail a login, succeed,
// then hit an admin route with her student token.
func TestStudentScenario(t *testing.T) {
	ts := newTestServer(t)

	status, body, _ := do(t, ts, http.MethodPost, "/register", "",
		`{"username":"alice","password":"p1","name":"Alice","classe":"5A"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["id"])

	status, body, _ = do(t, ts, http.MethodPost, "/login", "",
		`{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Identifiants incorrects", body["error"])

	_, token := login(t, ts, "alice", "p1")

	status, body, _ = do(t, ts, http.MethodPost, "/courses", token,
		`{"title":"Interdit","className":"5A","subject":"Maths","type":"cours","content":""}`)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Accès refusé", body["error"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	status, _, _ := do(t, ts, http.MethodPost, "/register", "",
		`{"username":"bob","password":"p1","name":"Bob","classe":"5A"}`)
	require.Equal(t, http.StatusOK, status)

	status, body, _ := do(t, ts, http.MethodPost, "/register", "",
		`{"username":"bob","password":"p2","name":"Bob Two","classe":"5B"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	ts := newTestServer(t)

	// No token at all.
	status, body, _ := do(t, ts, http.MethodGet, "/courses", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, body["error"])

	// Expired token, signed with the right secret.
	tokens, err := auth.NewTokenService(testSecret, 0)
	require.NoError(t, err)
	expired, err := tokens.GenerateWithDuration("some-id", model.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/courses"},
		{http.MethodGet, "/messages"},
		{http.MethodGet, "/list-users"},
		{http.MethodPost, "/create-admin"},
		{http.MethodPost, "/courses"},
		{http.MethodPost, "/classes"},
	} {
		status, _, _ := do(t, ts, route.method, route.path, expired, "{}")
		assert.Equal(t, http.StatusUnauthorized, status,
			"%s %s should reject an expired token", route.method, route.path)
	}

	// Token signed with a different secret.
	foreign, err := auth.NewTokenService("another-secret-of-16-chars!!!!!!", 0)
	require.NoError(t, err)
	forged, err := foreign.Generate("some-id", model.RoleAdmin)
	require.NoError(t, err)

	status, _, _ = do(t, ts, http.MethodGet, "/courses", forged, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminWorkflow(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := login(t, ts, "admin", "admin123")

	// Create a class; a duplicate is a 400.
	status, body, _ := do(t, ts, http.MethodPost, "/classes", adminToken, `{"name":"5A"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, body, _ = do(t, ts, http.MethodPost, "/classes", adminToken, `{"name":"5A"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])

	// Class names are public.
	status, _, raw := do(t, ts, http.MethodGet, "/classes", "", "")
	require.Equal(t, http.StatusOK, status)
	var names []string
	require.NoError(t, json.Unmarshal(raw, &names))
	assert.Equal(t, []string{"5A"}, names)

	// Publish a course and read it back with a student token.
	status, body, _ = do(t, ts, http.MethodPost, "/courses", adminToken,
		`{"title":"Fractions","className":"5A","subject":"Maths","type":"cours","content":"..."}`)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["id"])

	status, _, _ = do(t, ts, http.MethodPost, "/register", "",
		`{"username":"carol","password":"p1","name":"Carol","classe":"5A"}`)
	require.Equal(t, http.StatusOK, status)
	_, studentToken := login(t, ts, "carol", "p1")

	status, _, raw = do(t, ts, http.MethodGet, "/courses", studentToken, "")
	require.Equal(t, http.StatusOK, status)
	var courses []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "Fractions", courses[0]["title"])

	// Create a second admin, who can then use admin routes.
	status, body, _ = do(t, ts, http.MethodPost, "/create-admin", adminToken,
		`{"username":"root2","password":"secret","name":"Second Admin"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Nouvel administrateur créé !", body["message"])

	_, secondToken := login(t, ts, "root2", "secret")
	status, _, _ = do(t, ts, http.MethodGet, "/list-users", secondToken, "")
	assert.Equal(t, http.StatusOK, status)

	// A student asking for the user list gets the dedicated refusal.
	status, body, _ = do(t, ts, http.MethodGet, "/list-users", studentToken, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Accès refusé. Seul un administrateur peut voir cette liste.", body["error"])
}

func TestMessages_AuthorComesFromToken(t *testing.T) {
	ts := newTestServer(t)

	status, _, _ := do(t, ts, http.MethodPost, "/register", "",
		`{"username":"dave","password":"p1","name":"Dave","classe":"5A"}`)
	require.Equal(t, http.StatusOK, status)
	daveID, daveToken := login(t, ts, "dave", "p1")

	// A client-supplied fromId must be ignored in favor of the claim.
	status, body, _ := do(t, ts, http.MethodPost, "/messages", daveToken,
		`{"fromId":"spoofed-id","text":"premier","courseId":"","courseTitle":""}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	// createdAt has millisecond precision; keep the two posts apart so the
	// newest-first assertion is deterministic.
	time.Sleep(5 * time.Millisecond)

	status, _, _ = do(t, ts, http.MethodPost, "/messages", daveToken, `{"text":"deuxième"}`)
	require.Equal(t, http.StatusOK, status)

	status, _, raw := do(t, ts, http.MethodGet, "/messages", daveToken, "")
	require.Equal(t, http.StatusOK, status)
	var messages []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &messages))
	require.Len(t, messages, 2)

	for _, msg := range messages {
		assert.Equal(t, daveID, msg["fromId"], "fromId must come from the token claim")
	}
	// Newest first.
	assert.Equal(t, "deuxième", messages[0]["text"])
	assert.Equal(t, "premier", messages[1]["text"])

	// Another user sees none of dave's messages.
	status, _, _ = do(t, ts, http.MethodPost, "/register", "",
		`{"username":"eve","password":"p1","name":"Eve","classe":"5A"}`)
	require.Equal(t, http.StatusOK, status)
	_, eveToken := login(t, ts, "eve", "p1")

	status, _, raw = do(t, ts, http.MethodGet, "/messages", eveToken, "")
	require.Equal(t, http.StatusOK, status)
	var eveMessages []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &eveMessages))
	assert.Empty(t, eveMessages)
}
