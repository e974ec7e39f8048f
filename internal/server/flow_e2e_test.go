package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chirp/internal/cache"
	"chirp/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFullApp wires the complete middleware and route stack against an
// in-memory database, token verification included.
func newFullApp(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	db := setupHandlerTestDB(t)
	s := NewServerWithDeps(testConfig(), db, nil)

	app := fiber.New()
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return s, app
}

func jsonReq(t *testing.T, method, path string, payload any, token string) *http.Request {
	t.Helper()
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func register(t *testing.T, app *fiber.App, name, username, password string) {
	t.Helper()
	resp, err := app.Test(jsonReq(t, http.MethodPost, "/register/", map[string]string{
		"name":     name,
		"username": username,
		"password": password,
		"gender":   "other",
	}, ""), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp, err := app.Test(jsonReq(t, http.MethodPost, "/login/", map[string]string{
		"username": username,
		"password": password,
	}, ""), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		JWTToken string `json:"jwtToken"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.JWTToken)
	return payload.JWTToken
}

func TestRegisterLoginFeedFlow(t *testing.T) {
	_, app := newFullApp(t)

	register(t, app, "Alice Example", "alice", "password1")
	register(t, app, "Bob Example", "bob", "password2")

	aliceToken := login(t, app, "alice", "password1")
	bobToken := login(t, app, "bob", "password2")

	// bob follows alice
	resp, err := app.Test(jsonReq(t, http.MethodPost, "/user/following/alice/", nil, bobToken), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// alice posts
	resp, err = app.Test(jsonReq(t, http.MethodPost, "/user/tweets/",
		map[string]string{"tweet": "hello"}, aliceToken), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// bob's feed holds exactly alice's tweet with zero counts
	resp, err = app.Test(jsonReq(t, http.MethodGet, "/user/tweets/feed/", nil, bobToken), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var feed []models.TweetResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&feed))
	require.Len(t, feed, 1)
	assert.Equal(t, "hello", feed[0].Tweet)
	assert.Equal(t, 0, feed[0].Likes)
	assert.Equal(t, 0, feed[0].Replies)

	// alice follows nobody, so her feed is empty
	resp, err = app.Test(jsonReq(t, http.MethodGet, "/user/tweets/feed/", nil, aliceToken), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var aliceFeed []models.TweetResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&aliceFeed))
	assert.Empty(t, aliceFeed)
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	_, app := newFullApp(t)

	register(t, app, "Alice Example", "alice", "password1")

	resp, err := app.Test(jsonReq(t, http.MethodPost, "/register/", map[string]string{
		"name":     "Another Alice",
		"username": "alice",
		"password": "different9",
	}, ""), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFeedAuthFailuresAreOpaque(t *testing.T) {
	_, app := newFullApp(t)

	// No Authorization header at all.
	resp, err := app.Test(jsonReq(t, http.MethodGet, "/user/tweets/feed/", nil, ""), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var noHeader models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&noHeader))

	// A corrupted token must produce the identical error body.
	resp, err = app.Test(jsonReq(t, http.MethodGet, "/user/tweets/feed/", nil, "not.a.token"), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var badToken models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&badToken))
	assert.Equal(t, noHeader, badToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(client)
	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = client.Close()
	})

	_, app := newFullApp(t)

	register(t, app, "Alice Example", "alice", "password1")
	token := login(t, app, "alice", "password1")

	// Token works before logout.
	resp, err := app.Test(jsonReq(t, http.MethodGet, "/user/tweets/feed/", nil, token), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonReq(t, http.MethodPost, "/logout/", nil, token), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The same token is refused afterwards.
	resp, err = app.Test(jsonReq(t, http.MethodGet, "/user/tweets/feed/", nil, token), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
