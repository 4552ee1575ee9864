package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gigboard/internal/auth"
	bid "gigboard/internal/bidService"
	gig "gigboard/internal/gigService"
	hire "gigboard/internal/hireService"
	"gigboard/internal/media"
	"gigboard/internal/notify"
	"gigboard/internal/repository"
	"gigboard/internal/server"
	user "gigboard/internal/userService"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// TestApp bundles the full application wired over the in-memory store.
type TestApp struct {
	Router *gin.Engine
	Store  *repository.MemoryStore
	Hub    *notify.Hub
}

// SetupTestApp initializes the router with the in-memory store for
// integration testing. The wiring mirrors main.go minus Mongo and Cloudinary.
func SetupTestApp(t *testing.T) *TestApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	hub := notify.NewHub()
	t.Cleanup(hub.Close)

	tokens := auth.NewTokenManager("test-access-secret", "test-refresh-secret", 15*time.Minute, 720*time.Hour)

	router := server.SetupRouter(server.Deps{
		Store:       store,
		Tokens:      tokens,
		Hub:         hub,
		Users:       user.NewUserService(store, tokens, media.Disabled{}),
		Gigs:        gig.NewGigService(store),
		Bids:        bid.NewBidService(store),
		Hire:        hire.NewHireService(store, hub),
		CORSOrigins: []string{"http://localhost:5173"},
	})

	return &TestApp{Router: router, Store: store, Hub: hub}
}

// ExecuteRequest executes a JSON request against the router. An empty token
// leaves the request unauthenticated.
func ExecuteRequest(t *testing.T, app *TestApp, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

// RegisterAndLogin creates an account and returns its user ID and a bearer token.
func RegisterAndLogin(t *testing.T, app *TestApp, name, email, username string) (userID, token string) {
	t.Helper()

	resp, w := ExecuteRequest(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"username": username,
		"password": "s3cret!",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	userID = resp["data"].(map[string]any)["user_id"].(string)

	resp, w = ExecuteRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": "s3cret!",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token = resp["data"].(map[string]any)["access_token"].(string)
	require.NotEmpty(t, token)
	return userID, token
}

// CreateGig posts a gig as the given user and returns its ID.
func CreateGig(t *testing.T, app *TestApp, token, title string, budget float64) string {
	t.Helper()

	resp, w := ExecuteRequest(t, app, http.MethodPost, "/api/gigs", token, map[string]any{
		"title":       title,
		"description": "integration test gig",
		"budget":      budget,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return resp["data"].(map[string]any)["gig_id"].(string)
}

// PlaceBid posts a bid as the given user and returns its ID.
func PlaceBid(t *testing.T, app *TestApp, token, gigID string, price float64) string {
	t.Helper()

	resp, w := ExecuteRequest(t, app, http.MethodPost, "/api/bids", token, map[string]any{
		"gig_id":  gigID,
		"message": "I would like to take this on",
		"price":   price,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return resp["data"].(map[string]any)["bid_id"].(string)
}
