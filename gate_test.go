package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func testApp(t *testing.T, passcode string) *App {
	t.Helper()
	logrus.SetOutput(io.Discard)

	cfg := mustConfig()
	cfg.JWTSecret = "test-secret"
	if passcode != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.MinCost)
		assert.NoError(t, err)
		cfg.GatePasscodeHash = string(hash)
	} else {
		cfg.GatePasscodeHash = ""
	}
	return &App{cfg: cfg, log: logrus.WithField("app", "test")}
}

func TestUnlockWithCorrectPasscode(t *testing.T) {
	app := testApp(t, "compost123")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/unlock", strings.NewReader(`{"passcode":"compost123"}`))
	app.handleUnlock(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token")
}

func TestUnlockWithWrongPasscode(t *testing.T) {
	app := testApp(t, "compost123")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/unlock", strings.NewReader(`{"passcode":"nope"}`))
	app.handleUnlock(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnlockBadJSON(t *testing.T) {
	app := testApp(t, "compost123")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/unlock", strings.NewReader("{"))
	app.handleUnlock(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnlockOpenGateAcceptsAnything(t *testing.T) {
	app := testApp(t, "")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/unlock", strings.NewReader(`{"passcode":"whatever"}`))
	app.handleUnlock(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateMiddleware(t *testing.T) {
	app := testApp(t, "compost123")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protected := app.gateMiddleware(next)

	// No token.
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/readings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/readings", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Freshly issued token.
	tok, err := signGateToken(app.cfg.JWTSecret)
	assert.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/readings", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateMiddlewareOpenGate(t *testing.T) {
	app := testApp(t, "")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	app.gateMiddleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/readings", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
