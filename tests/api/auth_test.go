package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rgaultier/taxiresa/internal/api"
	"github.com/rgaultier/taxiresa/internal/auth"
)

const (
	adminEmail    = "admin@taxi.example"
	adminPassword = "s3cret-password"
)

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewService(auth.Config{
		AdminEmail:        adminEmail,
		AdminPasswordHash: string(hash),
		SessionTTL:        time.Hour,
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("Valid credentials", func(t *testing.T) {
		svc := newAuthService(t)
		body := `{"email": "` + adminEmail + `", "password": "` + adminPassword + `"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/login", strings.NewReader(body))
		rr := httptest.NewRecorder()
		api.LoginHandler(svc)(rr, req, nil)

		require.Equal(t, http.StatusOK, rr.Code)

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.SessionCookie, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)

		var session auth.Session
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
		assert.Equal(t, cookies[0].Value, session.Token)
		assert.Equal(t, adminEmail, session.Email)
	})

	t.Run("Wrong email and wrong password read the same", func(t *testing.T) {
		svc := newAuthService(t)

		run := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/v1/admin/login", strings.NewReader(body))
			rr := httptest.NewRecorder()
			api.LoginHandler(svc)(rr, req, nil)
			return rr
		}

		wrongEmail := run(`{"email": "other@taxi.example", "password": "` + adminPassword + `"}`)
		wrongPassword := run(`{"email": "` + adminEmail + `", "password": "nope"}`)

		assert.Equal(t, http.StatusUnauthorized, wrongEmail.Code)
		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, wrongEmail.Body.String(), wrongPassword.Body.String())
	})

	t.Run("Malformed body", func(t *testing.T) {
		svc := newAuthService(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/login", strings.NewReader("not json"))
		rr := httptest.NewRecorder()
		api.LoginHandler(svc)(rr, req, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	svc := newAuthService(t)
	session, err := svc.SignIn(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: session.Token})
	rr := httptest.NewRecorder()
	api.LogoutHandler(svc)(rr, req, nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, auth.LoginPath, rr.Header().Get("Location"))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)

	_, ok := svc.Session(session.Token)
	assert.False(t, ok)

	t.Run("Without a session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/logout", nil)
		rr := httptest.NewRecorder()
		api.LogoutHandler(svc)(rr, req, nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}
