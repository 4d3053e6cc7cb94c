package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joaomidowz/vargas-mix/middleware"
	"github.com/joaomidowz/vargas-mix/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func protected(t *testing.T, roles ...models.Role) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return middleware.Authenticate(testSecret)(middleware.Authorize(roles...)(next))
}

func request(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/players", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	protected(t, models.RoleViewer).ServeHTTP(rec, request(""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	rec := httptest.NewRecorder()
	protected(t, models.RoleViewer).ServeHTTP(rec, request("not.a.token"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthorizeRoleGate(t *testing.T) {
	viewerToken, err := middleware.CreateToken(models.RoleViewer, testSecret)
	require.NoError(t, err)
	adminToken, err := middleware.CreateToken(models.RoleAdmin, testSecret)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	protected(t, models.RoleAdmin).ServeHTTP(rec, request(viewerToken))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	protected(t, models.RoleAdmin).ServeHTTP(rec, request(adminToken))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	protected(t, models.RoleViewer, models.RoleAdmin).ServeHTTP(rec, request(viewerToken))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateAcceptsQueryToken(t *testing.T) {
	token, err := middleware.CreateToken(models.RoleViewer, testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	rec := httptest.NewRecorder()
	protected(t, models.RoleViewer).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	token, err := middleware.CreateToken(models.RoleAdmin, []byte("other-secret"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	protected(t, models.RoleAdmin).ServeHTTP(rec, request(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
