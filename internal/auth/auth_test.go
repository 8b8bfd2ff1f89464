package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldermuller/dindin/internal/auth"
)

func TestService_IssueVerify(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)

	token, err := svc.Issue(7)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestService_Verify_WrongSecret(t *testing.T) {
	token, err := auth.NewService("secret-a", time.Hour).Issue(7)
	require.NoError(t, err)

	_, err = auth.NewService("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestService_Verify_Expired(t *testing.T) {
	token, err := auth.NewService("test-secret", -time.Minute).Issue(7)
	require.NoError(t, err)

	_, err = auth.NewService("test-secret", -time.Minute).Verify(token)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)

	var gotUserID int64

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.UserID(r.Context())
		require.True(t, ok)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})

	handler := svc.Middleware(next)

	t.Run("NoToken", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transactions", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t,
			`{"message":"Para acessar este recurso um token de autenticação válido deve ser enviado."}`,
			w.Body.String())
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
		req.Header.Set("Authorization", "Token abc")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := svc.Issue(42)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(42), gotUserID)
	})
}
