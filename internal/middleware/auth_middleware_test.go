package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_backend/pkg/utils"
)

func newAuthTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", append(handlers, func(c *gin.Context) {
		userID, _ := c.Get(ContextUserIDKey)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})...)
	return engine
}

func TestAuthMiddleware(t *testing.T) {
	token, err := utils.GenerateAccessToken(1, "admin", "owner")
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		engine := newAuthTestRouter(AuthMiddleware())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer header", func(t *testing.T) {
		engine := newAuthTestRouter(AuthMiddleware())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cookie", func(t *testing.T) {
		engine := newAuthTestRouter(AuthMiddleware())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: utils.AccessTokenCookie, Value: token})
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("refresh token is not accepted", func(t *testing.T) {
		refresh, err := utils.GenerateRefreshToken(1, "admin", "owner")
		require.NoError(t, err)

		engine := newAuthTestRouter(AuthMiddleware())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	t.Run("anonymous passes through", func(t *testing.T) {
		engine := newAuthTestRouter(OptionalAuthMiddleware())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":null`)
	})

	t.Run("valid token sets claims", func(t *testing.T) {
		token, err := utils.GenerateAccessToken(7, "kasir", "staff")
		require.NoError(t, err)

		engine := newAuthTestRouter(OptionalAuthMiddleware())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
	})
}

func TestRoleAuthMiddleware(t *testing.T) {
	t.Run("allows the matching role", func(t *testing.T) {
		token, err := utils.GenerateAccessToken(1, "admin", "owner")
		require.NoError(t, err)

		engine := newAuthTestRouter(AuthMiddleware(), RoleAuthMiddleware("owner"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbids other roles", func(t *testing.T) {
		token, err := utils.GenerateAccessToken(7, "kasir", "staff")
		require.NoError(t, err)

		engine := newAuthTestRouter(AuthMiddleware(), RoleAuthMiddleware("owner"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
