package middleware

import (
	"net/http"
	"net/http/httptest"
	"securix/utils"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := utils.NewJWTService("test-secret")
	am := NewAuthMiddleware(jwtService)

	router := gin.New()
	router.GET("/protected", am.RequireAuth(), okHandler)

	// No token
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	pair, err := jwtService.GenerateTokenPair("user-1", "a@x.kz", "client")
	require.NoError(t, err)

	// Refresh tokens are not accepted as access tokens.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid access token, both header and query forms.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected?token="+pair.AccessToken, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := utils.NewJWTService("test-secret")
	am := NewAuthMiddleware(jwtService)

	router := gin.New()
	router.GET("/operator", am.RequireAuth(), am.RequireRole("operator", "admin"), okHandler)

	clientPair, err := jwtService.GenerateTokenPair("user-1", "a@x.kz", "client")
	require.NoError(t, err)
	operatorPair, err := jwtService.GenerateTokenPair("user-2", "op@x.kz", "operator")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/operator", nil)
	req.Header.Set("Authorization", "Bearer "+clientPair.AccessToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/operator", nil)
	req.Header.Set("Authorization", "Bearer "+operatorPair.AccessToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
