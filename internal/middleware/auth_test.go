package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"optiops/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID uint, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": "jdoe",
		"role":     role,
		"exp":      time.Now().Add(expiresIn).Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func buildAuthRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/", JWTAuth(testSecret))
	if len(roles) > 0 {
		grp.Use(RequireRole(roles...))
	}
	grp.GET("/me", func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "role": claims.Role})
	})
	return r
}

func doAuth(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	r := buildAuthRouter()
	w := doAuth(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	r := buildAuthRouter()
	w := doAuth(r, "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	r := buildAuthRouter()
	w := doAuth(r, signToken(t, 1, model.RoleWorker, -time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ValidTokenExposesClaims(t *testing.T) {
	r := buildAuthRouter()
	w := doAuth(r, signToken(t, 7, model.RoleAdmin, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"role":"Admin"}`, w.Body.String())
}

func TestRequireRole_Forbidden(t *testing.T) {
	r := buildAuthRouter(model.RoleAdmin)
	w := doAuth(r, signToken(t, 1, model.RoleCustomer, time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_AllowsListedRoles(t *testing.T) {
	r := buildAuthRouter(model.RoleAdmin, model.RoleWorker)
	w := doAuth(r, signToken(t, 1, model.RoleWorker, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
}
