package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/license"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role, email string, ttl time.Duration) string {
	t.Helper()
	claims := &JWTClaims{
		UserID: "3f1c0a4e-0000-0000-0000-000000000001",
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter(capability string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", JWTAuth(testSecret))
	group.GET("/resource", RequireCapability(license.NewGate(), capability), func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email, "role": claims.Role})
	})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthRejectsMissingOrBadToken(t *testing.T) {
	r := protectedRouter(license.CapViewProducts)

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication required")

	w = doRequest(r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")

	w = doRequest(r, signToken(t, "other-secret", "admin", "a@b.c", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, signToken(t, testSecret, "admin", "a@b.c", -time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireCapability(t *testing.T) {
	r := protectedRouter(license.CapManageProducts)

	w := doRequest(r, signToken(t, testSecret, "vendedor", "ana@opero.local", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, signToken(t, testSecret, "tester", "ana@opero.local", time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient permissions")
}

func TestRequireCapabilityDemoTier(t *testing.T) {
	// sales.create needs the sales feature, hidden from the basic demo tier.
	r := protectedRouter(license.CapCreateSales)

	w := doRequest(r, signToken(t, testSecret, "vendedor", "basic@demo.com", time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, signToken(t, testSecret, "vendedor", "sales@demo.com", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
}
