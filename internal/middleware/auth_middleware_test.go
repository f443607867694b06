package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-ems/internal/middleware"
	"go-ems/internal/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secret = "test-secret"

func sign(t *testing.T, claims middleware.Claims, key string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func validClaims(r string) middleware.Claims {
	return middleware.Claims{
		EmployeeID: "emp-1",
		Role:       r,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

type fakeRBAC struct {
	allowed bool
	err     error
	calls   []string
}

func (f *fakeRBAC) Enforce(r, resource, action string) (bool, error) {
	f.calls = append(f.calls, r+":"+resource+":"+action)
	return f.allowed, f.err
}

func protectedRouter(rbac middleware.RBACService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Recovery(zap.NewNop()))
	r.GET("/salaries",
		middleware.AuthMiddleware(secret),
		middleware.ContextLogger(zap.NewNop()),
		middleware.RBACAuthorize(rbac, "salary", "read"),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"employee_id": c.GetString("employee_id"),
				"role":        c.GetString("role"),
				"user_id":     c.GetString("user_id"),
			})
		},
	)
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid token reaches handler", func(t *testing.T) {
		rbac := &fakeRBAC{allowed: true}
		w := get(protectedRouter(rbac), "/salaries", sign(t, validClaims(role.HR), secret))

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "emp-1", body["employee_id"])
		assert.Equal(t, role.HR, body["role"])
		assert.Equal(t, "emp-1", body["user_id"])
		assert.Equal(t, []string{"HR:salary:read"}, rbac.calls)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("cookie token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/salaries", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: sign(t, validClaims(role.Admin), secret)})
		protectedRouter(&fakeRBAC{allowed: true}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := get(protectedRouter(&fakeRBAC{allowed: true}), "/salaries", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		w := get(protectedRouter(&fakeRBAC{allowed: true}), "/salaries", sign(t, validClaims(role.HR), "other"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := validClaims(role.HR)
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

		w := get(protectedRouter(&fakeRBAC{allowed: true}), "/salaries", sign(t, claims, secret))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token has expired")
	})

	t.Run("token without role", func(t *testing.T) {
		w := get(protectedRouter(&fakeRBAC{allowed: true}), "/salaries", sign(t, validClaims(""), secret))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRBACAuthorize(t *testing.T) {
	t.Run("denied", func(t *testing.T) {
		w := get(protectedRouter(&fakeRBAC{}), "/salaries", sign(t, validClaims(role.Employee), secret))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("enforcer error", func(t *testing.T) {
		w := get(protectedRouter(&fakeRBAC{err: errors.New("bad model")}), "/salaries", sign(t, validClaims(role.Employee), secret))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRecovery(t *testing.T) {
	w := get(protectedRouter(&fakeRBAC{}), "/panic", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x",
		func(c *gin.Context) { c.Set("user_id", c.GetHeader("X-User")) },
		middleware.RateLimitByUser(0.001, 1),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)

	do := func(user string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-User", user)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, do("a"))
	assert.Equal(t, http.StatusTooManyRequests, do("a"))
	assert.Equal(t, http.StatusNoContent, do("b"))
	assert.Equal(t, http.StatusNoContent, do(""))
	assert.Equal(t, http.StatusNoContent, do(""))
}
