//go:build unit
// +build unit

package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (l *stubLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allowed, l.err
}

type recordingObserver struct {
	routes   []string
	statuses []int
}

func (o *recordingObserver) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	o.routes = append(o.routes, method+" "+route)
	o.statuses = append(o.statuses, status)
}

func TestAuthenticate(t *testing.T) {
	parser := new(MockTokenParser)
	parser.On("ParseToken", "good").Return(testCaregiver, nil)
	parser.On("ParseToken", "expired").Return(nil, fmt.Errorf("%w: token expired", apperr.ErrUnauthorized))

	r := gin.New()
	r.GET("/me", Authenticate(parser), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, currentPrincipal(ctx).ID)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"Valid token", "Bearer good", http.StatusOK},
		{"Lower case scheme", "bearer good", http.StatusOK},
		{"Expired token", "Bearer expired", http.StatusUnauthorized},
		{"Missing header", "", http.StatusUnauthorized},
		{"Wrong scheme", "Basic good", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, testCaregiverID, w.Body.String())
			}
		})
	}
}

func TestRequireRolesAndPermission(t *testing.T) {
	r := gin.New()
	setCaller := func(p *users.Principal) gin.HandlerFunc {
		return func(ctx *gin.Context) {
			if p != nil {
				ctx.Set(principalKey, *p)
			}
		}
	}
	ok := func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) }

	admin := &users.Principal{ID: "admin", Role: users.RoleAdmin}
	r.GET("/operator-only", setCaller(testCaregiver), RequireRoles(users.RoleOperator), ok)
	r.GET("/operator-ok", setCaller(testOperator), RequireRoles(users.RoleOperator), ok)
	r.GET("/audit-denied", setCaller(testOperator), RequirePermission(users.PermAuditView), ok)
	r.GET("/audit-admin", setCaller(admin), RequirePermission(users.PermAuditView), ok)
	r.GET("/anonymous", setCaller(nil), RequirePermission(users.PermDashboardView), ok)

	for path, status := range map[string]int{
		"/operator-only": http.StatusForbidden,
		"/operator-ok":   http.StatusNoContent,
		"/audit-denied":  http.StatusForbidden,
		"/audit-admin":   http.StatusNoContent,
		"/anonymous":     http.StatusForbidden,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, status, w.Code, path)
	}
}

func TestRequestMeta(t *testing.T) {
	r := gin.New()
	var meta audit.RequestMeta
	r.GET("/", RequestMeta(), func(ctx *gin.Context) {
		meta = audit.RequestMetaFrom(ctx.Request.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("User-Agent", "carelink-tests")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "203.0.113.7", meta.IPAddress)
	assert.Equal(t, "carelink-tests", meta.UserAgent)
}

func TestRateLimit(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	t.Run("Rejects over budget", func(t *testing.T) {
		limiter := &stubLimiter{allowed: false}
		r := gin.New()
		r.GET("/", RateLimit(limiter, log), func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
		require.Len(t, limiter.keys, 1)
		assert.Contains(t, limiter.keys[0], "ip:")
	})

	t.Run("Keys authenticated callers by user", func(t *testing.T) {
		limiter := &stubLimiter{allowed: true}
		r := gin.New()
		r.GET("/", func(ctx *gin.Context) { ctx.Set(principalKey, *testOperator) },
			RateLimit(limiter, log), func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"user:" + testOperatorID}, limiter.keys)
	})

	t.Run("Fails open when the limiter errors", func(t *testing.T) {
		limiter := &stubLimiter{err: errors.New("redis down")}
		r := gin.New()
		r.GET("/", RateLimit(limiter, log), func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMetrics_ReportsMatchedRoute(t *testing.T) {
	observer := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(observer))
	r.GET("/shifts/:id", func(ctx *gin.Context) { ctx.Status(http.StatusAccepted) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/shifts/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, []string{"GET /shifts/:id", "GET unmatched"}, observer.routes)
	assert.Equal(t, []int{http.StatusAccepted, http.StatusNotFound}, observer.statuses)
}

func TestAbortWithError_HidesInternalErrors(t *testing.T) {
	c, w := newTestContext(t, http.MethodGet, "/", nil, nil)
	abortWithError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Len(t, c.Errors, 1)
}
