package v1

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/ratelimit"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// TokenParser verifies bearer tokens
type TokenParser interface {
	ParseToken(token string) (*users.Principal, error)
}

// RequestObserver records the outcome of each request
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Authenticate requires a valid bearer token and stores the caller in the context.
// Websocket handshakes may pass the token as the "token" query parameter instead.
func Authenticate(parser TokenParser) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx.GetHeader("Authorization"))
		if token == "" && ctx.IsWebsocket() {
			token = ctx.Query("token")
		}
		if token == "" {
			abortWithError(ctx, fmt.Errorf("%w: missing bearer token", apperr.ErrUnauthorized))
			return
		}

		principal, err := parser.ParseToken(token)
		if err != nil {
			abortWithError(ctx, err)
			return
		}
		ctx.Set(principalKey, *principal)
		ctx.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// RequireRoles lets only the listed roles through
func RequireRoles(roles ...users.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !currentPrincipal(ctx).Is(roles...) {
			abortWithError(ctx, fmt.Errorf("%w: this endpoint requires one of %v", apperr.ErrForbidden, roles))
			return
		}
		ctx.Next()
	}
}

// RequirePermission lets only roles granted perm through
func RequirePermission(perm users.Permission) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !currentPrincipal(ctx).Can(perm) {
			abortWithError(ctx, fmt.Errorf("%w: missing permission %s", apperr.ErrForbidden, perm))
			return
		}
		ctx.Next()
	}
}

// RequestMeta puts the client IP and user agent in the request context for audit entries
func RequestMeta() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userAgent := ctx.GetHeader("User-Agent")
		if userAgent == "" {
			userAgent = audit.UnknownClient
		}
		meta := audit.RequestMeta{
			IPAddress: audit.ClientIP(ctx.GetHeader("X-Forwarded-For"), ctx.GetHeader("X-Real-IP")),
			UserAgent: userAgent,
		}
		ctx.Request = ctx.Request.WithContext(audit.WithRequestMeta(ctx.Request.Context(), meta))
		ctx.Next()
	}
}

// RateLimit rejects callers over their budget with 429. Authenticated callers are
// keyed by user, anonymous ones by client IP. Limiter failures let the request through.
func RateLimit(limiter ratelimit.Limiter, log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := "ip:" + ctx.ClientIP()
		if principal, ok := lookupPrincipal(ctx); ok {
			key = "user:" + principal.ID
		}

		allowed, err := limiter.Allow(ctx.Request.Context(), key)
		if err != nil {
			log.Warn("Rate limiter unavailable", "key", key, "error", err)
			ctx.Next()
			return
		}
		if !allowed {
			ctx.Header("Retry-After", "1")
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Message: "too many requests"})
			return
		}
		ctx.Next()
	}
}

// Metrics reports method, matched route, status and latency of each request
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		started := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveRequest(ctx.Request.Method, route, ctx.Writer.Status(), time.Since(started))
	}
}

// RequestLogger writes one structured line per request
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		started := time.Now()
		ctx.Next()

		status := ctx.Writer.Status()
		fields := []interface{}{
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", status,
			"elapsed", time.Since(started).String(),
			"client_ip", ctx.ClientIP(),
		}
		if len(ctx.Errors) > 0 {
			fields = append(fields, "error", ctx.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error(append([]interface{}{"Request failed"}, fields...)...)
		case status >= http.StatusBadRequest:
			log.Warn(append([]interface{}{"Request rejected"}, fields...)...)
		default:
			log.Info(append([]interface{}{"Request served"}, fields...)...)
		}
	}
}

func lookupPrincipal(ctx *gin.Context) (users.Principal, bool) {
	value, ok := ctx.Get(principalKey)
	if !ok {
		return users.Principal{}, false
	}
	principal, ok := value.(users.Principal)
	return principal, ok
}

// currentPrincipal returns the authenticated caller, or a zero principal that no role check admits
func currentPrincipal(ctx *gin.Context) users.Principal {
	principal, _ := lookupPrincipal(ctx)
	return principal
}
