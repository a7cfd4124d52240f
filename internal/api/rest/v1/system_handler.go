package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// ConnectionServer streams live events to an authenticated user
type ConnectionServer interface {
	Serve(w http.ResponseWriter, r *http.Request, userID string) error
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// SystemHandler defines the interface for health checks and the websocket endpoint
type SystemHandler interface {
	Health(ctx *gin.Context)
	Connect(ctx *gin.Context)
}

type systemHandler struct {
	database Pinger
	realtime ConnectionServer
	logger   logger.Logger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(database Pinger, realtime ConnectionServer, logger logger.Logger) SystemHandler {
	return &systemHandler{database: database, realtime: realtime, logger: logger}
}

// Health handles the GET request probing the service and its database
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func (handler *systemHandler) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthTimeout)
	defer cancel()

	if err := handler.database.Ping(pingCtx); err != nil {
		handler.logger.Warn("Health check failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	ctx.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}

// Connect upgrades to a websocket that receives the caller's notification events.
// A failed handshake has already been answered by the upgrader.
func (handler *systemHandler) Connect(ctx *gin.Context) {
	caller := currentPrincipal(ctx)
	if err := handler.realtime.Serve(ctx.Writer, ctx.Request, caller.ID); err != nil {
		handler.logger.Warn("Websocket session failed", "user_id", caller.ID, "error", err)
	}
}
