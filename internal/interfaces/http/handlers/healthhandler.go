package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/shared/utils"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	version string
}

func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// HealthCheck handles GET /health
//
//	@Summary		Liveness and database connectivity
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	utils.APIResponse
//	@Failure		503	{object}	utils.APIResponse
//	@Router			/health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"status":  "healthy",
		"version": h.version,
	})
}
