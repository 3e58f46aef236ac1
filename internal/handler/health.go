package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/dcd-pricer/internal/dto"
)

type HealthHandler struct {
	pool        *pgxpool.Pool
	conventions int
	holidays    int
}

// NewHealthHandler takes a nil pool when quote persistence is off. Pricing
// does not need the database, so the service stays healthy without one.
func NewHealthHandler(pool *pgxpool.Pool, conventions, holidays int) *HealthHandler {
	return &HealthHandler{pool: pool, conventions: conventions, holidays: holidays}
}

func (h *HealthHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:      "healthy",
		Database:    "disabled",
		Conventions: h.conventions,
		Holidays:    h.holidays,
		CheckedAt:   time.Now().UTC(),
	}

	status := http.StatusOK
	if h.pool != nil {
		resp.Database = "connected"
		if err := h.pool.Ping(c.Request.Context()); err != nil {
			resp.Status, resp.Database = "unhealthy", "disconnected"
			status = http.StatusServiceUnavailable
		}
	}
	if h.conventions == 0 {
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, resp)
}
