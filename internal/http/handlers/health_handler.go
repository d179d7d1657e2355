package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/storage"
	"github.com/ignatzorin/proposal-backend/internal/ws"
)

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	store storage.Store
	hub   *ws.Hub
}

// NewHealthHandler создаёт новый health handler.
func NewHealthHandler(store storage.Store, hub *ws.Hub) *HealthHandler {
	return &HealthHandler{store: store, hub: hub}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	StorageMode storage.Mode      `json:"storageMode"`
	Checks      map[string]string `json:"checks"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if pinger, ok := h.store.(storage.Pinger); ok {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			checks["storage"] = "unhealthy: " + err.Error()
			status = "unhealthy"
		} else {
			checks["storage"] = "healthy"
		}
	}

	if h.hub != nil {
		checks["ws_clients"] = strconv.Itoa(h.hub.ClientCount())
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:      status,
		Timestamp:   time.Now(),
		StorageMode: h.store.Mode(),
		Checks:      checks,
	})
}
