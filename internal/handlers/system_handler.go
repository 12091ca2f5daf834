package handlers

import (
	"net/http"
	"time"

	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/templates"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

// SystemHandler: информация об API, health и каталог шаблонов
type SystemHandler struct {
	*BaseHandler
	startedAt time.Time
}

func NewSystemHandler(base *BaseHandler, startedAt time.Time) *SystemHandler {
	return &SystemHandler{BaseHandler: base, startedAt: startedAt}
}

func (h *SystemHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Health)
	r.GET("/templates", h.GetTemplates)
}

// Info godoc
// @Summary  API info
// @Tags     system
// @Produce  json
// @Success  200 {object} dto.APIInfoResponse
// @Router   / [get]
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, dto.APIInfoResponse{
		Message: "Portfolio Generator API",
		Version: apiVersion,
		Endpoints: map[string]string{
			"portfolios": "/api/portfolios",
			"images":     "/api/portfolios/image/:imageId",
			"filter":     "/api/portfolios/filter/:type/:value",
			"templates":  "/api/templates",
			"health":     "/api/health",
			"docs":       "/swagger/index.html",
		},
	})
}

// Health godoc
// @Summary  Liveness
// @Tags     system
// @Produce  json
// @Success  200 {object} dto.HealthResponse
// @Router   /api/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startedAt).Seconds(),
	})
}

// GetTemplates godoc
// @Summary  Template catalog
// @Tags     templates
// @Produce  json
// @Success  200 {array} templates.Template
// @Router   /api/templates [get]
func (h *SystemHandler) GetTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, templates.Catalog())
}
