package handlers

import (
	"errors"
	"net/http"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	*BaseHandler
	portfolioService services.PortfolioService
	uploadService    services.UploadService
	maxBodySize      int64
}

func NewPortfolioHandler(base *BaseHandler, portfolioService services.PortfolioService, uploadService services.UploadService, maxFileSize int64) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler:      base,
		portfolioService: portfolioService,
		uploadService:    uploadService,
		// все файлы плюс поле data
		maxBodySize: maxFileSize*(dto.MaxProjectImages+1) + 1<<20,
	}
}

func (h *PortfolioHandler) RegisterRoutes(r *gin.RouterGroup) {
	portfolios := r.Group("/portfolios")
	{
		portfolios.GET("", h.GetPortfolios)
		portfolios.POST("", h.CreatePortfolio)
		portfolios.GET("/filter/:type/:value", h.FilterPortfolios)
		portfolios.GET("/:id", h.GetPortfolio)
		portfolios.PUT("/:id", h.UpdatePortfolio)
		portfolios.DELETE("/:id", h.DeletePortfolio)
	}
}

type FilterParams struct {
	Type  string `uri:"type" validate:"required"`
	Value string `uri:"value" validate:"required"`
}

// GetPortfolios godoc
// @Summary  List portfolios
// @Tags     portfolios
// @Produce  json
// @Success  200 {array} models.Portfolio
// @Router   /api/portfolios [get]
func (h *PortfolioHandler) GetPortfolios(c *gin.Context) {
	portfolios, err := h.portfolioService.GetPortfolios(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, portfolios)
}

// GetPortfolio godoc
// @Summary  Get a portfolio
// @Tags     portfolios
// @Produce  json
// @Param    id path string true "Portfolio ID"
// @Success  200 {object} models.Portfolio
// @Failure  404 {object} apperrors.ErrorResponse
// @Router   /api/portfolios/{id} [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	portfolio, err := h.portfolioService.GetPortfolio(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// CreatePortfolio godoc
// @Summary  Create a portfolio
// @Tags     portfolios
// @Accept   multipart/form-data
// @Produce  json
// @Param    data formData string true "Portfolio JSON"
// @Param    profileImage formData file false "Profile image"
// @Param    portfolioImage0 formData file false "Project 0 image"
// @Param    portfolioImage1 formData file false "Project 1 image"
// @Param    portfolioImage2 formData file false "Project 2 image"
// @Success  201 {object} models.Portfolio
// @Failure  400 {object} apperrors.ErrorResponse
// @Router   /api/portfolios [post]
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	payload, files, ok := h.readSubmission(c)
	if !ok {
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(c.Request.Context(), payload, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, portfolio)
}

// UpdatePortfolio godoc
// @Summary  Update a portfolio
// @Tags     portfolios
// @Accept   multipart/form-data
// @Produce  json
// @Param    id path string true "Portfolio ID"
// @Param    data formData string true "Portfolio JSON"
// @Success  200 {object} models.Portfolio
// @Failure  400 {object} apperrors.ErrorResponse
// @Failure  404 {object} apperrors.ErrorResponse
// @Router   /api/portfolios/{id} [put]
func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	payload, files, ok := h.readSubmission(c)
	if !ok {
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(c.Request.Context(), c.Param("id"), payload, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// DeletePortfolio godoc
// @Summary  Delete a portfolio and its images
// @Tags     portfolios
// @Produce  json
// @Param    id path string true "Portfolio ID"
// @Success  200 {object} dto.MessageResponse
// @Failure  404 {object} apperrors.ErrorResponse
// @Router   /api/portfolios/{id} [delete]
func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	if err := h.portfolioService.DeletePortfolio(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Portfolio deleted successfully"})
}

// FilterPortfolios godoc
// @Summary  Filter portfolios by skill or role
// @Tags     portfolios
// @Produce  json
// @Param    type path string true "skills | role"
// @Param    value path string true "Substring to match"
// @Success  200 {array} models.Portfolio
// @Router   /api/portfolios/filter/{type}/{value} [get]
func (h *PortfolioHandler) FilterPortfolios(c *gin.Context) {
	var params FilterParams
	if !h.BindAndValidate_URI(c, &params) {
		return
	}

	portfolios, err := h.portfolioService.FilterPortfolios(c.Request.Context(), params.Type, params.Value)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, portfolios)
}

// readSubmission разбирает multipart: сначала файлы, потом поле data
func (h *PortfolioHandler) readSubmission(c *gin.Context) (*dto.PortfolioPayload, *dto.PortfolioFiles, bool) {
	ctx := c.Request.Context()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodySize)

	var files *dto.PortfolioFiles
	err := c.Request.ParseMultipartForm(32 << 20)
	switch {
	case err == nil:
		files, err = h.uploadService.ReadFiles(ctx, c.Request.MultipartForm)
		if err != nil {
			h.HandleServiceError(c, err)
			return nil, nil, false
		}
	case errors.Is(err, http.ErrNotMultipart):
		// data может прийти и как обычное поле формы
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.HandleServiceError(c, apperrors.ErrFileTooLarge)
		} else {
			logger.CtxWithError(ctx, "failed to parse multipart body", err)
			h.HandleServiceError(c, apperrors.ErrMalformedUpload)
		}
		return nil, nil, false
	}

	payload, err := dto.ParsePayload(c.Request.FormValue(dto.FieldData))
	if err != nil {
		h.HandleServiceError(c, apperrors.ErrInvalidPayload(err))
		return nil, nil, false
	}

	return payload, files, true
}
