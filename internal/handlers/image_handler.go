package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"portfolio_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	*BaseHandler
	imageService services.ImageService
}

func NewImageHandler(base *BaseHandler, imageService services.ImageService) *ImageHandler {
	return &ImageHandler{
		BaseHandler:  base,
		imageService: imageService,
	}
}

func (h *ImageHandler) RegisterRoutes(r *gin.RouterGroup) {
	images := r.Group("/portfolios/image")
	{
		images.GET("/:imageId", h.ServeImage)
		images.HEAD("/:imageId", h.CheckImageExists)
	}
}

// ServeImage godoc
// @Summary  Raw image bytes
// @Tags     images
// @Produce  image/*
// @Param    imageId path string true "Image ID"
// @Success  200 {file} binary
// @Failure  404 {object} apperrors.ErrorResponse
// @Router   /api/portfolios/image/{imageId} [get]
func (h *ImageHandler) ServeImage(c *gin.Context) {
	content, err := h.imageService.Get(c.Request.Context(), c.Param("imageId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000")
	c.Header("ETag", fmt.Sprintf(`"%s"`, content.Image.ID))
	c.Header("Content-Disposition", "inline")
	c.Data(http.StatusOK, content.Image.MimeType, content.Data)
}

// CheckImageExists отвечает только заголовками (HEAD)
func (h *ImageHandler) CheckImageExists(c *gin.Context) {
	image, err := h.imageService.Stat(c.Request.Context(), c.Param("imageId"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Content-Type", image.MimeType)
	c.Header("Content-Length", strconv.FormatInt(image.Size, 10))
	c.Header("ETag", fmt.Sprintf(`"%s"`, image.ID))
	c.Status(http.StatusOK)
}
