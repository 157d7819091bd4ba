package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexkm13/scarlet-planner/internal/service"
	appErrors "github.com/alexkm13/scarlet-planner/pkg/errors"
	"github.com/alexkm13/scarlet-planner/pkg/response"
)

// ExportHandler streams rendered schedule exports.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export godoc
// @Summary Export a plan schedule
// @Tags Plans
// @Produce octet-stream
// @Param id path string true "Plan ID"
// @Param format path string true "Export format" Enums(ics, pdf, csv)
// @Success 200 {file} binary
// @Router /plans/{id}/export/{format} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	artifact, err := h.exports.Render(c.Request.Context(), claims.UserID, c.Param("id"), c.Param("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}
