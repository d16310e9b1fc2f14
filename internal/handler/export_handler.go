package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoscan/internal/csvexport"
	"invoscan/internal/service"
)

// ExportHandler handles spreadsheet export endpoints.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportCSV handles GET /api/v1/exports/csv
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.exportService.ExportCSV(c.Request.Context(), &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("scans", "csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX handles GET /api/v1/exports/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	buf, _, err := h.exportService.ExportXLSX(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("scans", "xlsx")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// EmailCSVInput is the DTO for emailed exports.
type EmailCSVInput struct {
	ToEmail string `json:"to_email" binding:"required,email"`
}

// EmailCSV handles POST /api/v1/exports/email
func (h *ExportHandler) EmailCSV(c *gin.Context) {
	var input EmailCSVInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "to_email is required and must be a valid address")
		return
	}

	if err := h.exportService.EmailCSV(c.Request.Context(), input.ToEmail); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "export sent to " + input.ToEmail})
}
