package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoscan/internal/domain"
	"invoscan/internal/service"
	"invoscan/internal/validator"
)

// ScanHandler handles scan submission and retrieval endpoints.
type ScanHandler struct {
	scanService service.ScanService
	validation  *validator.Engine
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanService service.ScanService, validation *validator.Engine) *ScanHandler {
	return &ScanHandler{scanService: scanService, validation: validation}
}

// Submit handles POST /api/v1/scans. The document goes through storage, OCR,
// and field extraction before the response is written.
func (h *ScanHandler) Submit(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	scan, err := h.scanService.Submit(c.Request.Context(), service.ScanUploadInput{
		File:    file,
		Header:  header,
		Backend: c.PostForm("ocr_backend"),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, scan)
}

// List handles GET /api/v1/scans
func (h *ScanHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	scans, total, err := h.scanService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, scans, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/scans/:id, returning the scan together with a
// presigned URL for the original document.
func (h *ScanHandler) GetByID(c *gin.Context) {
	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	scan, err := h.scanService.GetByID(c.Request.Context(), scanID)
	if err != nil {
		HandleError(c, err)
		return
	}

	downloadURL, err := h.scanService.GetDownloadURL(c.Request.Context(), scanID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"scan":         scan,
		"download_url": downloadURL,
	})
}

// GetRecord handles GET /api/v1/scans/:id/record, returning only the
// extracted invoice record.
func (h *ScanHandler) GetRecord(c *gin.Context) {
	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	scan, err := h.scanService.GetByID(c.Request.Context(), scanID)
	if err != nil {
		HandleError(c, err)
		return
	}

	rec, err := scan.ExtractedRecord()
	if err != nil {
		HandleError(c, err)
		return
	}
	if rec == nil {
		HandleError(c, domain.ErrScanNotExtracted)
		return
	}

	RespondOK(c, rec)
}

// GetValidation handles GET /api/v1/scans/:id/validation, running the rule
// engine over the extracted record on demand.
func (h *ScanHandler) GetValidation(c *gin.Context) {
	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	scan, err := h.scanService.GetByID(c.Request.Context(), scanID)
	if err != nil {
		HandleError(c, err)
		return
	}

	rec, err := scan.ExtractedRecord()
	if err != nil {
		HandleError(c, err)
		return
	}
	if rec == nil {
		HandleError(c, domain.ErrScanNotExtracted)
		return
	}

	RespondOK(c, h.validation.Validate(rec))
}

// Reextract handles POST /api/v1/scans/:id/reextract
func (h *ScanHandler) Reextract(c *gin.Context) {
	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	scan, err := h.scanService.Reextract(c.Request.Context(), scanID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, scan)
}

// Delete handles DELETE /api/v1/scans/:id
func (h *ScanHandler) Delete(c *gin.Context) {
	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid scan ID")
		return
	}

	if err := h.scanService.Delete(c.Request.Context(), scanID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "scan deleted"})
}
