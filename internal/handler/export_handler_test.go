package handler_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"invoscan/internal/handler"
	"invoscan/mocks"
)

func newExportRouter(svc *mocks.MockExportService) *gin.Engine {
	h := handler.NewExportHandler(svc)
	r := gin.New()
	r.GET("/exports/csv", h.ExportCSV)
	r.GET("/exports/xlsx", h.ExportXLSX)
	r.POST("/exports/email", h.EmailCSV)
	return r
}

func TestExportHandler_ExportCSV(t *testing.T) {
	svc := new(mocks.MockExportService)
	svc.On("ExportCSV", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		w := args.Get(1).(io.Writer)
		_, _ = w.Write([]byte("File Name,Scan Status\n"))
	}).Return(1, nil)

	req := httptest.NewRequest(http.MethodGet, "/exports/csv", nil)
	w := httptest.NewRecorder()
	newExportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Body.String(), "File Name")
}

func TestExportHandler_ExportCSV_ServiceError(t *testing.T) {
	svc := new(mocks.MockExportService)
	svc.On("ExportCSV", mock.Anything, mock.Anything).Return(0, assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/exports/csv", nil)
	w := httptest.NewRecorder()
	newExportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestExportHandler_ExportXLSX(t *testing.T) {
	svc := new(mocks.MockExportService)
	svc.On("ExportXLSX", mock.Anything).Return(bytes.NewBufferString("PK-spreadsheet"), 3, nil)

	req := httptest.NewRequest(http.MethodGet, "/exports/xlsx", nil)
	w := httptest.NewRecorder()
	newExportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
}

func TestExportHandler_EmailCSV(t *testing.T) {
	svc := new(mocks.MockExportService)
	svc.On("EmailCSV", mock.Anything, "ops@example.com").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/exports/email",
		bytes.NewBufferString(`{"to_email":"ops@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newExportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ops@example.com")
	svc.AssertExpectations(t)
}

func TestExportHandler_EmailCSV_InvalidAddress(t *testing.T) {
	svc := new(mocks.MockExportService)

	req := httptest.NewRequest(http.MethodPost, "/exports/email",
		bytes.NewBufferString(`{"to_email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newExportRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	svc.AssertNotCalled(t, "EmailCSV", mock.Anything, mock.Anything)
}
