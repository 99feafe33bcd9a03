package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the file downloads: grade summaries, attendance
// grids and the school calendar.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates the ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

func setDownloadHeaders(c *gin.Context, filename, contentType string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", contentType)
}

// ResumenXLSX downloads the grade summary workbook for one view.
// GET /api/v1/export/resumen?periodo=...&subject=...
func (h *ExportHandler) ResumenXLSX(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	periodo, subject := c.Query("periodo"), c.Query("subject")
	if periodo == "" || subject == "" {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	buf, filename, err := h.exportSvc.ResumenXLSX(c.Request.Context(), userID, periodo, subject)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	setDownloadHeaders(c, filename, xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// AsistenciaXLSX downloads the monthly attendance grid workbook.
// GET /api/v1/export/asistencia?subject=...&year=2026&month=3
func (h *ExportHandler) AsistenciaXLSX(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	subject := c.Query("subject")
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if subject == "" || errY != nil || errM != nil || month < 1 || month > 12 {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	buf, filename, err := h.exportSvc.AsistenciaXLSX(c.Request.Context(), userID, subject, year, time.Month(month))
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	setDownloadHeaders(c, filename, xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// CalendarioICS downloads the school-year calendar with one all-day event
// per period.
// GET /api/v1/export/calendario
func (h *ExportHandler) CalendarioICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	serialized, filename, err := h.exportSvc.CalendarioICS(c.Request.Context(), userID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}

	setDownloadHeaders(c, filename, "text/calendar")
	c.Data(http.StatusOK, "text/calendar", []byte(serialized))
}
