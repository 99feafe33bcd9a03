package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/response"
)

// AsistenciaHandler serves the attendance grid endpoints.
type AsistenciaHandler struct {
	asisSvc service.AsistenciaService
}

// NewAsistenciaHandler creates the AsistenciaHandler.
func NewAsistenciaHandler(asisSvc service.AsistenciaService) *AsistenciaHandler {
	return &AsistenciaHandler{asisSvc: asisSvc}
}

// Ciclar advances one cell to its next status and returns where it landed.
// POST /api/v1/asistencia/ciclar
func (h *AsistenciaHandler) Ciclar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CiclarAsistenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	status, err := h.asisSvc.Ciclar(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"status": status})
}

// Set writes one cell directly.
// PUT /api/v1/asistencia
func (h *AsistenciaHandler) Set(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.SetAsistenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	if err := h.asisSvc.Set(c.Request.Context(), userID, &req); err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, nil)
}

// Grid returns the monthly grid for one subject.
// GET /api/v1/asistencia/grid?subject=...&year=2026&month=3
func (h *AsistenciaHandler) Grid(c *gin.Context) {
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

	grid, err := h.asisSvc.Grid(c.Request.Context(), userID, subject, year, time.Month(month))
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, grid)
}
