package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/response"
)

// ResumenHandler serves the computed grade summaries. The periodo query
// accepts a period name or Anual for the whole year.
type ResumenHandler struct {
	resumenSvc service.ResumenService
}

// NewResumenHandler creates the ResumenHandler.
func NewResumenHandler(resumenSvc service.ResumenService) *ResumenHandler {
	return &ResumenHandler{resumenSvc: resumenSvc}
}

// Estudiante returns one student's results.
// GET /api/v1/resumen/estudiantes/:id?periodo=...&subject=...
func (h *ResumenHandler) Estudiante(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	periodo, subject := c.Query("periodo"), c.Query("subject")
	if periodo == "" || subject == "" {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	res, err := h.resumenSvc.Estudiante(c.Request.Context(), userID, c.Param("id"), periodo, subject)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, res)
}

// Grupo returns the active roster's results.
// GET /api/v1/resumen/grupo?periodo=...&subject=...
func (h *ResumenHandler) Grupo(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	periodo, subject := c.Query("periodo"), c.Query("subject")
	if periodo == "" || subject == "" {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	res, err := h.resumenSvc.Grupo(c.Request.Context(), userID, periodo, subject)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, res)
}
