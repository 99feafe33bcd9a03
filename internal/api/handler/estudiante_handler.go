package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/response"
)

// EstudianteHandler serves the roster endpoints of the active course.
type EstudianteHandler struct {
	estSvc service.EstudianteService
}

// NewEstudianteHandler creates the EstudianteHandler.
func NewEstudianteHandler(estSvc service.EstudianteService) *EstudianteHandler {
	return &EstudianteHandler{estSvc: estSvc}
}

// Create enrolls a student in the active course.
// POST /api/v1/estudiantes
func (h *EstudianteHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateEstudianteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	est, err := h.estSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.Created(c, est)
}

// Update edits a student's record.
// PUT /api/v1/estudiantes/:id
func (h *EstudianteHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateEstudianteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	est, err := h.estSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, est)
}

// Delete removes a student and every trace of them.
// DELETE /api/v1/estudiantes/:id
func (h *EstudianteHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.estSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		WriteServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// Get returns one student.
// GET /api/v1/estudiantes/:id
func (h *EstudianteHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	est, err := h.estSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, est)
}

// List returns the active course's roster.
// GET /api/v1/estudiantes
func (h *EstudianteHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.estSvc.List(c.Request.Context(), userID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// CambiarEstado moves a student between Activo, Trasladado and Desertor.
// PUT /api/v1/estudiantes/:id/estado
func (h *EstudianteHandler) CambiarEstado(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CambiarEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	est, err := h.estSvc.CambiarEstado(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, est)
}
