package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/response"
)

// CursoHandler serves the school-year endpoints.
type CursoHandler struct {
	cursoSvc service.CursoService
}

// NewCursoHandler creates the CursoHandler.
func NewCursoHandler(cursoSvc service.CursoService) *CursoHandler {
	return &CursoHandler{cursoSvc: cursoSvc}
}

// Create registers a new school year.
// POST /api/v1/cursos
func (h *CursoHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCursoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	curso, err := h.cursoSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.Created(c, curso)
}

// Update edits an existing school year.
// PUT /api/v1/cursos/:id
func (h *CursoHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateCursoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	curso, err := h.cursoSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, curso)
}

// Delete removes a school year and everything recorded under it.
// DELETE /api/v1/cursos/:id
func (h *CursoHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.cursoSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		WriteServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// List returns every school year of the teacher.
// GET /api/v1/cursos
func (h *CursoHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cursos, err := h.cursoSvc.List(c.Request.Context(), userID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, cursos)
}

// Activate selects the working school year.
// PUT /api/v1/cursos/:id/activate
func (h *CursoHandler) Activate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.cursoSvc.Activate(c.Request.Context(), userID, c.Param("id")); err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, nil)
}

// GetActivo returns the active school year.
// GET /api/v1/cursos/activo
func (h *CursoHandler) GetActivo(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	curso, err := h.cursoSvc.GetActivo(c.Request.Context(), userID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, curso)
}
