package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/response"
)

// EvaluacionHandler serves one weighted category (tareas, proyectos or
// pruebas); the router mounts one instance per category.
type EvaluacionHandler struct {
	evalSvc service.EvaluacionService
}

// NewEvaluacionHandler creates an EvaluacionHandler.
func NewEvaluacionHandler(evalSvc service.EvaluacionService) *EvaluacionHandler {
	return &EvaluacionHandler{evalSvc: evalSvc}
}

// SetConfig writes the category configuration for a (periodo, subject).
// PUT /api/v1/{categoria}/config
func (h *EvaluacionHandler) SetConfig(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.ConfigCategoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	cfg, err := h.evalSvc.SetConfig(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, cfg)
}

// GetConfig reads the category configuration.
// GET /api/v1/{categoria}/config?periodo=...&subject=...
func (h *EvaluacionHandler) GetConfig(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	periodo, subject := c.Query("periodo"), c.Query("subject")
	if periodo == "" || subject == "" {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	cfg, err := h.evalSvc.GetConfig(c.Request.Context(), userID, periodo, subject)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, cfg)
}

// CreateItem adds a gradable item.
// POST /api/v1/{categoria}/items
func (h *EvaluacionHandler) CreateItem(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	item, err := h.evalSvc.CreateItem(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateItem edits a gradable item.
// PUT /api/v1/{categoria}/items/:id
func (h *EvaluacionHandler) UpdateItem(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	item, err := h.evalSvc.UpdateItem(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteItem removes an item with its grades.
// DELETE /api/v1/{categoria}/items/:id
func (h *EvaluacionHandler) DeleteItem(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.evalSvc.DeleteItem(c.Request.Context(), userID, c.Param("id")); err != nil {
		WriteServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// ListItems returns the items of a (periodo, subject).
// GET /api/v1/{categoria}/items?periodo=...&subject=...
func (h *EvaluacionHandler) ListItems(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	periodo, subject := c.Query("periodo"), c.Query("subject")
	if periodo == "" || subject == "" {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	items, err := h.evalSvc.ListItems(c.Request.Context(), userID, periodo, subject)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, items)
}

// Calificar writes one student's grade on one item.
// PUT /api/v1/{categoria}/items/:id/calificaciones
func (h *EvaluacionHandler) Calificar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CalificarItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	calif, err := h.evalSvc.Calificar(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, calif)
}

// Calificaciones returns every stored grade of one item.
// GET /api/v1/{categoria}/items/:id/calificaciones
func (h *EvaluacionHandler) Calificaciones(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	califs, err := h.evalSvc.Calificaciones(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, califs)
}
