package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/response"
)

// AlertaHandler serves the early-warning case endpoints.
type AlertaHandler struct {
	alertaSvc service.AlertaService
}

// NewAlertaHandler creates the AlertaHandler.
func NewAlertaHandler(alertaSvc service.AlertaService) *AlertaHandler {
	return &AlertaHandler{alertaSvc: alertaSvc}
}

// Create opens a case for a student of the active course.
// POST /api/v1/alertas
func (h *AlertaHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAlertaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	alerta, err := h.alertaSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.Created(c, alerta)
}

// Update edits a case. Closing a case keeps it.
// PUT /api/v1/alertas/:id
func (h *AlertaHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAlertaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	alerta, err := h.alertaSvc.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, alerta)
}

// Delete removes a case explicitly.
// DELETE /api/v1/alertas/:id
func (h *AlertaHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.alertaSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		WriteServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// Get returns one case.
// GET /api/v1/alertas/:id
func (h *AlertaHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	alerta, err := h.alertaSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, alerta)
}

// List returns every case of the active course with student names.
// GET /api/v1/alertas
func (h *AlertaHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.alertaSvc.List(c.Request.Context(), userID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, list)
}

// AddAtencionAction appends one follow-up action to a case.
// POST /api/v1/alertas/:id/acciones
func (h *AlertaHandler) AddAtencionAction(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.AtencionActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	alerta, err := h.alertaSvc.AddAtencionAction(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, alerta)
}

// AddContactLog appends one family-contact entry to a case.
// POST /api/v1/alertas/:id/contactos
func (h *AlertaHandler) AddContactLog(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.ContactLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	alerta, err := h.alertaSvc.AddContactLog(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, alerta)
}

// RemoveAtencionAction deletes one follow-up action from a case.
// DELETE /api/v1/alertas/:id/acciones/:accionID
func (h *AlertaHandler) RemoveAtencionAction(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	actionID, err := strconv.Atoi(c.Param("accionID"))
	if err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	alerta, err := h.alertaSvc.RemoveAtencionAction(c.Request.Context(), userID, c.Param("id"), actionID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, alerta)
}

// RemoveContactLog deletes one family-contact entry from a case.
// DELETE /api/v1/alertas/:id/contactos/:contactoID
func (h *AlertaHandler) RemoveContactLog(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	logID, err := strconv.Atoi(c.Param("contactoID"))
	if err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	alerta, err := h.alertaSvc.RemoveContactLog(c.Request.Context(), userID, c.Param("id"), logID)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, alerta)
}
