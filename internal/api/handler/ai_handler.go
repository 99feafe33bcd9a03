package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/response"
)

// AIHandler serves the drafting endpoints. Every reply is a draft the
// teacher edits before using; nothing is stored.
type AIHandler struct {
	aiSvc service.AIService
}

// NewAIHandler creates the AIHandler.
func NewAIHandler(aiSvc service.AIService) *AIHandler {
	return &AIHandler{aiSvc: aiSvc}
}

// ComentarioPrueba drafts a comment on one student's test grade.
// POST /api/v1/ai/comentario-prueba
func (h *AIHandler) ComentarioPrueba(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.ComentarioPruebaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	texto, err := h.aiSvc.ComentarioPrueba(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, dto.TextoGeneradoResponse{Texto: texto})
}

// Comunicacion drafts an SMS for a student's guardian.
// POST /api/v1/ai/comunicacion
func (h *AIHandler) Comunicacion(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.ComunicacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	texto, err := h.aiSvc.Comunicacion(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, dto.TextoGeneradoResponse{Texto: texto})
}

// ResumenEstudiante drafts a one-paragraph roster summary.
// POST /api/v1/ai/resumen-estudiante
func (h *AIHandler) ResumenEstudiante(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.ResumenEstudianteAIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	texto, err := h.aiSvc.ResumenEstudiante(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, dto.TextoGeneradoResponse{Texto: texto})
}

// ComentarioInforme drafts the report-card comment for one period.
// POST /api/v1/ai/comentario-informe
func (h *AIHandler) ComentarioInforme(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.ComentarioInformeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	texto, err := h.aiSvc.ComentarioInforme(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, dto.TextoGeneradoResponse{Texto: texto})
}

// PlanAtencion drafts a structured attention plan for a case.
// POST /api/v1/ai/plan-atencion
func (h *AIHandler) PlanAtencion(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.PlanAtencionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	plan, err := h.aiSvc.PlanAtencion(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, dto.PlanAtencionResponse{Plan: plan})
}

// PerfilEntrada drafts a student's formal entry profile.
// POST /api/v1/ai/perfil-entrada
func (h *AIHandler) PerfilEntrada(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.PerfilEntradaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	texto, err := h.aiSvc.PerfilEntrada(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, dto.TextoGeneradoResponse{Texto: texto})
}

// PerfilSalida drafts a student's formal exit profile.
// POST /api/v1/ai/perfil-salida
func (h *AIHandler) PerfilSalida(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.PerfilSalidaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	texto, err := h.aiSvc.PerfilSalida(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, dto.TextoGeneradoResponse{Texto: texto})
}

// Companion answers a question over the active course's data, streamed as
// server-sent events with one data line per chunk.
// POST /api/v1/ai/companion
func (h *AIHandler) Companion(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CompanionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	flusher, _ := c.Writer.(http.Flusher)
	streamed := false
	err := h.aiSvc.Companion(c.Request.Context(), userID, &req, func(chunk string) error {
		if !streamed {
			// The headers go out with the first chunk so an early error can
			// still use the JSON envelope.
			c.Header("Content-Type", "text/event-stream")
			c.Header("Cache-Control", "no-cache")
			c.Header("Connection", "keep-alive")
		}
		streamed = true
		c.SSEvent("message", chunk)
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	if err != nil {
		// Nothing was written yet, so a normal error envelope still works.
		if !streamed {
			WriteServiceError(c, err)
			return
		}
		c.SSEvent("error", err.Error())
		if flusher != nil {
			flusher.Flush()
		}
		return
	}
	c.SSEvent("done", "")
	if flusher != nil {
		flusher.Flush()
	}
}
