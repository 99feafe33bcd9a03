package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/response"
)

// maxImportFileBytes caps an uploaded indicator workbook.
const maxImportFileBytes = 5 << 20

// CotidianoHandler serves the rubric category: indicator bank, selection
// and level grading.
type CotidianoHandler struct {
	cotSvc service.CotidianoService
}

// NewCotidianoHandler creates the CotidianoHandler.
func NewCotidianoHandler(cotSvc service.CotidianoService) *CotidianoHandler {
	return &CotidianoHandler{cotSvc: cotSvc}
}

// SetConfig writes the cotidiano configuration for a (periodo, subject).
// PUT /api/v1/cotidiano/config
func (h *CotidianoHandler) SetConfig(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.ConfigCategoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	cfg, err := h.cotSvc.SetConfig(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, cfg)
}

// CreateIndicador adds one indicator to the bank.
// POST /api/v1/cotidiano/indicadores
func (h *CotidianoHandler) CreateIndicador(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.IndicadorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	ind, err := h.cotSvc.CreateIndicador(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.Created(c, ind)
}

// UpdateIndicador edits one indicator's description.
// PUT /api/v1/cotidiano/indicadores/:id
func (h *CotidianoHandler) UpdateIndicador(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.IndicadorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	ind, err := h.cotSvc.UpdateIndicador(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, ind)
}

// DeleteIndicador removes one indicator from the bank, every selection and
// every grade on it.
// DELETE /api/v1/cotidiano/indicadores/:id
func (h *CotidianoHandler) DeleteIndicador(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.cotSvc.DeleteIndicador(c.Request.Context(), userID, c.Param("id")); err != nil {
		WriteServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// ListIndicadores returns the bank of one subject.
// GET /api/v1/cotidiano/indicadores?subject=...
func (h *CotidianoHandler) ListIndicadores(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	subject := c.Query("subject")
	if subject == "" {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	inds, err := h.cotSvc.ListIndicadores(c.Request.Context(), userID, subject)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, inds)
}

// ImportIndicadores adds many indicators from a JSON list.
// POST /api/v1/cotidiano/indicadores/import
func (h *CotidianoHandler) ImportIndicadores(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.ImportIndicadoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	res, err := h.cotSvc.ImportIndicadores(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, res)
}

// ImportIndicadoresXLSX adds indicators from the first column of an
// uploaded workbook.
// POST /api/v1/cotidiano/indicadores/import-xlsx?subject=...
func (h *CotidianoHandler) ImportIndicadoresXLSX(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	subject := c.Query("subject")
	if subject == "" {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Size > maxImportFileBytes {
		response.BadRequest(c, 10001, "archivo inválido")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "archivo inválido")
		return
	}
	defer f.Close()

	res, err := h.cotSvc.ImportIndicadoresXLSX(c.Request.Context(), userID, subject, f)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, res)
}

// SetSeleccion picks the indicators graded in one (periodo, subject).
// PUT /api/v1/cotidiano/seleccion
func (h *CotidianoHandler) SetSeleccion(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.SeleccionCotidianoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	ev, err := h.cotSvc.SetSeleccion(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, ev)
}

// GetSeleccion reads the selection; a never-written one comes back empty.
// GET /api/v1/cotidiano/seleccion?periodo=...&subject=...
func (h *CotidianoHandler) GetSeleccion(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	periodo, subject := c.Query("periodo"), c.Query("subject")
	if periodo == "" || subject == "" {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	ev, err := h.cotSvc.GetSeleccion(c.Request.Context(), userID, periodo, subject)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, ev)
}

// CiclarNivel advances one student's level on one indicator.
// POST /api/v1/cotidiano/ciclar
func (h *CotidianoHandler) CiclarNivel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CiclarNivelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros inválidos")
		return
	}

	nivel, err := h.cotSvc.CiclarNivel(c.Request.Context(), userID, &req)
	if err != nil {
		WriteServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"nivel": nivel})
}
