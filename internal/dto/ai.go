package dto

import "github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/ai"

// ── AI drafting DTOs ──

// ComentarioPruebaRequest drafts a comment on one student's test grade.
type ComentarioPruebaRequest struct {
	EstudianteID string `json:"estudiante_id" binding:"required"`
	PruebaID     string `json:"prueba_id"     binding:"required"`
}

// ComunicacionRequest drafts an SMS for a student's guardian.
type ComunicacionRequest struct {
	EstudianteID string `json:"estudiante_id" binding:"required"`
	Motivo       string `json:"motivo"        binding:"required,min=3,max=500"`
}

// ResumenEstudianteAIRequest drafts a one-paragraph roster summary.
type ResumenEstudianteAIRequest struct {
	EstudianteID string `json:"estudiante_id" binding:"required"`
}

// ComentarioInformeRequest drafts the report-card comment for one period.
type ComentarioInformeRequest struct {
	EstudianteID  string `json:"estudiante_id"  binding:"required"`
	PeriodoNombre string `json:"periodo_nombre" binding:"required"`
	Subject       string `json:"subject"        binding:"required"`
}

// PlanAtencionRequest drafts a structured attention plan for a case.
type PlanAtencionRequest struct {
	AlertaID string `json:"alerta_id" binding:"required"`
}

// PerfilEntradaRequest drafts a student's formal entry profile from the
// teacher's per-subject prior-year comments plus qualitative keywords. At
// least one subject comment is required.
type PerfilEntradaRequest struct {
	EstudianteID          string            `json:"estudiante_id"           binding:"required"`
	ComentariosPorMateria map[string]string `json:"comentarios_por_materia" binding:"required"`
	Socioafectiva         string            `json:"socioafectiva"           binding:"omitempty,max=500"`
	Psicomotriz           string            `json:"psicomotriz"             binding:"omitempty,max=500"`
	ApoyoHogar            string            `json:"apoyo_hogar"             binding:"omitempty,max=500"`
}

// PerfilSalidaRequest drafts a student's formal exit profile from annual
// results plus the teacher's qualitative keywords.
type PerfilSalidaRequest struct {
	EstudianteID  string `json:"estudiante_id" binding:"required"`
	Socioafectiva string `json:"socioafectiva" binding:"omitempty,max=500"`
	Psicomotriz   string `json:"psicomotriz"   binding:"omitempty,max=500"`
	ApoyoHogar    string `json:"apoyo_hogar"   binding:"omitempty,max=500"`
}

// CompanionRequest asks a free-form question over the active course's data.
type CompanionRequest struct {
	Pregunta string `json:"pregunta" binding:"required,min=2,max=2000"`
}

// TextoGeneradoResponse carries a finished draft.
type TextoGeneradoResponse struct {
	Texto string `json:"texto"`
}

// PlanAtencionResponse carries the structured attention plan.
type PlanAtencionResponse struct {
	Plan []ai.AccionSugerida `json:"plan"`
}
