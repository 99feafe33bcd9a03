package dto

import "github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"

// ── alertas tempranas DTOs ──

// CreateAlertaRequest opens an early-warning case for a student.
type CreateAlertaRequest struct {
	EstudianteID  string          `json:"estudiante_id" binding:"required"`
	CheckedItems  map[string]bool `json:"checked_items"`
	Observaciones string          `json:"observaciones" binding:"omitempty,max=2000"`
}

// UpdateAlertaRequest edits a case: risk factors, notes, tracking state and
// the state-specific fields. Closing a case keeps it; deletion is a
// separate, explicit operation.
type UpdateAlertaRequest struct {
	CheckedItems           map[string]bool `json:"checked_items"`
	Observaciones          *string         `json:"observaciones"           binding:"omitempty,max=2000"`
	EstadoAlerta           *string         `json:"estado_alerta"           binding:"omitempty,oneof=Activada 'En proceso' Referida Cerrada"`
	InstitucionReferida    *string         `json:"institucion_referida"    binding:"omitempty,max=200"`
	JustificacionEliminada *string         `json:"justificacion_eliminada" binding:"omitempty,max=1000"`
}

// AtencionActionRequest appends or replaces one follow-up action.
type AtencionActionRequest struct {
	Action       string `json:"action"       binding:"required,min=3,max=500"`
	StartDate    string `json:"start_date"   binding:"omitempty"`
	EndDate      string `json:"end_date"     binding:"omitempty"`
	Responsible  string `json:"responsible"  binding:"omitempty,max=100"`
	Observations string `json:"observations" binding:"omitempty,max=1000"`
}

// ContactLogRequest appends or replaces one family-contact entry.
type ContactLogRequest struct {
	Date            string `json:"date"             binding:"required"`
	ContactMethod   string `json:"contact_method"   binding:"omitempty,max=100"`
	PersonContacted string `json:"person_contacted" binding:"omitempty,max=100"`
	Comments        string `json:"comments"         binding:"omitempty,max=1000"`
}

// AlertaResponse is the API view of a case plus its student's name.
type AlertaResponse struct {
	model.AlertaTemprana
	NombreEstudiante string `json:"nombre_estudiante"`
}
