package model

// EstadoAlerta is the tracking state of an early-warning case. The four
// states are data, not a workflow: any state may be selected at any time.
const (
	AlertaActivada  = "Activada"
	AlertaEnProceso = "En proceso"
	AlertaReferida  = "Referida"
	AlertaCerrada   = "Cerrada"
)

// AtencionAction is one follow-up action inside an early-warning case.
type AtencionAction struct {
	ID           int    `json:"id"`
	Action       string `json:"action"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Responsible  string `json:"responsible"`
	Observations string `json:"observations"`
}

// ContactLog is one family-contact entry inside an early-warning case.
type ContactLog struct {
	ID              int    `json:"id"`
	Date            string `json:"date"`
	ContactMethod   string `json:"contact_method"`
	PersonContacted string `json:"person_contacted"`
	Comments        string `json:"comments"`
}

// AlertaTemprana is an at-risk-student case: the checked risk factors, free
// notes, a tracking state and its state-specific fields, plus the follow-up
// action plan and contact log. Closing a case never deletes it.
type AlertaTemprana struct {
	ID             string          `json:"id"`
	EstudianteID   string          `json:"estudiante_id"`
	CursoLectivoID string          `json:"curso_lectivo_id"`
	FechaCreacion  string          `json:"fecha_creacion"`
	CheckedItems   map[string]bool `json:"checked_items"`
	Observaciones  string          `json:"observaciones"`
	EstadoAlerta   string          `json:"estado_alerta"`
	// Set while EstadoAlerta is Referida.
	InstitucionReferida string `json:"institucion_referida,omitempty"`
	// Set while EstadoAlerta is Cerrada.
	JustificacionEliminada string           `json:"justificacion_eliminada,omitempty"`
	AtencionActions        []AtencionAction `json:"atencion_actions"`
	ContactLogs            []ContactLog     `json:"contact_logs"`
}
