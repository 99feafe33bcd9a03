package dto

// ── cotidiano DTOs ──

// IndicadorRequest adds or edits one rubric indicator in the bank of a
// (curso, subject).
type IndicadorRequest struct {
	Subject     string `json:"subject"     binding:"required"`
	Descripcion string `json:"descripcion" binding:"required,min=3,max=300"`
}

// ImportIndicadoresRequest adds many indicators at once. Descriptions
// already present in the bank are skipped, not duplicated.
type ImportIndicadoresRequest struct {
	Subject       string   `json:"subject"       binding:"required"`
	Descripciones []string `json:"descripciones" binding:"required,min=1,dive,min=3,max=300"`
}

// ImportIndicadoresResponse reports how an import went.
type ImportIndicadoresResponse struct {
	Importados int `json:"importados"`
	Duplicados int `json:"duplicados"`
}

// SeleccionCotidianoRequest picks which bank indicators are graded in one
// (periodo, subject).
type SeleccionCotidianoRequest struct {
	PeriodoNombre string   `json:"periodo_nombre" binding:"required"`
	Subject       string   `json:"subject"        binding:"required"`
	IndicadorIDs  []string `json:"indicador_ids"  binding:"required"`
}

// CiclarNivelRequest advances one student's level on one indicator through
// the rubric cycle.
type CiclarNivelRequest struct {
	EstudianteID  string `json:"estudiante_id"  binding:"required"`
	IndicadorID   string `json:"indicador_id"   binding:"required"`
	PeriodoNombre string `json:"periodo_nombre" binding:"required"`
	Subject       string `json:"subject"        binding:"required"`
}
