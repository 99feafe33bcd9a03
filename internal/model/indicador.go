package model

// Indicador is a reusable rubric criterion in the cotidiano bank,
// scoped to (curso, subject). Descriptions are unique within that scope.
type Indicador struct {
	ID             string `json:"id"`
	CursoLectivoID string `json:"curso_lectivo_id"`
	Subject        string `json:"subject"`
	Descripcion    string `json:"descripcion"`
}

// EvaluacionCotidiano selects which bank indicators are graded for one
// (curso, periodo, subject).
type EvaluacionCotidiano struct {
	ID             string   `json:"id"`
	CursoLectivoID string   `json:"curso_lectivo_id"`
	PeriodoNombre  string   `json:"periodo_nombre"`
	Subject        string   `json:"subject"`
	IndicadorIDs   []string `json:"indicador_ids"`
}

// NivelRubrica is a rubric achievement level. The empty string is
// "No Observado", represented by record absence.
type NivelRubrica string

const (
	NivelNoObservado NivelRubrica = ""
	NivelAvanzado    NivelRubrica = "4"
	NivelLogrado     NivelRubrica = "3"
	NivelEnProceso   NivelRubrica = "2"
	NivelIniciado    NivelRubrica = "1"
)

// CalificacionIndicador is one student's level on one selected indicator
// within a period and subject.
type CalificacionIndicador struct {
	ID             string       `json:"id"`
	EstudianteID   string       `json:"estudiante_id"`
	IndicadorID    string       `json:"indicador_id"`
	CursoLectivoID string       `json:"curso_lectivo_id"`
	PeriodoNombre  string       `json:"periodo_nombre"`
	Subject        string       `json:"subject"`
	Nivel          NivelRubrica `json:"nivel"`
}

// CalificacionIndicadorID builds the composite key of an indicator grade.
func CalificacionIndicadorID(estudianteID, indicadorID, periodo, subject string) string {
	return estudianteID + "-" + indicadorID + "-" + periodo + "-" + subject
}
