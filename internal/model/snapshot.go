package model

// Snapshot is the full persisted application state of one user: every entity
// collection plus the active-course pointer. It is loaded once per session
// and written back whole. Collections are replaced, never merged element by
// element.
type Snapshot struct {
	Cursos        []CursoLectivo `json:"cursos"`
	ActiveCursoID string         `json:"active_curso_id,omitempty"`

	Estudiantes       []Estudiante       `json:"estudiantes"`
	AsistenciaRecords []AsistenciaRecord `json:"asistencia_records"`

	ConfiguracionesTareas     []ConfiguracionCategoria `json:"configuraciones_tareas"`
	Tareas                    []ItemEvaluable          `json:"tareas"`
	CalificacionesTareas      []CalificacionItem       `json:"calificaciones_tareas"`
	ConfiguracionesCotidiano  []ConfiguracionCategoria `json:"configuraciones_cotidiano"`
	Indicadores               []Indicador              `json:"indicadores"`
	EvaluacionesCotidiano     []EvaluacionCotidiano    `json:"evaluaciones_cotidiano"`
	CalificacionesIndicadores []CalificacionIndicador  `json:"calificaciones_indicadores"`
	ConfiguracionesProyectos  []ConfiguracionCategoria `json:"configuraciones_proyectos"`
	Proyectos                 []ItemEvaluable          `json:"proyectos"`
	CalificacionesProyectos   []CalificacionItem       `json:"calificaciones_proyectos"`
	ConfiguracionesPruebas    []ConfiguracionCategoria `json:"configuraciones_pruebas"`
	Pruebas                   []ItemEvaluable          `json:"pruebas"`
	CalificacionesPruebas     []CalificacionItem       `json:"calificaciones_pruebas"`

	AlertasTempranas []AlertaTemprana `json:"alertas_tempranas"`
}
