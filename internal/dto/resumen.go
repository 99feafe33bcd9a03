package dto

import "github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/grading"

// ── resumen DTOs ──

// ResumenEstudianteResponse is one student's computed results for a
// (periodo, subject), or the annual composition when the period is Anual.
type ResumenEstudianteResponse struct {
	EstudianteID     string                   `json:"estudiante_id"`
	NombreEstudiante string                   `json:"nombre_estudiante"`
	PeriodoNombre    string                   `json:"periodo_nombre"`
	Subject          string                   `json:"subject"`
	Resultados       grading.ResultadoPeriodo `json:"resultados"`
}

// ResumenGrupoResponse is the whole active roster's results for one view.
type ResumenGrupoResponse struct {
	PeriodoNombre string                      `json:"periodo_nombre"`
	Subject       string                      `json:"subject"`
	Estudiantes   []ResumenEstudianteResponse `json:"estudiantes"`
}
