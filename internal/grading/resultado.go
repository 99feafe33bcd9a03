// Package grading is the pure grade-aggregation engine: per-category
// calculators, per-period composition and annual averaging. Functions here
// take entity slices and return values; they hold no state and do no I/O.
package grading

import "github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"

// Resultado is the outcome of one category for one student in one
// (periodo, subject). Porcentaje is the share of the final percentage
// actually earned; Nota is the same on a 0-100 scale relative to the
// weight evaluated so far.
//
// Configurado and Evaluado carry the "not evaluated" distinction
// explicitly: a Resultado with Nota 0 and Evaluado false means no grading
// happened, which displays differently from a genuine zero score.
type Resultado struct {
	Porcentaje  float64 `json:"porcentaje"`
	Nota        float64 `json:"nota"`
	Configurado bool    `json:"configurado"`
	Evaluado    bool    `json:"evaluado"`
}

// ResultadoPeriodo bundles the four category results, the attendance
// summary and the combined total for one (student, periodo, subject).
type ResultadoPeriodo struct {
	Tareas          Resultado         `json:"tareas"`
	Cotidiano       Resultado         `json:"cotidiano"`
	Proyectos       Resultado         `json:"proyectos"`
	Pruebas         Resultado         `json:"pruebas"`
	Asistencia      ResumenAsistencia `json:"asistencia"`
	TotalPorcentaje float64           `json:"total_porcentaje"`
}

// DatosCurso is the read-only input slice set for the engine, already
// scoped to the active course by the caller.
type DatosCurso struct {
	ConfiguracionesTareas     []model.ConfiguracionCategoria
	Tareas                    []model.ItemEvaluable
	CalificacionesTareas      []model.CalificacionItem
	ConfiguracionesCotidiano  []model.ConfiguracionCategoria
	EvaluacionesCotidiano     []model.EvaluacionCotidiano
	CalificacionesIndicadores []model.CalificacionIndicador
	ConfiguracionesProyectos  []model.ConfiguracionCategoria
	Proyectos                 []model.ItemEvaluable
	CalificacionesProyectos   []model.CalificacionItem
	ConfiguracionesPruebas    []model.ConfiguracionCategoria
	Pruebas                   []model.ItemEvaluable
	CalificacionesPruebas     []model.CalificacionItem
	AsistenciaRecords         []model.AsistenciaRecord
}

func buscarConfig(configs []model.ConfiguracionCategoria, periodo, subject string) *model.ConfiguracionCategoria {
	for i := range configs {
		if configs[i].PeriodoNombre == periodo && configs[i].Subject == subject {
			return &configs[i]
		}
	}
	return nil
}

func itemsDe(items []model.ItemEvaluable, periodo, subject string) []model.ItemEvaluable {
	var out []model.ItemEvaluable
	for _, it := range items {
		if it.PeriodoNombre == periodo && it.Subject == subject {
			out = append(out, it)
		}
	}
	return out
}
