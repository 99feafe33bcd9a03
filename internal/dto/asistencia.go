package dto

import "github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"

// ── asistencia DTOs ──

// CiclarAsistenciaRequest advances one grid cell to its next status.
type CiclarAsistenciaRequest struct {
	EstudianteID  string `json:"estudiante_id"  binding:"required"`
	PeriodoNombre string `json:"periodo_nombre" binding:"required"`
	Subject       string `json:"subject"        binding:"required"`
	Date          string `json:"date"           binding:"required"` // "2026-03-02"
}

// SetAsistenciaRequest writes one grid cell directly. An empty status marks
// the student present and removes the record.
type SetAsistenciaRequest struct {
	EstudianteID  string `json:"estudiante_id"  binding:"required"`
	PeriodoNombre string `json:"periodo_nombre" binding:"required"`
	Subject       string `json:"subject"        binding:"required"`
	Date          string `json:"date"           binding:"required"`
	Status        string `json:"status"         binding:"omitempty,oneof=J I TJ TI"`
}

// CeldaAsistencia is one cell of the monthly grid response.
type CeldaAsistencia struct {
	Date   string                 `json:"date"`
	Status model.AsistenciaStatus `json:"status"`
}

// FilaAsistencia is one student's row of the monthly grid.
type FilaAsistencia struct {
	EstudianteID string            `json:"estudiante_id"`
	Nombre       string            `json:"nombre"`
	Celdas       []CeldaAsistencia `json:"celdas"`
}

// GridAsistenciaResponse is the monthly attendance grid for one subject:
// one column per school day, one row per active student.
type GridAsistenciaResponse struct {
	Year    int              `json:"year"`
	Month   int              `json:"month"`
	Subject string           `json:"subject"`
	Dias    []string         `json:"dias"`
	Filas   []FilaAsistencia `json:"filas"`
}
