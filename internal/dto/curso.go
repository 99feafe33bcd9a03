package dto

// ── curso lectivo DTOs ──

// PeriodoPayload is one academic period inside a course request.
type PeriodoPayload struct {
	Nombre      string `json:"nombre"       binding:"required,min=1,max=50"`
	FechaInicio string `json:"fecha_inicio" binding:"required"` // "2026-02-09"
	FechaFin    string `json:"fecha_fin"    binding:"required"` // "2026-07-03"
}

// CreateCursoRequest creates a school year. Exactly two periods are
// required before grading features unlock; they may be configured later
// through UpdateCursoRequest.
type CreateCursoRequest struct {
	Year        int              `json:"year"         binding:"required,min=2000,max=2100"`
	TeacherName string           `json:"teacher_name" binding:"required,min=2,max=100"`
	Periods     []PeriodoPayload `json:"periods"      binding:"omitempty,len=2,dive"`
	Subjects    []string         `json:"subjects"     binding:"omitempty,dive,min=1,max=60"`
	Groups      []string         `json:"groups"       binding:"omitempty,dive,min=1,max=60"`
}

// UpdateCursoRequest updates a school year in place.
type UpdateCursoRequest struct {
	Year        *int             `json:"year"         binding:"omitempty,min=2000,max=2100"`
	TeacherName *string          `json:"teacher_name" binding:"omitempty,min=2,max=100"`
	Periods     []PeriodoPayload `json:"periods"      binding:"omitempty,len=2,dive"`
	Subjects    []string         `json:"subjects"     binding:"omitempty,dive,min=1,max=60"`
	Groups      []string         `json:"groups"       binding:"omitempty,dive,min=1,max=60"`
}

// CursoResponse is the API view of a school year.
type CursoResponse struct {
	ID          string           `json:"id"`
	Year        int              `json:"year"`
	TeacherName string           `json:"teacher_name"`
	Periods     []PeriodoPayload `json:"periods"`
	Subjects    []string         `json:"subjects"`
	Groups      []string         `json:"groups"`
	Activo      bool             `json:"activo"`
}
