package model

// Periodo is one of the two academic sub-terms of a school year.
// Dates use the YYYY-MM-DD form throughout the model.
type Periodo struct {
	Nombre      string `json:"nombre"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
}

// CursoLectivo is a school year as taught by one teacher: its two periods,
// the subjects taught and the student groups. Exactly one course is active
// at a time within a user's snapshot.
type CursoLectivo struct {
	ID          string    `json:"id"`
	Year        int       `json:"year"`
	TeacherName string    `json:"teacher_name"`
	Periods     []Periodo `json:"periods"`
	Subjects    []string  `json:"subjects"`
	Groups      []string  `json:"groups"`
}

// PeriodosConfigurados reports whether both periods have been set up.
// Grading and attendance features require this.
func (c *CursoLectivo) PeriodosConfigurados() bool {
	return len(c.Periods) == 2
}
