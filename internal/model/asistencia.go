package model

// AsistenciaStatus is a stored non-present attendance status. The empty
// string is "Presente": presence is represented by the absence of a record,
// never stored.
type AsistenciaStatus string

const (
	AsistenciaPresente            AsistenciaStatus = ""
	AsistenciaJustificada         AsistenciaStatus = "J"
	AsistenciaInjustificada       AsistenciaStatus = "I"
	AsistenciaTardiaJustificada   AsistenciaStatus = "TJ"
	AsistenciaTardiaInjustificada AsistenciaStatus = "TI"
)

// AsistenciaRecord marks one student absent or late on one date for one
// subject. Its id is the composite key estudianteID-date-subject, so a second
// write to the same cell replaces the first.
type AsistenciaRecord struct {
	ID             string           `json:"id"`
	EstudianteID   string           `json:"estudiante_id"`
	CursoLectivoID string           `json:"curso_lectivo_id"`
	PeriodoNombre  string           `json:"periodo_nombre"`
	Subject        string           `json:"subject"`
	Date           string           `json:"date"`
	Status         AsistenciaStatus `json:"status"`
}

// AsistenciaID builds the composite record key for one attendance cell.
func AsistenciaID(estudianteID, date, subject string) string {
	return estudianteID + "-" + date + "-" + subject
}
