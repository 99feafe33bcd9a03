package model

// EstadoEstudiante is the lifecycle state of a student in the roster.
type EstadoEstudiante string

const (
	EstadoActivo     EstadoEstudiante = "Activo"
	EstadoTrasladado EstadoEstudiante = "Trasladado"
	EstadoDesertor   EstadoEstudiante = "Desertor"
)

// Estudiante is a student owned by a course. Transfer and dropout metadata
// are mutually exclusive: entering one lifecycle state clears the fields of
// the other branch (enforced at write time by the service layer).
type Estudiante struct {
	ID              string           `json:"id"`
	CursoLectivoID  string           `json:"curso_lectivo_id"`
	Nombre          string           `json:"nombre"`
	PrimerApellido  string           `json:"primer_apellido"`
	SegundoApellido string           `json:"segundo_apellido"`
	Cedula          string           `json:"cedula"`
	NombreEncargado string           `json:"nombre_encargado"`
	Direccion       string           `json:"direccion"`
	Telefono        string           `json:"telefono"`
	FechaIngreso    string           `json:"fecha_ingreso"`
	Estado          EstadoEstudiante `json:"estado"`

	FechaTraslado         string `json:"fecha_traslado,omitempty"`
	EscuelaTraslado       string `json:"escuela_traslado,omitempty"`
	ObservacionesTraslado string `json:"observaciones_traslado,omitempty"`

	FechaDesercion         string `json:"fecha_desercion,omitempty"`
	ObservacionesDesercion string `json:"observaciones_desercion,omitempty"`
}

// NombreCompleto joins the student's name parts.
func (e *Estudiante) NombreCompleto() string {
	s := e.Nombre
	if e.PrimerApellido != "" {
		s += " " + e.PrimerApellido
	}
	if e.SegundoApellido != "" {
		s += " " + e.SegundoApellido
	}
	return s
}
