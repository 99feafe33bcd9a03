package dto

// ── estudiante DTOs ──

// CreateEstudianteRequest adds a student to the active course's roster.
type CreateEstudianteRequest struct {
	Nombre          string `json:"nombre"           binding:"required,min=1,max=100"`
	PrimerApellido  string `json:"primer_apellido"  binding:"required,min=1,max=100"`
	SegundoApellido string `json:"segundo_apellido" binding:"omitempty,max=100"`
	Cedula          string `json:"cedula"           binding:"omitempty,max=30"`
	NombreEncargado string `json:"nombre_encargado" binding:"omitempty,max=100"`
	Direccion       string `json:"direccion"        binding:"omitempty,max=300"`
	Telefono        string `json:"telefono"         binding:"omitempty,max=30"`
	FechaIngreso    string `json:"fecha_ingreso"    binding:"required"` // "2026-02-09"
}

// UpdateEstudianteRequest edits the identity and contact fields. Lifecycle
// state changes go through CambiarEstadoRequest instead.
type UpdateEstudianteRequest struct {
	Nombre          *string `json:"nombre"           binding:"omitempty,min=1,max=100"`
	PrimerApellido  *string `json:"primer_apellido"  binding:"omitempty,min=1,max=100"`
	SegundoApellido *string `json:"segundo_apellido" binding:"omitempty,max=100"`
	Cedula          *string `json:"cedula"           binding:"omitempty,max=30"`
	NombreEncargado *string `json:"nombre_encargado" binding:"omitempty,max=100"`
	Direccion       *string `json:"direccion"        binding:"omitempty,max=300"`
	Telefono        *string `json:"telefono"         binding:"omitempty,max=30"`
	FechaIngreso    *string `json:"fecha_ingreso"`
}

// CambiarEstadoRequest moves a student between lifecycle states. Fecha and
// the optional fields belong to the target state's branch; the other
// branch's metadata is cleared on transition.
type CambiarEstadoRequest struct {
	Estado        string `json:"estado"        binding:"required,oneof=Activo Trasladado Desertor"`
	Fecha         string `json:"fecha"         binding:"omitempty"` // required for Trasladado and Desertor
	Escuela       string `json:"escuela"       binding:"omitempty,max=200"`
	Observaciones string `json:"observaciones" binding:"omitempty,max=1000"`
}
