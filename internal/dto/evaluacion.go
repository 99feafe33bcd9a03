package dto

// ── weighted-category DTOs (tareas, proyectos, pruebas) ──

// ConfigCategoriaRequest sets a category's share of the final grade for one
// (periodo, subject). Habilitada only matters for proyectos and pruebas.
type ConfigCategoriaRequest struct {
	PeriodoNombre     string  `json:"periodo_nombre"     binding:"required"`
	Subject           string  `json:"subject"            binding:"required"`
	PorcentajeGeneral float64 `json:"porcentaje_general" binding:"min=0,max=100"`
	Habilitada        bool    `json:"habilitada"`
}

// ItemRequest creates or updates a gradable item inside a category.
type ItemRequest struct {
	PeriodoNombre string  `json:"periodo_nombre" binding:"required"`
	Subject       string  `json:"subject"        binding:"required"`
	Nombre        string  `json:"nombre"         binding:"required,min=1,max=150"`
	Porcentaje    float64 `json:"porcentaje"     binding:"required,gt=0,max=100"`
	PuntosTotales float64 `json:"puntos_totales" binding:"required,gt=0"`
}

// CalificarItemRequest grades one student on one item. Puntos nil leaves
// the item ungraded; NoEntregado true forces zero regardless of points.
type CalificarItemRequest struct {
	EstudianteID string   `json:"estudiante_id" binding:"required"`
	Puntos       *float64 `json:"puntos"`
	NoEntregado  bool     `json:"no_entregado"`
}
