package model

// Categoria names one of the four parallel grading families.
type Categoria string

const (
	CategoriaTareas    Categoria = "tareas"
	CategoriaCotidiano Categoria = "cotidiano"
	CategoriaProyectos Categoria = "proyectos"
	CategoriaPruebas   Categoria = "pruebas"
)

// ConfiguracionCategoria assigns a grading category its share of the final
// percentage for one (curso, periodo, subject). Tareas and cotidiano are
// active whenever configured; proyectos and pruebas additionally require
// Habilitada.
type ConfiguracionCategoria struct {
	ID                string  `json:"id"`
	CursoLectivoID    string  `json:"curso_lectivo_id"`
	PeriodoNombre     string  `json:"periodo_nombre"`
	Subject           string  `json:"subject"`
	PorcentajeGeneral float64 `json:"porcentaje_general"`
	Habilitada        bool    `json:"habilitada,omitempty"`
}

// ItemEvaluable is one gradable item of a weighted category: a tarea,
// proyecto or prueba (the three are structurally identical; the collection
// an item lives in determines its family). Porcentaje is the item's share of
// the category's PorcentajeGeneral.
type ItemEvaluable struct {
	ID             string  `json:"id"`
	CursoLectivoID string  `json:"curso_lectivo_id"`
	PeriodoNombre  string  `json:"periodo_nombre"`
	Subject        string  `json:"subject"`
	Nombre         string  `json:"nombre"`
	Porcentaje     float64 `json:"porcentaje"`
	PuntosTotales  float64 `json:"puntos_totales"`
}

// CalificacionItem is one student's grade on one item. A nil PuntosObtenidos
// means "sin calificar" (ungraded), which is not the same as zero points.
// NoEntregado forces the contribution to zero regardless of points.
type CalificacionItem struct {
	ID              string   `json:"id"`
	ItemID          string   `json:"item_id"`
	EstudianteID    string   `json:"estudiante_id"`
	PuntosObtenidos *float64 `json:"puntos_obtenidos"`
	NoEntregado     bool     `json:"no_entregado,omitempty"`
}

// ConfigCategoriaID builds the composite key of a category configuration.
func ConfigCategoriaID(cursoID, periodo, subject string) string {
	return cursoID + "-" + periodo + "-" + subject
}

// CalificacionItemID builds the composite key of an item grade.
func CalificacionItemID(itemID, estudianteID string) string {
	return itemID + "-" + estudianteID
}
