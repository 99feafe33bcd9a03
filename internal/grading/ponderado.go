package grading

import "github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"

// CalcularPonderado scores a weighted-item category (tareas, proyectos or
// pruebas) for one student. Each item contributes
// (puntos / puntosTotales) * item.Porcentaje percentage points; NoEntregado
// forces an item's contribution to zero while still counting its weight.
// Ungraded items (no record, or nil points without NoEntregado) contribute
// nothing and their weight is left out of the Nota denominator, so Nota
// reflects only what has been graded so far.
//
// requiereHabilitada gates proyectos and pruebas: a configuration with
// Habilitada false behaves as if the category did not exist.
func CalcularPonderado(
	config *model.ConfiguracionCategoria,
	requiereHabilitada bool,
	items []model.ItemEvaluable,
	calificaciones []model.CalificacionItem,
	estudianteID string,
) Resultado {
	if config == nil || (requiereHabilitada && !config.Habilitada) {
		return Resultado{}
	}
	res := Resultado{Configurado: true}
	if len(items) == 0 {
		return res
	}
	res.Evaluado = true

	porItem := make(map[string]model.CalificacionItem, len(calificaciones))
	for _, c := range calificaciones {
		if c.EstudianteID == estudianteID {
			porItem[c.ItemID] = c
		}
	}

	var ganado, pesoContado float64
	for _, it := range items {
		c, ok := porItem[it.ID]
		if !ok {
			continue
		}
		switch {
		case c.NoEntregado:
			pesoContado += it.Porcentaje
		case c.PuntosObtenidos != nil:
			pesoContado += it.Porcentaje
			if it.PuntosTotales > 0 {
				ganado += *c.PuntosObtenidos / it.PuntosTotales * it.Porcentaje
			}
		}
	}

	res.Porcentaje = ganado
	den := pesoContado
	if den == 0 {
		den = 1
	}
	res.Nota = ganado / den * 100
	return res
}

// PesoAsignado sums the weights already claimed by a category's items,
// optionally skipping one item id (the item being edited).
func PesoAsignado(items []model.ItemEvaluable, excluirID string) float64 {
	var total float64
	for _, it := range items {
		if it.ID != excluirID {
			total += it.Porcentaje
		}
	}
	return total
}

// CabeEnCategoria reports whether an item of weight peso fits inside the
// category's PorcentajeGeneral alongside the other items.
func CabeEnCategoria(config *model.ConfiguracionCategoria, items []model.ItemEvaluable, excluirID string, peso float64) bool {
	if config == nil {
		return false
	}
	return PesoAsignado(items, excluirID)+peso <= config.PorcentajeGeneral
}
