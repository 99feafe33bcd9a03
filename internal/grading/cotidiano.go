package grading

import "github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"

// nivelValores maps rubric levels to their score fraction. No Observado has
// no entry: it counts in neither the numerator nor the denominator.
var nivelValores = map[model.NivelRubrica]float64{
	model.NivelAvanzado:  1.00,
	model.NivelLogrado:   0.85,
	model.NivelEnProceso: 0.70,
	model.NivelIniciado:  0.50,
}

// nivelCiclo is the click order of an indicator cell. No Observado is the
// empty string and means "delete the record".
var nivelCiclo = []model.NivelRubrica{
	model.NivelNoObservado,
	model.NivelAvanzado,
	model.NivelLogrado,
	model.NivelEnProceso,
	model.NivelIniciado,
}

// CycleNivel returns the level that follows n in the click cycle
// N/O -> 4 -> 3 -> 2 -> 1 -> N/O. An unknown level restarts at Avanzado.
func CycleNivel(n model.NivelRubrica) model.NivelRubrica {
	for i, cur := range nivelCiclo {
		if cur == n {
			return nivelCiclo[(i+1)%len(nivelCiclo)]
		}
	}
	return model.NivelAvanzado
}

// ValorNivel returns the score fraction of a level, or ok false for
// No Observado and unknown levels.
func ValorNivel(n model.NivelRubrica) (float64, bool) {
	v, ok := nivelValores[n]
	return v, ok
}

// CalcularCotidiano scores the rubric category for one student. Nota is the
// average fraction over observed indicators on a 0-100 scale; No Observado
// indicators are skipped entirely, so a single Iniciado among ten unobserved
// still scores 50. Evaluado reports whether any indicator was observed.
func CalcularCotidiano(
	config *model.ConfiguracionCategoria,
	evaluaciones []model.EvaluacionCotidiano,
	calificaciones []model.CalificacionIndicador,
	estudianteID, periodo, subject string,
) Resultado {
	if config == nil {
		return Resultado{}
	}
	res := Resultado{Configurado: true}

	var seleccion *model.EvaluacionCotidiano
	for i := range evaluaciones {
		if evaluaciones[i].PeriodoNombre == periodo && evaluaciones[i].Subject == subject {
			seleccion = &evaluaciones[i]
			break
		}
	}
	if seleccion == nil || len(seleccion.IndicadorIDs) == 0 {
		return res
	}

	seleccionados := make(map[string]bool, len(seleccion.IndicadorIDs))
	for _, id := range seleccion.IndicadorIDs {
		seleccionados[id] = true
	}

	var suma float64
	var observados int
	for _, c := range calificaciones {
		if c.EstudianteID != estudianteID || c.PeriodoNombre != periodo || c.Subject != subject {
			continue
		}
		if !seleccionados[c.IndicadorID] {
			continue
		}
		if v, ok := nivelValores[c.Nivel]; ok {
			suma += v
			observados++
		}
	}
	if observados == 0 {
		return res
	}

	res.Evaluado = true
	res.Nota = suma / float64(observados) * 100
	res.Porcentaje = suma / float64(observados) * config.PorcentajeGeneral
	return res
}
