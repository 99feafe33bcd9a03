package grading

// CalcularPeriodo computes the four category results, the attendance
// summary and the combined total for one student in one (periodo, subject).
func CalcularPeriodo(d *DatosCurso, estudianteID, periodo, subject string) ResultadoPeriodo {
	var rp ResultadoPeriodo

	rp.Tareas = CalcularPonderado(
		buscarConfig(d.ConfiguracionesTareas, periodo, subject), false,
		itemsDe(d.Tareas, periodo, subject), d.CalificacionesTareas, estudianteID)
	rp.Cotidiano = CalcularCotidiano(
		buscarConfig(d.ConfiguracionesCotidiano, periodo, subject),
		d.EvaluacionesCotidiano, d.CalificacionesIndicadores, estudianteID, periodo, subject)
	rp.Proyectos = CalcularPonderado(
		buscarConfig(d.ConfiguracionesProyectos, periodo, subject), true,
		itemsDe(d.Proyectos, periodo, subject), d.CalificacionesProyectos, estudianteID)
	rp.Pruebas = CalcularPonderado(
		buscarConfig(d.ConfiguracionesPruebas, periodo, subject), true,
		itemsDe(d.Pruebas, periodo, subject), d.CalificacionesPruebas, estudianteID)

	rp.Asistencia = SumarizarAsistencia(d.AsistenciaRecords, estudianteID, periodo, subject)
	rp.TotalPorcentaje = rp.Tareas.Porcentaje + rp.Cotidiano.Porcentaje +
		rp.Proyectos.Porcentaje + rp.Pruebas.Porcentaje
	return rp
}

// promediar averages two period results of the same category. Flags combine
// with OR so a category evaluated in either period reads as evaluated for
// the year.
func promediar(a, b Resultado) Resultado {
	return Resultado{
		Porcentaje:  (a.Porcentaje + b.Porcentaje) / 2,
		Nota:        (a.Nota + b.Nota) / 2,
		Configurado: a.Configurado || b.Configurado,
		Evaluado:    a.Evaluado || b.Evaluado,
	}
}

// componerAnual folds one category across the two periods: both configured
// averages them, exactly one configured passes that period's result through
// unmodified, neither leaves the category empty.
func componerAnual(a, b Resultado) Resultado {
	switch {
	case a.Configurado && b.Configurado:
		return promediar(a, b)
	case a.Configurado:
		return a
	case b.Configurado:
		return b
	default:
		return Resultado{}
	}
}

func configurado(r ResultadoPeriodo) bool {
	return r.Tareas.Configurado || r.Cotidiano.Configurado ||
		r.Proyectos.Configurado || r.Pruebas.Configurado
}

// CalcularAnual composes the annual view of a subject from its two period
// results: per-category averaging with single-period fallback, summed
// attendance, and a total that follows the same fallback rule.
func CalcularAnual(d *DatosCurso, periodos [2]string, estudianteID, subject string) ResultadoPeriodo {
	p1 := CalcularPeriodo(d, estudianteID, periodos[0], subject)
	p2 := CalcularPeriodo(d, estudianteID, periodos[1], subject)

	anual := ResultadoPeriodo{
		Tareas:     componerAnual(p1.Tareas, p2.Tareas),
		Cotidiano:  componerAnual(p1.Cotidiano, p2.Cotidiano),
		Proyectos:  componerAnual(p1.Proyectos, p2.Proyectos),
		Pruebas:    componerAnual(p1.Pruebas, p2.Pruebas),
		Asistencia: p1.Asistencia.Sumar(p2.Asistencia),
	}

	switch {
	case configurado(p1) && configurado(p2):
		anual.TotalPorcentaje = (p1.TotalPorcentaje + p2.TotalPorcentaje) / 2
	case configurado(p1):
		anual.TotalPorcentaje = p1.TotalPorcentaje
	case configurado(p2):
		anual.TotalPorcentaje = p2.TotalPorcentaje
	}
	return anual
}
