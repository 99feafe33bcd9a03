// Package store holds the pure in-memory operations over one user's
// snapshot: insert-or-replace writes keyed by id, cascade deletes, and the
// scoped queries the services read through. It does no locking and no I/O;
// the session manager owns both.
package store

import (
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/grading"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
)

// Store wraps a snapshot with typed mutators and queries. All writes go
// through it so cascade rules live in one place.
type Store struct {
	s *model.Snapshot
}

// New wraps an existing snapshot. A nil snapshot gets an empty one.
func New(s *model.Snapshot) *Store {
	if s == nil {
		s = &model.Snapshot{}
	}
	return &Store{s: s}
}

// Snapshot exposes the underlying state for persistence.
func (st *Store) Snapshot() *model.Snapshot { return st.s }

func upsert[T any](list []T, id func(T) string, item T) []T {
	key := id(item)
	for i := range list {
		if id(list[i]) == key {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

func removeIf[T any](list []T, drop func(T) bool) []T {
	out := list[:0]
	for _, it := range list {
		if !drop(it) {
			out = append(out, it)
		}
	}
	return out
}

// ── cursos ──

func (st *Store) UpsertCurso(c model.CursoLectivo) {
	st.s.Cursos = upsert(st.s.Cursos, func(x model.CursoLectivo) string { return x.ID }, c)
}

// DeleteCurso removes a course and everything owned by it: students with
// their grades and attendance, category configurations, items, the
// indicator bank and early-warning cases.
func (st *Store) DeleteCurso(id string) {
	st.s.Cursos = removeIf(st.s.Cursos, func(c model.CursoLectivo) bool { return c.ID == id })
	if st.s.ActiveCursoID == id {
		st.s.ActiveCursoID = ""
	}

	for _, e := range st.s.Estudiantes {
		if e.CursoLectivoID == id {
			st.borrarRastroEstudiante(e.ID)
		}
	}
	st.s.Estudiantes = removeIf(st.s.Estudiantes, func(e model.Estudiante) bool { return e.CursoLectivoID == id })

	delCurso := func(cursoID string) bool { return cursoID == id }
	st.s.AsistenciaRecords = removeIf(st.s.AsistenciaRecords, func(r model.AsistenciaRecord) bool { return delCurso(r.CursoLectivoID) })
	st.s.ConfiguracionesTareas = removeIf(st.s.ConfiguracionesTareas, func(c model.ConfiguracionCategoria) bool { return delCurso(c.CursoLectivoID) })
	st.s.Tareas = removeIf(st.s.Tareas, func(i model.ItemEvaluable) bool { return delCurso(i.CursoLectivoID) })
	st.s.ConfiguracionesCotidiano = removeIf(st.s.ConfiguracionesCotidiano, func(c model.ConfiguracionCategoria) bool { return delCurso(c.CursoLectivoID) })
	st.s.Indicadores = removeIf(st.s.Indicadores, func(i model.Indicador) bool { return delCurso(i.CursoLectivoID) })
	st.s.EvaluacionesCotidiano = removeIf(st.s.EvaluacionesCotidiano, func(e model.EvaluacionCotidiano) bool { return delCurso(e.CursoLectivoID) })
	st.s.CalificacionesIndicadores = removeIf(st.s.CalificacionesIndicadores, func(c model.CalificacionIndicador) bool { return delCurso(c.CursoLectivoID) })
	st.s.ConfiguracionesProyectos = removeIf(st.s.ConfiguracionesProyectos, func(c model.ConfiguracionCategoria) bool { return delCurso(c.CursoLectivoID) })
	st.s.Proyectos = removeIf(st.s.Proyectos, func(i model.ItemEvaluable) bool { return delCurso(i.CursoLectivoID) })
	st.s.ConfiguracionesPruebas = removeIf(st.s.ConfiguracionesPruebas, func(c model.ConfiguracionCategoria) bool { return delCurso(c.CursoLectivoID) })
	st.s.Pruebas = removeIf(st.s.Pruebas, func(i model.ItemEvaluable) bool { return delCurso(i.CursoLectivoID) })
	st.s.AlertasTempranas = removeIf(st.s.AlertasTempranas, func(a model.AlertaTemprana) bool { return delCurso(a.CursoLectivoID) })
}

func (st *Store) CursoByID(id string) (model.CursoLectivo, bool) {
	for _, c := range st.s.Cursos {
		if c.ID == id {
			return c, true
		}
	}
	return model.CursoLectivo{}, false
}

func (st *Store) Cursos() []model.CursoLectivo { return st.s.Cursos }

// SetActiveCurso points the snapshot at a course. An empty id clears the
// selection.
func (st *Store) SetActiveCurso(id string) bool {
	if id == "" {
		st.s.ActiveCursoID = ""
		return true
	}
	if _, ok := st.CursoByID(id); !ok {
		return false
	}
	st.s.ActiveCursoID = id
	return true
}

// CursoActivo returns the active course, if one is selected and still
// exists.
func (st *Store) CursoActivo() (model.CursoLectivo, bool) {
	if st.s.ActiveCursoID == "" {
		return model.CursoLectivo{}, false
	}
	return st.CursoByID(st.s.ActiveCursoID)
}

// ── estudiantes ──

func (st *Store) UpsertEstudiante(e model.Estudiante) {
	st.s.Estudiantes = upsert(st.s.Estudiantes, func(x model.Estudiante) string { return x.ID }, e)
}

// borrarRastroEstudiante removes everything keyed to one student except the
// roster row itself.
func (st *Store) borrarRastroEstudiante(id string) {
	delEst := func(estID string) bool { return estID == id }
	st.s.AsistenciaRecords = removeIf(st.s.AsistenciaRecords, func(r model.AsistenciaRecord) bool { return delEst(r.EstudianteID) })
	st.s.CalificacionesTareas = removeIf(st.s.CalificacionesTareas, func(c model.CalificacionItem) bool { return delEst(c.EstudianteID) })
	st.s.CalificacionesIndicadores = removeIf(st.s.CalificacionesIndicadores, func(c model.CalificacionIndicador) bool { return delEst(c.EstudianteID) })
	st.s.CalificacionesProyectos = removeIf(st.s.CalificacionesProyectos, func(c model.CalificacionItem) bool { return delEst(c.EstudianteID) })
	st.s.CalificacionesPruebas = removeIf(st.s.CalificacionesPruebas, func(c model.CalificacionItem) bool { return delEst(c.EstudianteID) })
	st.s.AlertasTempranas = removeIf(st.s.AlertasTempranas, func(a model.AlertaTemprana) bool { return delEst(a.EstudianteID) })
}

// DeleteEstudiante removes a student and cascades over attendance, every
// grade family and their early-warning cases.
func (st *Store) DeleteEstudiante(id string) {
	st.s.Estudiantes = removeIf(st.s.Estudiantes, func(e model.Estudiante) bool { return e.ID == id })
	st.borrarRastroEstudiante(id)
}

func (st *Store) EstudianteByID(id string) (model.Estudiante, bool) {
	for _, e := range st.s.Estudiantes {
		if e.ID == id {
			return e, true
		}
	}
	return model.Estudiante{}, false
}

// EstudiantesDelCurso lists a course's roster in insertion order.
func (st *Store) EstudiantesDelCurso(cursoID string) []model.Estudiante {
	var out []model.Estudiante
	for _, e := range st.s.Estudiantes {
		if e.CursoLectivoID == cursoID {
			out = append(out, e)
		}
	}
	return out
}

// EstudiantesActivos lists the course's students still in Activo state.
func (st *Store) EstudiantesActivos(cursoID string) []model.Estudiante {
	var out []model.Estudiante
	for _, e := range st.s.Estudiantes {
		if e.CursoLectivoID == cursoID && e.Estado == model.EstadoActivo {
			out = append(out, e)
		}
	}
	return out
}

// ── asistencia ──

func (st *Store) UpsertAsistencia(r model.AsistenciaRecord) {
	st.s.AsistenciaRecords = upsert(st.s.AsistenciaRecords, func(x model.AsistenciaRecord) string { return x.ID }, r)
}

func (st *Store) DeleteAsistencia(id string) {
	st.s.AsistenciaRecords = removeIf(st.s.AsistenciaRecords, func(r model.AsistenciaRecord) bool { return r.ID == id })
}

func (st *Store) AsistenciaByID(id string) (model.AsistenciaRecord, bool) {
	for _, r := range st.s.AsistenciaRecords {
		if r.ID == id {
			return r, true
		}
	}
	return model.AsistenciaRecord{}, false
}

func (st *Store) AsistenciaDelCurso(cursoID string) []model.AsistenciaRecord {
	var out []model.AsistenciaRecord
	for _, r := range st.s.AsistenciaRecords {
		if r.CursoLectivoID == cursoID {
			out = append(out, r)
		}
	}
	return out
}

// ── weighted categories ──

// configsDe returns a pointer to the configuration slice of a category.
// Cotidiano shares the configuration shape with the weighted families.
func (st *Store) configsDe(cat model.Categoria) *[]model.ConfiguracionCategoria {
	switch cat {
	case model.CategoriaTareas:
		return &st.s.ConfiguracionesTareas
	case model.CategoriaCotidiano:
		return &st.s.ConfiguracionesCotidiano
	case model.CategoriaProyectos:
		return &st.s.ConfiguracionesProyectos
	case model.CategoriaPruebas:
		return &st.s.ConfiguracionesPruebas
	}
	return nil
}

// itemsDe returns a pointer to the item slice of a weighted category, or
// nil for cotidiano.
func (st *Store) itemsDe(cat model.Categoria) *[]model.ItemEvaluable {
	switch cat {
	case model.CategoriaTareas:
		return &st.s.Tareas
	case model.CategoriaProyectos:
		return &st.s.Proyectos
	case model.CategoriaPruebas:
		return &st.s.Pruebas
	}
	return nil
}

func (st *Store) califsDe(cat model.Categoria) *[]model.CalificacionItem {
	switch cat {
	case model.CategoriaTareas:
		return &st.s.CalificacionesTareas
	case model.CategoriaProyectos:
		return &st.s.CalificacionesProyectos
	case model.CategoriaPruebas:
		return &st.s.CalificacionesPruebas
	}
	return nil
}

func (st *Store) UpsertConfiguracion(cat model.Categoria, c model.ConfiguracionCategoria) {
	if p := st.configsDe(cat); p != nil {
		*p = upsert(*p, func(x model.ConfiguracionCategoria) string { return x.ID }, c)
	}
}

func (st *Store) Configuracion(cat model.Categoria, cursoID, periodo, subject string) (model.ConfiguracionCategoria, bool) {
	p := st.configsDe(cat)
	if p == nil {
		return model.ConfiguracionCategoria{}, false
	}
	id := model.ConfigCategoriaID(cursoID, periodo, subject)
	for _, c := range *p {
		if c.ID == id {
			return c, true
		}
	}
	return model.ConfiguracionCategoria{}, false
}

func (st *Store) UpsertItem(cat model.Categoria, it model.ItemEvaluable) {
	if p := st.itemsDe(cat); p != nil {
		*p = upsert(*p, func(x model.ItemEvaluable) string { return x.ID }, it)
	}
}

// DeleteItem removes an item and every grade recorded against it.
func (st *Store) DeleteItem(cat model.Categoria, id string) {
	if p := st.itemsDe(cat); p != nil {
		*p = removeIf(*p, func(i model.ItemEvaluable) bool { return i.ID == id })
	}
	if p := st.califsDe(cat); p != nil {
		*p = removeIf(*p, func(c model.CalificacionItem) bool { return c.ItemID == id })
	}
}

func (st *Store) ItemByID(cat model.Categoria, id string) (model.ItemEvaluable, bool) {
	if p := st.itemsDe(cat); p != nil {
		for _, it := range *p {
			if it.ID == id {
				return it, true
			}
		}
	}
	return model.ItemEvaluable{}, false
}

// ItemsDelPeriodo lists a category's items for one (curso, periodo, subject).
func (st *Store) ItemsDelPeriodo(cat model.Categoria, cursoID, periodo, subject string) []model.ItemEvaluable {
	var out []model.ItemEvaluable
	if p := st.itemsDe(cat); p != nil {
		for _, it := range *p {
			if it.CursoLectivoID == cursoID && it.PeriodoNombre == periodo && it.Subject == subject {
				out = append(out, it)
			}
		}
	}
	return out
}

func (st *Store) UpsertCalificacion(cat model.Categoria, c model.CalificacionItem) {
	if p := st.califsDe(cat); p != nil {
		*p = upsert(*p, func(x model.CalificacionItem) string { return x.ID }, c)
	}
}

func (st *Store) DeleteCalificacion(cat model.Categoria, id string) {
	if p := st.califsDe(cat); p != nil {
		*p = removeIf(*p, func(c model.CalificacionItem) bool { return c.ID == id })
	}
}

func (st *Store) CalificacionByID(cat model.Categoria, id string) (model.CalificacionItem, bool) {
	if p := st.califsDe(cat); p != nil {
		for _, c := range *p {
			if c.ID == id {
				return c, true
			}
		}
	}
	return model.CalificacionItem{}, false
}

// ── cotidiano ──

func (st *Store) UpsertIndicador(i model.Indicador) {
	st.s.Indicadores = upsert(st.s.Indicadores, func(x model.Indicador) string { return x.ID }, i)
}

// DeleteIndicador removes a bank indicator, pulls it out of every period
// selection and drops its grades.
func (st *Store) DeleteIndicador(id string) {
	st.s.Indicadores = removeIf(st.s.Indicadores, func(i model.Indicador) bool { return i.ID == id })
	for i := range st.s.EvaluacionesCotidiano {
		ids := st.s.EvaluacionesCotidiano[i].IndicadorIDs
		st.s.EvaluacionesCotidiano[i].IndicadorIDs = removeIf(ids, func(x string) bool { return x == id })
	}
	st.s.CalificacionesIndicadores = removeIf(st.s.CalificacionesIndicadores,
		func(c model.CalificacionIndicador) bool { return c.IndicadorID == id })
}

func (st *Store) IndicadorByID(id string) (model.Indicador, bool) {
	for _, i := range st.s.Indicadores {
		if i.ID == id {
			return i, true
		}
	}
	return model.Indicador{}, false
}

// IndicadoresDe lists the bank of one (curso, subject).
func (st *Store) IndicadoresDe(cursoID, subject string) []model.Indicador {
	var out []model.Indicador
	for _, i := range st.s.Indicadores {
		if i.CursoLectivoID == cursoID && i.Subject == subject {
			out = append(out, i)
		}
	}
	return out
}

func (st *Store) UpsertEvaluacionCotidiano(e model.EvaluacionCotidiano) {
	st.s.EvaluacionesCotidiano = upsert(st.s.EvaluacionesCotidiano, func(x model.EvaluacionCotidiano) string { return x.ID }, e)
}

func (st *Store) EvaluacionCotidiano(cursoID, periodo, subject string) (model.EvaluacionCotidiano, bool) {
	id := model.ConfigCategoriaID(cursoID, periodo, subject)
	for _, e := range st.s.EvaluacionesCotidiano {
		if e.ID == id {
			return e, true
		}
	}
	return model.EvaluacionCotidiano{}, false
}

func (st *Store) UpsertCalificacionIndicador(c model.CalificacionIndicador) {
	st.s.CalificacionesIndicadores = upsert(st.s.CalificacionesIndicadores,
		func(x model.CalificacionIndicador) string { return x.ID }, c)
}

func (st *Store) DeleteCalificacionIndicador(id string) {
	st.s.CalificacionesIndicadores = removeIf(st.s.CalificacionesIndicadores,
		func(c model.CalificacionIndicador) bool { return c.ID == id })
}

func (st *Store) CalificacionIndicadorByID(id string) (model.CalificacionIndicador, bool) {
	for _, c := range st.s.CalificacionesIndicadores {
		if c.ID == id {
			return c, true
		}
	}
	return model.CalificacionIndicador{}, false
}

// ── alertas ──

func (st *Store) UpsertAlerta(a model.AlertaTemprana) {
	st.s.AlertasTempranas = upsert(st.s.AlertasTempranas, func(x model.AlertaTemprana) string { return x.ID }, a)
}

func (st *Store) DeleteAlerta(id string) {
	st.s.AlertasTempranas = removeIf(st.s.AlertasTempranas, func(a model.AlertaTemprana) bool { return a.ID == id })
}

func (st *Store) AlertaByID(id string) (model.AlertaTemprana, bool) {
	for _, a := range st.s.AlertasTempranas {
		if a.ID == id {
			return a, true
		}
	}
	return model.AlertaTemprana{}, false
}

func (st *Store) AlertasDelCurso(cursoID string) []model.AlertaTemprana {
	var out []model.AlertaTemprana
	for _, a := range st.s.AlertasTempranas {
		if a.CursoLectivoID == cursoID {
			out = append(out, a)
		}
	}
	return out
}

// AlertasDelEstudiante lists one student's cases.
func (st *Store) AlertasDelEstudiante(estudianteID string) []model.AlertaTemprana {
	var out []model.AlertaTemprana
	for _, a := range st.s.AlertasTempranas {
		if a.EstudianteID == estudianteID {
			out = append(out, a)
		}
	}
	return out
}

// ── grading input ──

// DatosDelCurso collects every grading input of one course for the
// aggregation engine.
func (st *Store) DatosDelCurso(cursoID string) *grading.DatosCurso {
	del := func(id string) bool { return id == cursoID }
	d := &grading.DatosCurso{}
	for _, c := range st.s.ConfiguracionesTareas {
		if del(c.CursoLectivoID) {
			d.ConfiguracionesTareas = append(d.ConfiguracionesTareas, c)
		}
	}
	for _, i := range st.s.Tareas {
		if del(i.CursoLectivoID) {
			d.Tareas = append(d.Tareas, i)
		}
	}
	for _, c := range st.s.ConfiguracionesCotidiano {
		if del(c.CursoLectivoID) {
			d.ConfiguracionesCotidiano = append(d.ConfiguracionesCotidiano, c)
		}
	}
	for _, e := range st.s.EvaluacionesCotidiano {
		if del(e.CursoLectivoID) {
			d.EvaluacionesCotidiano = append(d.EvaluacionesCotidiano, e)
		}
	}
	for _, c := range st.s.CalificacionesIndicadores {
		if del(c.CursoLectivoID) {
			d.CalificacionesIndicadores = append(d.CalificacionesIndicadores, c)
		}
	}
	for _, c := range st.s.ConfiguracionesProyectos {
		if del(c.CursoLectivoID) {
			d.ConfiguracionesProyectos = append(d.ConfiguracionesProyectos, c)
		}
	}
	for _, i := range st.s.Proyectos {
		if del(i.CursoLectivoID) {
			d.Proyectos = append(d.Proyectos, i)
		}
	}
	for _, c := range st.s.ConfiguracionesPruebas {
		if del(c.CursoLectivoID) {
			d.ConfiguracionesPruebas = append(d.ConfiguracionesPruebas, c)
		}
	}
	for _, i := range st.s.Pruebas {
		if del(i.CursoLectivoID) {
			d.Pruebas = append(d.Pruebas, i)
		}
	}
	for _, r := range st.s.AsistenciaRecords {
		if del(r.CursoLectivoID) {
			d.AsistenciaRecords = append(d.AsistenciaRecords, r)
		}
	}
	// Item grades are keyed by item id, not course id, so they pass
	// through unfiltered; the engine only looks up grades of course items.
	d.CalificacionesTareas = st.s.CalificacionesTareas
	d.CalificacionesProyectos = st.s.CalificacionesProyectos
	d.CalificacionesPruebas = st.s.CalificacionesPruebas
	return d
}
