package service

import (
	"errors"
	"time"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/store"
)

// Errors shared by every course-scoped operation.
var (
	ErrCursoNoActivo          = errors.New("no hay un curso lectivo activo")
	ErrPeriodosNoConfigurados = errors.New("el curso activo no tiene sus dos periodos configurados")
	ErrFechaInvalida          = errors.New("fecha inválida, se espera el formato AAAA-MM-DD")
)

const fechaLayout = "2006-01-02"

func parseFecha(s string) (time.Time, error) {
	t, err := time.Parse(fechaLayout, s)
	if err != nil {
		return time.Time{}, ErrFechaInvalida
	}
	return t, nil
}

// cursoActivo resolves the active course or fails every operation that
// needs one.
func cursoActivo(st *store.Store) (model.CursoLectivo, error) {
	c, ok := st.CursoActivo()
	if !ok {
		return model.CursoLectivo{}, ErrCursoNoActivo
	}
	return c, nil
}

// cursoConPeriodos additionally requires both periods, which grading and
// attendance features depend on.
func cursoConPeriodos(st *store.Store) (model.CursoLectivo, error) {
	c, err := cursoActivo(st)
	if err != nil {
		return model.CursoLectivo{}, err
	}
	if !c.PeriodosConfigurados() {
		return model.CursoLectivo{}, ErrPeriodosNoConfigurados
	}
	return c, nil
}

// periodoDelCurso reports whether nombre names one of the course's periods.
func periodoDelCurso(c model.CursoLectivo, nombre string) bool {
	for _, p := range c.Periods {
		if p.Nombre == nombre {
			return true
		}
	}
	return false
}

// subjectDelCurso reports whether the course teaches the subject.
func subjectDelCurso(c model.CursoLectivo, subject string) bool {
	for _, s := range c.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}
