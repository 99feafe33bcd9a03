package grading

import (
	"time"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
)

// asistenciaCiclo is the click order of an attendance cell. Presente is the
// empty string and means "delete the record".
var asistenciaCiclo = []model.AsistenciaStatus{
	model.AsistenciaPresente,
	model.AsistenciaJustificada,
	model.AsistenciaInjustificada,
	model.AsistenciaTardiaJustificada,
	model.AsistenciaTardiaInjustificada,
}

// CycleStatus returns the status that follows s in the click cycle
// Presente -> J -> I -> TJ -> TI -> Presente. An unknown status restarts
// the cycle at J.
func CycleStatus(s model.AsistenciaStatus) model.AsistenciaStatus {
	for i, cur := range asistenciaCiclo {
		if cur == s {
			return asistenciaCiclo[(i+1)%len(asistenciaCiclo)]
		}
	}
	return model.AsistenciaJustificada
}

// SchoolDays lists the weekdays of a month in ascending order. Saturdays
// and Sundays never appear on the attendance grid.
func SchoolDays(year int, month time.Month) []time.Time {
	var days []time.Time
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
	}
	return days
}

// ResumenAsistencia counts one student's non-present marks. Presente has no
// records, so it never needs counting.
type ResumenAsistencia struct {
	Justificadas          int `json:"justificadas"`
	Injustificadas        int `json:"injustificadas"`
	TardiasJustificadas   int `json:"tardias_justificadas"`
	TardiasInjustificadas int `json:"tardias_injustificadas"`
}

// Total is the number of days with any non-present mark.
func (r ResumenAsistencia) Total() int {
	return r.Justificadas + r.Injustificadas + r.TardiasJustificadas + r.TardiasInjustificadas
}

// Sumar adds two summaries element-wise. Annual attendance is the sum of the
// period summaries, never an average.
func (r ResumenAsistencia) Sumar(o ResumenAsistencia) ResumenAsistencia {
	return ResumenAsistencia{
		Justificadas:          r.Justificadas + o.Justificadas,
		Injustificadas:        r.Injustificadas + o.Injustificadas,
		TardiasJustificadas:   r.TardiasJustificadas + o.TardiasJustificadas,
		TardiasInjustificadas: r.TardiasInjustificadas + o.TardiasInjustificadas,
	}
}

func (r *ResumenAsistencia) contar(s model.AsistenciaStatus) {
	switch s {
	case model.AsistenciaJustificada:
		r.Justificadas++
	case model.AsistenciaInjustificada:
		r.Injustificadas++
	case model.AsistenciaTardiaJustificada:
		r.TardiasJustificadas++
	case model.AsistenciaTardiaInjustificada:
		r.TardiasInjustificadas++
	}
}

// SumarizarAsistencia tallies a student's marks for one (periodo, subject).
func SumarizarAsistencia(records []model.AsistenciaRecord, estudianteID, periodo, subject string) ResumenAsistencia {
	var out ResumenAsistencia
	for _, rec := range records {
		if rec.EstudianteID == estudianteID && rec.PeriodoNombre == periodo && rec.Subject == subject {
			out.contar(rec.Status)
		}
	}
	return out
}

// SumarizarAsistenciaMes tallies a student's marks for one month of one
// subject regardless of period, matching the monthly grid view. Record dates
// use the YYYY-MM-DD layout.
func SumarizarAsistenciaMes(records []model.AsistenciaRecord, estudianteID, subject string, year int, month time.Month) ResumenAsistencia {
	var out ResumenAsistencia
	for _, rec := range records {
		if rec.EstudianteID != estudianteID || rec.Subject != subject {
			continue
		}
		d, err := time.Parse("2006-01-02", rec.Date)
		if err != nil || d.Year() != year || d.Month() != month {
			continue
		}
		out.contar(rec.Status)
	}
	return out
}
