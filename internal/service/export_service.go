package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/grading"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/session"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/store"
)

// ── export business errors ──

var ErrExportSinEstudiantes = errors.New("no hay estudiantes activos para exportar")

// ExportService renders downloadable artifacts: grade summaries and
// attendance grids as .xlsx, the course calendar as .ics. Buffers come back
// with a suggested filename; the handler sets the HTTP headers.
type ExportService interface {
	ResumenXLSX(ctx context.Context, userID, periodo, subject string) (*bytes.Buffer, string, error)
	AsistenciaXLSX(ctx context.Context, userID, subject string, year int, month time.Month) (*bytes.Buffer, string, error)
	CalendarioICS(ctx context.Context, userID string) (string, string, error)
}

type exportService struct {
	sessions *session.Manager
	resumen  ResumenService
	logger   *zap.Logger
}

// NewExportService creates the ExportService instance.
func NewExportService(sessions *session.Manager, resumen ResumenService, logger *zap.Logger) ExportService {
	return &exportService{sessions: sessions, resumen: resumen, logger: logger}
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func formatoCelda(r grading.Resultado) string {
	if !r.Configurado {
		return "N/C"
	}
	if !r.Evaluado {
		return "Sin evaluar"
	}
	return fmt.Sprintf("%.2f", r.Porcentaje)
}

// ResumenXLSX exports the group summary of one (periodo, subject): one row
// per active student, one column per category plus attendance and total.
func (s *exportService) ResumenXLSX(ctx context.Context, userID, periodo, subject string) (*bytes.Buffer, string, error) {
	grupo, err := s.resumen.Grupo(ctx, userID, periodo, subject)
	if err != nil {
		return nil, "", err
	}
	if len(grupo.Estudiantes) == 0 {
		return nil, "", ErrExportSinEstudiantes
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Resumen"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 32)
	f.SetColWidth(sheet, "B", "H", 14)
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Resumen de calificaciones - %s - %s", subject, periodo))
	f.MergeCell(sheet, "A1", "H1")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"Estudiante", "Tareas", "Cotidiano", "Proyectos", "Pruebas", "Ausencias Inj.", "Ausencias Just.", "Total %"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, cell(col, 2), h)
		f.SetCellStyle(sheet, cell(col, 2), cell(col, 2), headerStyle)
	}

	row := 3
	for _, est := range grupo.Estudiantes {
		r := est.Resultados
		f.SetCellValue(sheet, cell("A", row), est.NombreEstudiante)
		f.SetCellValue(sheet, cell("B", row), formatoCelda(r.Tareas))
		f.SetCellValue(sheet, cell("C", row), formatoCelda(r.Cotidiano))
		f.SetCellValue(sheet, cell("D", row), formatoCelda(r.Proyectos))
		f.SetCellValue(sheet, cell("E", row), formatoCelda(r.Pruebas))
		f.SetCellValue(sheet, cell("F", row), r.Asistencia.Injustificadas)
		f.SetCellValue(sheet, cell("G", row), r.Asistencia.Justificadas)
		f.SetCellValue(sheet, cell("H", row), fmt.Sprintf("%.2f", r.TotalPorcentaje))
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("resumen exported",
		zap.String("user_id", userID), zap.String("subject", subject), zap.Int("rows", len(grupo.Estudiantes)))
	return buf, fmt.Sprintf("resumen_%s_%s.xlsx", subject, periodo), nil
}

// AsistenciaXLSX exports the monthly grid: weekday columns, one row per
// active student, empty cells meaning Presente.
func (s *exportService) AsistenciaXLSX(ctx context.Context, userID, subject string, year int, month time.Month) (*bytes.Buffer, string, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var buf *bytes.Buffer
	var opErr error
	sess.View(func(st *store.Store) {
		curso, err := cursoConPeriodos(st)
		if err != nil {
			opErr = err
			return
		}
		if !subjectDelCurso(curso, subject) {
			opErr = ErrSubjectNoExiste
			return
		}
		estudiantes := st.EstudiantesActivos(curso.ID)
		if len(estudiantes) == 0 {
			opErr = ErrExportSinEstudiantes
			return
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Asistencia"
		idx, err := f.NewSheet(sheet)
		if err != nil {
			opErr = err
			return
		}
		f.SetActiveSheet(idx)
		f.DeleteSheet("Sheet1")
		f.SetColWidth(sheet, "A", "A", 32)

		days := grading.SchoolDays(year, month)
		f.SetCellValue(sheet, "A1", fmt.Sprintf("Asistencia - %s - %04d-%02d", subject, year, int(month)))

		f.SetCellValue(sheet, "A2", "Estudiante")
		for i, d := range days {
			col, _ := excelize.ColumnNumberToName(i + 2)
			f.SetCellValue(sheet, cell(col, 2), d.Day())
		}

		marcas := make(map[string]string)
		for _, r := range st.AsistenciaDelCurso(curso.ID) {
			if r.Subject == subject {
				marcas[r.ID] = string(r.Status)
			}
		}

		row := 3
		for _, e := range estudiantes {
			f.SetCellValue(sheet, cell("A", row), e.NombreCompleto())
			for i, d := range days {
				col, _ := excelize.ColumnNumberToName(i + 2)
				id := model.AsistenciaID(e.ID, d.Format(fechaLayout), subject)
				if marca, ok := marcas[id]; ok {
					f.SetCellValue(sheet, cell(col, row), marca)
				}
			}
			row++
		}

		buf, opErr = f.WriteToBuffer()
	})
	if opErr != nil {
		return nil, "", opErr
	}
	return buf, fmt.Sprintf("asistencia_%s_%04d-%02d.xlsx", subject, year, int(month)), nil
}

// CalendarioICS exports the active course's two periods as all-day
// calendar events, ready for import into any RFC 5545 client.
func (s *exportService) CalendarioICS(ctx context.Context, userID string) (string, string, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var serialized, filename string
	var opErr error
	sess.View(func(st *store.Store) {
		curso, err := cursoConPeriodos(st)
		if err != nil {
			opErr = err
			return
		}

		cal := ics.NewCalendar()
		cal.SetMethod(ics.MethodPublish)
		cal.SetProductId("-//RegistroElectronicoIA//Calendario Escolar//ES")

		for i, p := range curso.Periods {
			inicio, err := time.Parse(fechaLayout, p.FechaInicio)
			if err != nil {
				opErr = ErrFechaInvalida
				return
			}
			fin, err := time.Parse(fechaLayout, p.FechaFin)
			if err != nil {
				opErr = ErrFechaInvalida
				return
			}
			ev := cal.AddEvent(fmt.Sprintf("periodo-%d-%s@registroelectronico", i+1, curso.ID))
			ev.SetCreatedTime(time.Now())
			ev.SetDtStampTime(time.Now())
			ev.SetAllDayStartAt(inicio)
			// DTEND is exclusive for all-day events.
			ev.SetAllDayEndAt(fin.AddDate(0, 0, 1))
			ev.SetSummary(fmt.Sprintf("%s - Curso lectivo %d", p.Nombre, curso.Year))
			ev.SetDescription(fmt.Sprintf("Periodo lectivo de %s a %s", p.FechaInicio, p.FechaFin))
		}

		serialized = cal.Serialize()
		filename = fmt.Sprintf("curso_lectivo_%d.ics", curso.Year)
	})
	return serialized, filename, opErr
}
