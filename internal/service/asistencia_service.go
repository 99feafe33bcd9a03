package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/grading"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/session"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/store"
)

// ── asistencia business errors ──

var (
	ErrDiaNoLectivo    = errors.New("la fecha cae en fin de semana")
	ErrPeriodoNoExiste = errors.New("el periodo no pertenece al curso activo")
	ErrSubjectNoExiste = errors.New("la materia no pertenece al curso activo")
)

// AsistenciaService maintains the attendance grid. A cell with no record is
// Presente; writes that land back on Presente delete the record.
type AsistenciaService interface {
	Ciclar(ctx context.Context, userID string, req *dto.CiclarAsistenciaRequest) (model.AsistenciaStatus, error)
	Set(ctx context.Context, userID string, req *dto.SetAsistenciaRequest) error
	Grid(ctx context.Context, userID, subject string, year int, month time.Month) (*dto.GridAsistenciaResponse, error)
}

type asistenciaService struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// NewAsistenciaService creates the AsistenciaService instance.
func NewAsistenciaService(sessions *session.Manager, logger *zap.Logger) AsistenciaService {
	return &asistenciaService{sessions: sessions, logger: logger}
}

func validarCelda(st *store.Store, periodo, subject, fecha string) (model.CursoLectivo, error) {
	curso, err := cursoConPeriodos(st)
	if err != nil {
		return model.CursoLectivo{}, err
	}
	if !periodoDelCurso(curso, periodo) {
		return model.CursoLectivo{}, ErrPeriodoNoExiste
	}
	if !subjectDelCurso(curso, subject) {
		return model.CursoLectivo{}, ErrSubjectNoExiste
	}
	d, err := parseFecha(fecha)
	if err != nil {
		return model.CursoLectivo{}, err
	}
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return model.CursoLectivo{}, ErrDiaNoLectivo
	}
	return curso, nil
}

// Ciclar advances one cell through Presente -> J -> I -> TJ -> TI and back.
// It returns the status the cell landed on.
func (s *asistenciaService) Ciclar(ctx context.Context, userID string, req *dto.CiclarAsistenciaRequest) (model.AsistenciaStatus, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var next model.AsistenciaStatus
	var opErr error
	sess.Update(func(st *store.Store) {
		curso, err := validarCelda(st, req.PeriodoNombre, req.Subject, req.Date)
		if err != nil {
			opErr = err
			return
		}
		if _, ok := st.EstudianteByID(req.EstudianteID); !ok {
			opErr = ErrEstudianteNoEncontrado
			return
		}

		id := model.AsistenciaID(req.EstudianteID, req.Date, req.Subject)
		current := model.AsistenciaPresente
		if rec, ok := st.AsistenciaByID(id); ok {
			current = rec.Status
		}
		next = grading.CycleStatus(current)
		if next == model.AsistenciaPresente {
			st.DeleteAsistencia(id)
			return
		}
		st.UpsertAsistencia(model.AsistenciaRecord{
			ID:             id,
			EstudianteID:   req.EstudianteID,
			CursoLectivoID: curso.ID,
			PeriodoNombre:  req.PeriodoNombre,
			Subject:        req.Subject,
			Date:           req.Date,
			Status:         next,
		})
	})
	return next, opErr
}

// Set writes one cell directly. The same cell written twice keeps only the
// latest status.
func (s *asistenciaService) Set(ctx context.Context, userID string, req *dto.SetAsistenciaRequest) error {
	sess := s.sessions.Acquire(ctx, userID)
	var opErr error
	sess.Update(func(st *store.Store) {
		curso, err := validarCelda(st, req.PeriodoNombre, req.Subject, req.Date)
		if err != nil {
			opErr = err
			return
		}
		if _, ok := st.EstudianteByID(req.EstudianteID); !ok {
			opErr = ErrEstudianteNoEncontrado
			return
		}

		id := model.AsistenciaID(req.EstudianteID, req.Date, req.Subject)
		status := model.AsistenciaStatus(req.Status)
		if status == model.AsistenciaPresente {
			st.DeleteAsistencia(id)
			return
		}
		st.UpsertAsistencia(model.AsistenciaRecord{
			ID:             id,
			EstudianteID:   req.EstudianteID,
			CursoLectivoID: curso.ID,
			PeriodoNombre:  req.PeriodoNombre,
			Subject:        req.Subject,
			Date:           req.Date,
			Status:         status,
		})
	})
	return opErr
}

// Grid builds the monthly view: one column per school day, one row per
// active student, empty cells meaning Presente.
func (s *asistenciaService) Grid(ctx context.Context, userID, subject string, year int, month time.Month) (*dto.GridAsistenciaResponse, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *dto.GridAsistenciaResponse
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

		days := grading.SchoolDays(year, month)
		dias := make([]string, 0, len(days))
		for _, d := range days {
			dias = append(dias, d.Format(fechaLayout))
		}

		records := make(map[string]model.AsistenciaStatus)
		for _, r := range st.AsistenciaDelCurso(curso.ID) {
			if r.Subject == subject {
				records[r.ID] = r.Status
			}
		}

		grid := &dto.GridAsistenciaResponse{
			Year:    year,
			Month:   int(month),
			Subject: subject,
			Dias:    dias,
		}
		for _, e := range st.EstudiantesActivos(curso.ID) {
			fila := dto.FilaAsistencia{EstudianteID: e.ID, Nombre: e.NombreCompleto()}
			for _, dia := range dias {
				fila.Celdas = append(fila.Celdas, dto.CeldaAsistencia{
					Date:   dia,
					Status: records[model.AsistenciaID(e.ID, dia, subject)],
				})
			}
			grid.Filas = append(grid.Filas, fila)
		}
		out = grid
	})
	return out, opErr
}
