package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/session"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/store"
)

// ── curso lectivo business errors ──

var (
	ErrCursoNoEncontrado      = errors.New("el curso lectivo no existe")
	ErrPeriodoFechasInvalidas = errors.New("cada periodo debe terminar después de iniciar")
	ErrPeriodosSolapados      = errors.New("el segundo periodo debe iniciar después del primero")
	ErrPeriodosIncompletos    = errors.New("se requieren exactamente dos periodos")
)

// CursoService manages school years and the active-course selection.
type CursoService interface {
	Create(ctx context.Context, userID string, req *dto.CreateCursoRequest) (*dto.CursoResponse, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateCursoRequest) (*dto.CursoResponse, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]dto.CursoResponse, error)
	Activate(ctx context.Context, userID, id string) error
	GetActivo(ctx context.Context, userID string) (*dto.CursoResponse, error)
}

type cursoService struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// NewCursoService creates the CursoService instance.
func NewCursoService(sessions *session.Manager, logger *zap.Logger) CursoService {
	return &cursoService{sessions: sessions, logger: logger}
}

// validarPeriodos checks the two-period invariant: each period ends after
// it starts and the second starts after the first ends.
func validarPeriodos(payload []dto.PeriodoPayload) ([]model.Periodo, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	if len(payload) != 2 {
		return nil, ErrPeriodosIncompletos
	}
	periods := make([]model.Periodo, 0, 2)
	for _, p := range payload {
		inicio, err := parseFecha(p.FechaInicio)
		if err != nil {
			return nil, err
		}
		fin, err := parseFecha(p.FechaFin)
		if err != nil {
			return nil, err
		}
		if !fin.After(inicio) {
			return nil, ErrPeriodoFechasInvalidas
		}
		periods = append(periods, model.Periodo{Nombre: p.Nombre, FechaInicio: p.FechaInicio, FechaFin: p.FechaFin})
	}
	fin1, _ := parseFecha(periods[0].FechaFin)
	inicio2, _ := parseFecha(periods[1].FechaInicio)
	if !inicio2.After(fin1) {
		return nil, ErrPeriodosSolapados
	}
	return periods, nil
}

func (s *cursoService) toResponse(c model.CursoLectivo, activo bool) *dto.CursoResponse {
	periods := make([]dto.PeriodoPayload, 0, len(c.Periods))
	for _, p := range c.Periods {
		periods = append(periods, dto.PeriodoPayload{Nombre: p.Nombre, FechaInicio: p.FechaInicio, FechaFin: p.FechaFin})
	}
	return &dto.CursoResponse{
		ID:          c.ID,
		Year:        c.Year,
		TeacherName: c.TeacherName,
		Periods:     periods,
		Subjects:    c.Subjects,
		Groups:      c.Groups,
		Activo:      activo,
	}
}

func (s *cursoService) Create(ctx context.Context, userID string, req *dto.CreateCursoRequest) (*dto.CursoResponse, error) {
	periods, err := validarPeriodos(req.Periods)
	if err != nil {
		return nil, err
	}
	curso := model.CursoLectivo{
		ID:          uuid.NewString(),
		Year:        req.Year,
		TeacherName: req.TeacherName,
		Periods:     periods,
		Subjects:    req.Subjects,
		Groups:      req.Groups,
	}

	sess := s.sessions.Acquire(ctx, userID)
	var activo bool
	sess.Update(func(st *store.Store) {
		st.UpsertCurso(curso)
		// The first course becomes active automatically.
		if _, ok := st.CursoActivo(); !ok {
			st.SetActiveCurso(curso.ID)
			activo = true
		}
	})
	s.logger.Info("curso created", zap.String("user_id", userID), zap.Int("year", curso.Year))
	return s.toResponse(curso, activo), nil
}

func (s *cursoService) Update(ctx context.Context, userID, id string, req *dto.UpdateCursoRequest) (*dto.CursoResponse, error) {
	periods, err := validarPeriodos(req.Periods)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Acquire(ctx, userID)
	var out *dto.CursoResponse
	var opErr error
	sess.Update(func(st *store.Store) {
		curso, ok := st.CursoByID(id)
		if !ok {
			opErr = ErrCursoNoEncontrado
			return
		}
		if req.Year != nil {
			curso.Year = *req.Year
		}
		if req.TeacherName != nil {
			curso.TeacherName = *req.TeacherName
		}
		if periods != nil {
			curso.Periods = periods
		}
		if req.Subjects != nil {
			curso.Subjects = req.Subjects
		}
		if req.Groups != nil {
			curso.Groups = req.Groups
		}
		st.UpsertCurso(curso)
		out = s.toResponse(curso, st.Snapshot().ActiveCursoID == id)
	})
	return out, opErr
}

func (s *cursoService) Delete(ctx context.Context, userID, id string) error {
	sess := s.sessions.Acquire(ctx, userID)
	var opErr error
	sess.Update(func(st *store.Store) {
		if _, ok := st.CursoByID(id); !ok {
			opErr = ErrCursoNoEncontrado
			return
		}
		st.DeleteCurso(id)
	})
	if opErr == nil {
		s.logger.Info("curso deleted", zap.String("user_id", userID), zap.String("curso_id", id))
	}
	return opErr
}

func (s *cursoService) List(ctx context.Context, userID string) ([]dto.CursoResponse, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out []dto.CursoResponse
	sess.View(func(st *store.Store) {
		activeID := st.Snapshot().ActiveCursoID
		for _, c := range st.Cursos() {
			out = append(out, *s.toResponse(c, c.ID == activeID))
		}
	})
	return out, nil
}

func (s *cursoService) Activate(ctx context.Context, userID, id string) error {
	sess := s.sessions.Acquire(ctx, userID)
	var opErr error
	sess.Update(func(st *store.Store) {
		if !st.SetActiveCurso(id) {
			opErr = ErrCursoNoEncontrado
		}
	})
	return opErr
}

func (s *cursoService) GetActivo(ctx context.Context, userID string) (*dto.CursoResponse, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *dto.CursoResponse
	var opErr error
	sess.View(func(st *store.Store) {
		c, err := cursoActivo(st)
		if err != nil {
			opErr = err
			return
		}
		out = s.toResponse(c, true)
	})
	return out, opErr
}
