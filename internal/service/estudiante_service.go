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

// ── estudiante business errors ──

var (
	ErrEstudianteNoEncontrado = errors.New("el estudiante no existe")
	ErrFechaAnteriorIngreso   = errors.New("la fecha no puede ser anterior a la fecha de ingreso del estudiante")
	ErrEstadoRequiereFecha    = errors.New("el cambio de estado requiere una fecha")
)

// EstudianteService manages the roster of the active course.
type EstudianteService interface {
	Create(ctx context.Context, userID string, req *dto.CreateEstudianteRequest) (*model.Estudiante, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateEstudianteRequest) (*model.Estudiante, error)
	Delete(ctx context.Context, userID, id string) error
	Get(ctx context.Context, userID, id string) (*model.Estudiante, error)
	List(ctx context.Context, userID string) ([]model.Estudiante, error)
	CambiarEstado(ctx context.Context, userID, id string, req *dto.CambiarEstadoRequest) (*model.Estudiante, error)
}

type estudianteService struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// NewEstudianteService creates the EstudianteService instance.
func NewEstudianteService(sessions *session.Manager, logger *zap.Logger) EstudianteService {
	return &estudianteService{sessions: sessions, logger: logger}
}

func (s *estudianteService) Create(ctx context.Context, userID string, req *dto.CreateEstudianteRequest) (*model.Estudiante, error) {
	if _, err := parseFecha(req.FechaIngreso); err != nil {
		return nil, err
	}

	sess := s.sessions.Acquire(ctx, userID)
	var out *model.Estudiante
	var opErr error
	sess.Update(func(st *store.Store) {
		curso, err := cursoActivo(st)
		if err != nil {
			opErr = err
			return
		}
		e := model.Estudiante{
			ID:              uuid.NewString(),
			CursoLectivoID:  curso.ID,
			Nombre:          req.Nombre,
			PrimerApellido:  req.PrimerApellido,
			SegundoApellido: req.SegundoApellido,
			Cedula:          req.Cedula,
			NombreEncargado: req.NombreEncargado,
			Direccion:       req.Direccion,
			Telefono:        req.Telefono,
			FechaIngreso:    req.FechaIngreso,
			Estado:          model.EstadoActivo,
		}
		st.UpsertEstudiante(e)
		out = &e
	})
	return out, opErr
}

func (s *estudianteService) Update(ctx context.Context, userID, id string, req *dto.UpdateEstudianteRequest) (*model.Estudiante, error) {
	if req.FechaIngreso != nil {
		if _, err := parseFecha(*req.FechaIngreso); err != nil {
			return nil, err
		}
	}

	sess := s.sessions.Acquire(ctx, userID)
	var out *model.Estudiante
	var opErr error
	sess.Update(func(st *store.Store) {
		e, ok := st.EstudianteByID(id)
		if !ok {
			opErr = ErrEstudianteNoEncontrado
			return
		}
		if req.Nombre != nil {
			e.Nombre = *req.Nombre
		}
		if req.PrimerApellido != nil {
			e.PrimerApellido = *req.PrimerApellido
		}
		if req.SegundoApellido != nil {
			e.SegundoApellido = *req.SegundoApellido
		}
		if req.Cedula != nil {
			e.Cedula = *req.Cedula
		}
		if req.NombreEncargado != nil {
			e.NombreEncargado = *req.NombreEncargado
		}
		if req.Direccion != nil {
			e.Direccion = *req.Direccion
		}
		if req.Telefono != nil {
			e.Telefono = *req.Telefono
		}
		if req.FechaIngreso != nil {
			e.FechaIngreso = *req.FechaIngreso
		}
		st.UpsertEstudiante(e)
		out = &e
	})
	return out, opErr
}

// Delete removes a student with all of their attendance, grades and
// early-warning cases.
func (s *estudianteService) Delete(ctx context.Context, userID, id string) error {
	sess := s.sessions.Acquire(ctx, userID)
	var opErr error
	sess.Update(func(st *store.Store) {
		if _, ok := st.EstudianteByID(id); !ok {
			opErr = ErrEstudianteNoEncontrado
			return
		}
		st.DeleteEstudiante(id)
	})
	if opErr == nil {
		s.logger.Info("estudiante deleted", zap.String("user_id", userID), zap.String("estudiante_id", id))
	}
	return opErr
}

func (s *estudianteService) Get(ctx context.Context, userID, id string) (*model.Estudiante, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.Estudiante
	var opErr error
	sess.View(func(st *store.Store) {
		e, ok := st.EstudianteByID(id)
		if !ok {
			opErr = ErrEstudianteNoEncontrado
			return
		}
		out = &e
	})
	return out, opErr
}

func (s *estudianteService) List(ctx context.Context, userID string) ([]model.Estudiante, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out []model.Estudiante
	var opErr error
	sess.View(func(st *store.Store) {
		curso, err := cursoActivo(st)
		if err != nil {
			opErr = err
			return
		}
		out = st.EstudiantesDelCurso(curso.ID)
	})
	return out, opErr
}

// CambiarEstado moves a student between lifecycle states. Trasladado and
// Desertor require a date on or after the student's entry date; a rejected
// date leaves the student untouched. Entering a state clears the other
// branch's metadata, and returning to Activo clears both.
func (s *estudianteService) CambiarEstado(ctx context.Context, userID, id string, req *dto.CambiarEstadoRequest) (*model.Estudiante, error) {
	estado := model.EstadoEstudiante(req.Estado)
	if estado != model.EstadoActivo {
		if req.Fecha == "" {
			return nil, ErrEstadoRequiereFecha
		}
		if _, err := parseFecha(req.Fecha); err != nil {
			return nil, err
		}
	}

	sess := s.sessions.Acquire(ctx, userID)
	var out *model.Estudiante
	var opErr error
	sess.Update(func(st *store.Store) {
		e, ok := st.EstudianteByID(id)
		if !ok {
			opErr = ErrEstudianteNoEncontrado
			return
		}
		if estado != model.EstadoActivo {
			fecha, _ := parseFecha(req.Fecha)
			ingreso, err := parseFecha(e.FechaIngreso)
			if err == nil && fecha.Before(ingreso) {
				opErr = ErrFechaAnteriorIngreso
				return
			}
		}

		e.Estado = estado
		e.FechaTraslado, e.EscuelaTraslado, e.ObservacionesTraslado = "", "", ""
		e.FechaDesercion, e.ObservacionesDesercion = "", ""
		switch estado {
		case model.EstadoTrasladado:
			e.FechaTraslado = req.Fecha
			e.EscuelaTraslado = req.Escuela
			e.ObservacionesTraslado = req.Observaciones
		case model.EstadoDesertor:
			e.FechaDesercion = req.Fecha
			e.ObservacionesDesercion = req.Observaciones
		}
		st.UpsertEstudiante(e)
		out = &e
	})
	return out, opErr
}
