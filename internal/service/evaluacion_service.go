package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/grading"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/session"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/store"
)

// ── weighted-category business errors ──

var (
	ErrCategoriaNoConfigurada = errors.New("la categoría no está configurada para este periodo y materia")
	ErrCategoriaDeshabilitada = errors.New("la categoría está deshabilitada para este periodo y materia")
	ErrPesoExcedeCategoria    = errors.New("el peso del ítem excede el porcentaje disponible de la categoría")
	ErrItemNoEncontrado       = errors.New("el ítem no existe")
	ErrPuntosFueraDeRango     = errors.New("los puntos deben estar entre cero y el total del ítem")
)

// EvaluacionService manages one weighted grading family. Tareas, proyectos
// and pruebas share this implementation; proyectos and pruebas additionally
// require their configuration to be enabled before items can exist.
type EvaluacionService interface {
	SetConfig(ctx context.Context, userID string, req *dto.ConfigCategoriaRequest) (*model.ConfiguracionCategoria, error)
	GetConfig(ctx context.Context, userID, periodo, subject string) (*model.ConfiguracionCategoria, error)
	CreateItem(ctx context.Context, userID string, req *dto.ItemRequest) (*model.ItemEvaluable, error)
	UpdateItem(ctx context.Context, userID, itemID string, req *dto.ItemRequest) (*model.ItemEvaluable, error)
	DeleteItem(ctx context.Context, userID, itemID string) error
	ListItems(ctx context.Context, userID, periodo, subject string) ([]model.ItemEvaluable, error)
	Calificar(ctx context.Context, userID, itemID string, req *dto.CalificarItemRequest) (*model.CalificacionItem, error)
	Calificaciones(ctx context.Context, userID, itemID string) ([]model.CalificacionItem, error)
}

type evaluacionService struct {
	categoria model.Categoria
	gated     bool // proyectos and pruebas require Habilitada
	sessions  *session.Manager
	logger    *zap.Logger
}

// NewEvaluacionService creates the service for one weighted category.
func NewEvaluacionService(cat model.Categoria, sessions *session.Manager, logger *zap.Logger) EvaluacionService {
	gated := cat == model.CategoriaProyectos || cat == model.CategoriaPruebas
	return &evaluacionService{categoria: cat, gated: gated, sessions: sessions, logger: logger}
}

// clamp keeps a category share inside [0, 100] rather than rejecting it.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// setConfigCategoria writes a category configuration; cotidiano reuses it.
func setConfigCategoria(st *store.Store, cat model.Categoria, req *dto.ConfigCategoriaRequest) (*model.ConfiguracionCategoria, error) {
	curso, err := cursoConPeriodos(st)
	if err != nil {
		return nil, err
	}
	if !periodoDelCurso(curso, req.PeriodoNombre) {
		return nil, ErrPeriodoNoExiste
	}
	if !subjectDelCurso(curso, req.Subject) {
		return nil, ErrSubjectNoExiste
	}
	cfg := model.ConfiguracionCategoria{
		ID:                model.ConfigCategoriaID(curso.ID, req.PeriodoNombre, req.Subject),
		CursoLectivoID:    curso.ID,
		PeriodoNombre:     req.PeriodoNombre,
		Subject:           req.Subject,
		PorcentajeGeneral: clamp(req.PorcentajeGeneral, 0, 100),
		Habilitada:        req.Habilitada,
	}
	st.UpsertConfiguracion(cat, cfg)
	return &cfg, nil
}

func (s *evaluacionService) SetConfig(ctx context.Context, userID string, req *dto.ConfigCategoriaRequest) (*model.ConfiguracionCategoria, error) {
	if !s.gated {
		// Ungated categories are active whenever configured.
		req.Habilitada = true
	}
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.ConfiguracionCategoria
	var opErr error
	sess.Update(func(st *store.Store) {
		out, opErr = setConfigCategoria(st, s.categoria, req)
	})
	return out, opErr
}

func (s *evaluacionService) GetConfig(ctx context.Context, userID, periodo, subject string) (*model.ConfiguracionCategoria, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.ConfiguracionCategoria
	var opErr error
	sess.View(func(st *store.Store) {
		curso, err := cursoActivo(st)
		if err != nil {
			opErr = err
			return
		}
		cfg, ok := st.Configuracion(s.categoria, curso.ID, periodo, subject)
		if !ok {
			opErr = ErrCategoriaNoConfigurada
			return
		}
		out = &cfg
	})
	return out, opErr
}

// validarItem enforces the category's gate and weight capacity.
func (s *evaluacionService) validarItem(st *store.Store, curso model.CursoLectivo, periodo, subject, excluirID string, peso float64) error {
	cfg, ok := st.Configuracion(s.categoria, curso.ID, periodo, subject)
	if !ok {
		return ErrCategoriaNoConfigurada
	}
	if s.gated && !cfg.Habilitada {
		return ErrCategoriaDeshabilitada
	}
	items := st.ItemsDelPeriodo(s.categoria, curso.ID, periodo, subject)
	if !grading.CabeEnCategoria(&cfg, items, excluirID, peso) {
		return ErrPesoExcedeCategoria
	}
	return nil
}

func (s *evaluacionService) CreateItem(ctx context.Context, userID string, req *dto.ItemRequest) (*model.ItemEvaluable, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.ItemEvaluable
	var opErr error
	sess.Update(func(st *store.Store) {
		curso, err := cursoConPeriodos(st)
		if err != nil {
			opErr = err
			return
		}
		if err := s.validarItem(st, curso, req.PeriodoNombre, req.Subject, "", req.Porcentaje); err != nil {
			opErr = err
			return
		}
		item := model.ItemEvaluable{
			ID:             uuid.NewString(),
			CursoLectivoID: curso.ID,
			PeriodoNombre:  req.PeriodoNombre,
			Subject:        req.Subject,
			Nombre:         req.Nombre,
			Porcentaje:     req.Porcentaje,
			PuntosTotales:  req.PuntosTotales,
		}
		st.UpsertItem(s.categoria, item)
		out = &item
	})
	return out, opErr
}

func (s *evaluacionService) UpdateItem(ctx context.Context, userID, itemID string, req *dto.ItemRequest) (*model.ItemEvaluable, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.ItemEvaluable
	var opErr error
	sess.Update(func(st *store.Store) {
		curso, err := cursoConPeriodos(st)
		if err != nil {
			opErr = err
			return
		}
		item, ok := st.ItemByID(s.categoria, itemID)
		if !ok {
			opErr = ErrItemNoEncontrado
			return
		}
		if err := s.validarItem(st, curso, req.PeriodoNombre, req.Subject, itemID, req.Porcentaje); err != nil {
			opErr = err
			return
		}
		item.PeriodoNombre = req.PeriodoNombre
		item.Subject = req.Subject
		item.Nombre = req.Nombre
		item.Porcentaje = req.Porcentaje
		item.PuntosTotales = req.PuntosTotales
		st.UpsertItem(s.categoria, item)
		out = &item
	})
	return out, opErr
}

// DeleteItem removes an item together with every grade on it.
func (s *evaluacionService) DeleteItem(ctx context.Context, userID, itemID string) error {
	sess := s.sessions.Acquire(ctx, userID)
	var opErr error
	sess.Update(func(st *store.Store) {
		if _, ok := st.ItemByID(s.categoria, itemID); !ok {
			opErr = ErrItemNoEncontrado
			return
		}
		st.DeleteItem(s.categoria, itemID)
	})
	return opErr
}

func (s *evaluacionService) ListItems(ctx context.Context, userID, periodo, subject string) ([]model.ItemEvaluable, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out []model.ItemEvaluable
	var opErr error
	sess.View(func(st *store.Store) {
		curso, err := cursoActivo(st)
		if err != nil {
			opErr = err
			return
		}
		out = st.ItemsDelPeriodo(s.categoria, curso.ID, periodo, subject)
	})
	return out, opErr
}

// Calificar writes one student's grade. Points outside [0, total] are
// rejected without touching the stored grade. Nil points with NoEntregado
// false returns the item to ungraded by deleting the record.
func (s *evaluacionService) Calificar(ctx context.Context, userID, itemID string, req *dto.CalificarItemRequest) (*model.CalificacionItem, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.CalificacionItem
	var opErr error
	sess.Update(func(st *store.Store) {
		item, ok := st.ItemByID(s.categoria, itemID)
		if !ok {
			opErr = ErrItemNoEncontrado
			return
		}
		if _, ok := st.EstudianteByID(req.EstudianteID); !ok {
			opErr = ErrEstudianteNoEncontrado
			return
		}
		if req.Puntos != nil && (*req.Puntos < 0 || *req.Puntos > item.PuntosTotales) {
			opErr = ErrPuntosFueraDeRango
			return
		}

		id := model.CalificacionItemID(itemID, req.EstudianteID)
		if req.Puntos == nil && !req.NoEntregado {
			st.DeleteCalificacion(s.categoria, id)
			return
		}
		calif := model.CalificacionItem{
			ID:              id,
			ItemID:          itemID,
			EstudianteID:    req.EstudianteID,
			PuntosObtenidos: req.Puntos,
			NoEntregado:     req.NoEntregado,
		}
		if calif.NoEntregado {
			calif.PuntosObtenidos = nil
		}
		st.UpsertCalificacion(s.categoria, calif)
		out = &calif
	})
	return out, opErr
}

func (s *evaluacionService) Calificaciones(ctx context.Context, userID, itemID string) ([]model.CalificacionItem, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out []model.CalificacionItem
	var opErr error
	sess.View(func(st *store.Store) {
		if _, ok := st.ItemByID(s.categoria, itemID); !ok {
			opErr = ErrItemNoEncontrado
			return
		}
		// The store keeps grades per family; filter down to the item.
		for _, e := range st.Snapshot().Estudiantes {
			if c, ok := st.CalificacionByID(s.categoria, model.CalificacionItemID(itemID, e.ID)); ok {
				out = append(out, c)
			}
		}
	})
	return out, opErr
}
