package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/session"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/store"
)

// ── alertas tempranas business errors ──

var (
	ErrAlertaNoEncontrada  = errors.New("la alerta temprana no existe")
	ErrEntradaNoEncontrada = errors.New("la entrada de seguimiento no existe")
)

// AlertaService manages early-warning cases. Cases are never removed by a
// state change; Cerrada records its justification and the case stays until
// Delete is called explicitly.
type AlertaService interface {
	Create(ctx context.Context, userID string, req *dto.CreateAlertaRequest) (*model.AlertaTemprana, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateAlertaRequest) (*model.AlertaTemprana, error)
	Delete(ctx context.Context, userID, id string) error
	Get(ctx context.Context, userID, id string) (*model.AlertaTemprana, error)
	List(ctx context.Context, userID string) ([]dto.AlertaResponse, error)
	AddAtencionAction(ctx context.Context, userID, alertaID string, req *dto.AtencionActionRequest) (*model.AlertaTemprana, error)
	RemoveAtencionAction(ctx context.Context, userID, alertaID string, actionID int) (*model.AlertaTemprana, error)
	AddContactLog(ctx context.Context, userID, alertaID string, req *dto.ContactLogRequest) (*model.AlertaTemprana, error)
	RemoveContactLog(ctx context.Context, userID, alertaID string, logID int) (*model.AlertaTemprana, error)
}

type alertaService struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// NewAlertaService creates the AlertaService instance.
func NewAlertaService(sessions *session.Manager, logger *zap.Logger) AlertaService {
	return &alertaService{sessions: sessions, logger: logger}
}

func (s *alertaService) Create(ctx context.Context, userID string, req *dto.CreateAlertaRequest) (*model.AlertaTemprana, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.AlertaTemprana
	var opErr error
	sess.Update(func(st *store.Store) {
		curso, err := cursoActivo(st)
		if err != nil {
			opErr = err
			return
		}
		est, ok := st.EstudianteByID(req.EstudianteID)
		if !ok || est.CursoLectivoID != curso.ID {
			opErr = ErrEstudianteNoEncontrado
			return
		}
		checked := req.CheckedItems
		if checked == nil {
			checked = make(map[string]bool)
		}
		a := model.AlertaTemprana{
			ID:             uuid.NewString(),
			EstudianteID:   req.EstudianteID,
			CursoLectivoID: curso.ID,
			FechaCreacion:  time.Now().Format(fechaLayout),
			CheckedItems:   checked,
			Observaciones:  req.Observaciones,
			EstadoAlerta:   model.AlertaActivada,
		}
		st.UpsertAlerta(a)
		out = &a
	})
	if opErr == nil {
		s.logger.Info("alerta created", zap.String("user_id", userID), zap.String("estudiante_id", req.EstudianteID))
	}
	return out, opErr
}

func (s *alertaService) Update(ctx context.Context, userID, id string, req *dto.UpdateAlertaRequest) (*model.AlertaTemprana, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.AlertaTemprana
	var opErr error
	sess.Update(func(st *store.Store) {
		a, ok := st.AlertaByID(id)
		if !ok {
			opErr = ErrAlertaNoEncontrada
			return
		}
		if req.CheckedItems != nil {
			a.CheckedItems = req.CheckedItems
		}
		if req.Observaciones != nil {
			a.Observaciones = *req.Observaciones
		}
		if req.EstadoAlerta != nil {
			a.EstadoAlerta = *req.EstadoAlerta
		}
		if req.InstitucionReferida != nil {
			a.InstitucionReferida = *req.InstitucionReferida
		}
		if req.JustificacionEliminada != nil {
			a.JustificacionEliminada = *req.JustificacionEliminada
		}
		st.UpsertAlerta(a)
		out = &a
	})
	return out, opErr
}

func (s *alertaService) Delete(ctx context.Context, userID, id string) error {
	sess := s.sessions.Acquire(ctx, userID)
	var opErr error
	sess.Update(func(st *store.Store) {
		if _, ok := st.AlertaByID(id); !ok {
			opErr = ErrAlertaNoEncontrada
			return
		}
		st.DeleteAlerta(id)
	})
	return opErr
}

func (s *alertaService) Get(ctx context.Context, userID, id string) (*model.AlertaTemprana, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.AlertaTemprana
	var opErr error
	sess.View(func(st *store.Store) {
		a, ok := st.AlertaByID(id)
		if !ok {
			opErr = ErrAlertaNoEncontrada
			return
		}
		out = &a
	})
	return out, opErr
}

func (s *alertaService) List(ctx context.Context, userID string) ([]dto.AlertaResponse, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out []dto.AlertaResponse
	var opErr error
	sess.View(func(st *store.Store) {
		curso, err := cursoActivo(st)
		if err != nil {
			opErr = err
			return
		}
		for _, a := range st.AlertasDelCurso(curso.ID) {
			nombre := ""
			if e, ok := st.EstudianteByID(a.EstudianteID); ok {
				nombre = e.NombreCompleto()
			}
			out = append(out, dto.AlertaResponse{AlertaTemprana: a, NombreEstudiante: nombre})
		}
	})
	return out, opErr
}

// AddAtencionAction appends one follow-up action with the next sequential
// id inside the case.
func (s *alertaService) AddAtencionAction(ctx context.Context, userID, alertaID string, req *dto.AtencionActionRequest) (*model.AlertaTemprana, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.AlertaTemprana
	var opErr error
	sess.Update(func(st *store.Store) {
		a, ok := st.AlertaByID(alertaID)
		if !ok {
			opErr = ErrAlertaNoEncontrada
			return
		}
		next := 1
		for _, act := range a.AtencionActions {
			if act.ID >= next {
				next = act.ID + 1
			}
		}
		a.AtencionActions = append(a.AtencionActions, model.AtencionAction{
			ID:           next,
			Action:       req.Action,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			Responsible:  req.Responsible,
			Observations: req.Observations,
		})
		st.UpsertAlerta(a)
		out = &a
	})
	return out, opErr
}

// RemoveAtencionAction deletes one follow-up action from the case.
func (s *alertaService) RemoveAtencionAction(ctx context.Context, userID, alertaID string, actionID int) (*model.AlertaTemprana, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.AlertaTemprana
	var opErr error
	sess.Update(func(st *store.Store) {
		a, ok := st.AlertaByID(alertaID)
		if !ok {
			opErr = ErrAlertaNoEncontrada
			return
		}
		kept := a.AtencionActions[:0]
		found := false
		for _, act := range a.AtencionActions {
			if act.ID == actionID {
				found = true
				continue
			}
			kept = append(kept, act)
		}
		if !found {
			opErr = ErrEntradaNoEncontrada
			return
		}
		a.AtencionActions = kept
		st.UpsertAlerta(a)
		out = &a
	})
	return out, opErr
}

// AddContactLog appends one family-contact entry with the next sequential
// id inside the case.
func (s *alertaService) AddContactLog(ctx context.Context, userID, alertaID string, req *dto.ContactLogRequest) (*model.AlertaTemprana, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.AlertaTemprana
	var opErr error
	sess.Update(func(st *store.Store) {
		a, ok := st.AlertaByID(alertaID)
		if !ok {
			opErr = ErrAlertaNoEncontrada
			return
		}
		next := 1
		for _, c := range a.ContactLogs {
			if c.ID >= next {
				next = c.ID + 1
			}
		}
		a.ContactLogs = append(a.ContactLogs, model.ContactLog{
			ID:              next,
			Date:            req.Date,
			ContactMethod:   req.ContactMethod,
			PersonContacted: req.PersonContacted,
			Comments:        req.Comments,
		})
		st.UpsertAlerta(a)
		out = &a
	})
	return out, opErr
}

// RemoveContactLog deletes one family-contact entry from the case.
func (s *alertaService) RemoveContactLog(ctx context.Context, userID, alertaID string, logID int) (*model.AlertaTemprana, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.AlertaTemprana
	var opErr error
	sess.Update(func(st *store.Store) {
		a, ok := st.AlertaByID(alertaID)
		if !ok {
			opErr = ErrAlertaNoEncontrada
			return
		}
		kept := a.ContactLogs[:0]
		found := false
		for _, c := range a.ContactLogs {
			if c.ID == logID {
				found = true
				continue
			}
			kept = append(kept, c)
		}
		if !found {
			opErr = ErrEntradaNoEncontrada
			return
		}
		a.ContactLogs = kept
		st.UpsertAlerta(a)
		out = &a
	})
	return out, opErr
}
