package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/config"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/ai"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/grading"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/session"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/store"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/redis"
)

// ── AI drafting business errors ──

var (
	ErrAINoDisponible       = errors.New("la función de inteligencia artificial no está disponible")
	ErrAILimiteExcedido     = errors.New("se alcanzó el límite de solicitudes de IA, intente más tarde")
	ErrAIRespuestaInvalida  = errors.New("la respuesta del modelo no tiene el formato esperado")
	ErrPruebaNoEncontrada   = errors.New("la prueba no existe")
	ErrPruebaSinCalificar   = errors.New("el estudiante no tiene calificación en esa prueba")
	ErrPerfilSinComentarios = errors.New("se requiere al menos un comentario de materia para generar el perfil")
)

// AIService drafts teacher-facing text with the generation gateway. Every
// draft is a suggestion the teacher edits before sending; nothing is
// persisted here.
type AIService interface {
	ComentarioPrueba(ctx context.Context, userID string, req *dto.ComentarioPruebaRequest) (string, error)
	Comunicacion(ctx context.Context, userID string, req *dto.ComunicacionRequest) (string, error)
	ResumenEstudiante(ctx context.Context, userID string, req *dto.ResumenEstudianteAIRequest) (string, error)
	ComentarioInforme(ctx context.Context, userID string, req *dto.ComentarioInformeRequest) (string, error)
	PlanAtencion(ctx context.Context, userID string, req *dto.PlanAtencionRequest) ([]ai.AccionSugerida, error)
	PerfilEntrada(ctx context.Context, userID string, req *dto.PerfilEntradaRequest) (string, error)
	PerfilSalida(ctx context.Context, userID string, req *dto.PerfilSalidaRequest) (string, error)
	Companion(ctx context.Context, userID string, req *dto.CompanionRequest, onChunk func(string) error) error
}

type aiService struct {
	cfg      *config.AIConfig
	sessions *session.Manager
	resumen  ResumenService
	gateway  ai.Gateway
	rdb      *redis.Client
	logger   *zap.Logger
}

// NewAIService creates the AIService instance. A nil gateway disables every
// drafting feature.
func NewAIService(cfg *config.AIConfig, sessions *session.Manager, resumen ResumenService, gateway ai.Gateway, rdb *redis.Client, logger *zap.Logger) AIService {
	return &aiService{cfg: cfg, sessions: sessions, resumen: resumen, gateway: gateway, rdb: rdb, logger: logger}
}

// permitir runs the availability and rate-limit gate shared by every
// drafting operation. Without Redis the limit is not enforced.
func (s *aiService) permitir(ctx context.Context, userID string) error {
	if s.gateway == nil {
		return ErrAINoDisponible
	}
	if s.rdb == nil {
		return nil
	}
	ok, err := s.rdb.CheckRateLimit(ctx, "ai:"+userID, s.cfg.RateLimit, s.cfg.RateWindow)
	if err != nil {
		s.logger.Warn("ai rate limit check failed, allowing request", zap.Error(err))
		return nil
	}
	if !ok {
		return ErrAILimiteExcedido
	}
	return nil
}

func (s *aiService) estudiante(ctx context.Context, userID, estudianteID string) (model.Estudiante, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var est model.Estudiante
	var opErr error
	sess.View(func(st *store.Store) {
		e, ok := st.EstudianteByID(estudianteID)
		if !ok {
			opErr = ErrEstudianteNoEncontrado
			return
		}
		est = e
	})
	return est, opErr
}

func (s *aiService) ComentarioPrueba(ctx context.Context, userID string, req *dto.ComentarioPruebaRequest) (string, error) {
	if err := s.permitir(ctx, userID); err != nil {
		return "", err
	}

	sess := s.sessions.Acquire(ctx, userID)
	var prompt string
	var opErr error
	sess.View(func(st *store.Store) {
		est, ok := st.EstudianteByID(req.EstudianteID)
		if !ok {
			opErr = ErrEstudianteNoEncontrado
			return
		}
		prueba, ok := st.ItemByID(model.CategoriaPruebas, req.PruebaID)
		if !ok {
			opErr = ErrPruebaNoEncontrada
			return
		}
		calif, ok := st.CalificacionByID(model.CategoriaPruebas, model.CalificacionItemID(req.PruebaID, req.EstudianteID))
		if !ok || calif.PuntosObtenidos == nil {
			opErr = ErrPruebaSinCalificar
			return
		}
		prompt = ai.PromptComentarioPrueba(est, prueba, calif)
	})
	if opErr != nil {
		return "", opErr
	}
	return s.gateway.Generate(ctx, ai.Request{Prompt: prompt})
}

func (s *aiService) Comunicacion(ctx context.Context, userID string, req *dto.ComunicacionRequest) (string, error) {
	if err := s.permitir(ctx, userID); err != nil {
		return "", err
	}
	est, err := s.estudiante(ctx, userID, req.EstudianteID)
	if err != nil {
		return "", err
	}
	return s.gateway.Generate(ctx, ai.Request{Prompt: ai.PromptComunicacionEncargado(est, req.Motivo)})
}

func (s *aiService) ResumenEstudiante(ctx context.Context, userID string, req *dto.ResumenEstudianteAIRequest) (string, error) {
	if err := s.permitir(ctx, userID); err != nil {
		return "", err
	}
	est, err := s.estudiante(ctx, userID, req.EstudianteID)
	if err != nil {
		return "", err
	}
	return s.gateway.Generate(ctx, ai.Request{Prompt: ai.PromptResumenEstudiante(est)})
}

func (s *aiService) ComentarioInforme(ctx context.Context, userID string, req *dto.ComentarioInformeRequest) (string, error) {
	if err := s.permitir(ctx, userID); err != nil {
		return "", err
	}
	est, err := s.estudiante(ctx, userID, req.EstudianteID)
	if err != nil {
		return "", err
	}
	res, err := s.resumen.Estudiante(ctx, userID, req.EstudianteID, req.PeriodoNombre, req.Subject)
	if err != nil {
		return "", err
	}
	return s.gateway.Generate(ctx, ai.Request{
		Prompt: ai.PromptComentarioInforme(est, req.PeriodoNombre, res.Resultados),
	})
}

// PlanAtencion drafts the structured attention plan for a case, with the
// reply constrained to the plan schema.
func (s *aiService) PlanAtencion(ctx context.Context, userID string, req *dto.PlanAtencionRequest) ([]ai.AccionSugerida, error) {
	if err := s.permitir(ctx, userID); err != nil {
		return nil, err
	}

	sess := s.sessions.Acquire(ctx, userID)
	var prompt string
	var opErr error
	sess.View(func(st *store.Store) {
		alerta, ok := st.AlertaByID(req.AlertaID)
		if !ok {
			opErr = ErrAlertaNoEncontrada
			return
		}
		est, ok := st.EstudianteByID(alerta.EstudianteID)
		if !ok {
			opErr = ErrEstudianteNoEncontrado
			return
		}
		prompt = ai.PromptPlanAtencion(est, alerta)
	})
	if opErr != nil {
		return nil, opErr
	}

	raw, err := s.gateway.Generate(ctx, ai.Request{Prompt: prompt, JSONSchema: ai.SchemaPlanAtencion()})
	if err != nil {
		return nil, err
	}
	var plan ai.PlanAtencion
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		s.logger.Warn("plan de atención reply was not valid JSON", zap.Error(err))
		return nil, ErrAIRespuestaInvalida
	}
	return plan.PlanDeAtencion, nil
}

// PerfilEntrada drafts the formal entry profile for a student starting the
// year. The per-subject comments follow the course's subject order; at
// least one non-blank comment is required.
func (s *aiService) PerfilEntrada(ctx context.Context, userID string, req *dto.PerfilEntradaRequest) (string, error) {
	if err := s.permitir(ctx, userID); err != nil {
		return "", err
	}

	sess := s.sessions.Acquire(ctx, userID)
	var est model.Estudiante
	var curso model.CursoLectivo
	var opErr error
	sess.View(func(st *store.Store) {
		c, err := cursoActivo(st)
		if err != nil {
			opErr = err
			return
		}
		e, ok := st.EstudianteByID(req.EstudianteID)
		if !ok {
			opErr = ErrEstudianteNoEncontrado
			return
		}
		est, curso = e, c
	})
	if opErr != nil {
		return "", opErr
	}

	var lineas []string
	for _, subject := range curso.Subjects {
		if comentario := strings.TrimSpace(req.ComentariosPorMateria[subject]); comentario != "" {
			lineas = append(lineas, fmt.Sprintf("- %s: %s", subject, comentario))
		}
	}
	if len(lineas) == 0 {
		return "", ErrPerfilSinComentarios
	}

	prompt := ai.PromptPerfilEntrada(est, curso, strings.Join(lineas, "\n"),
		req.Socioafectiva, req.Psicomotriz, req.ApoyoHogar)
	return s.gateway.Generate(ctx, ai.Request{Prompt: prompt})
}

func (s *aiService) PerfilSalida(ctx context.Context, userID string, req *dto.PerfilSalidaRequest) (string, error) {
	if err := s.permitir(ctx, userID); err != nil {
		return "", err
	}

	sess := s.sessions.Acquire(ctx, userID)
	var est model.Estudiante
	var curso model.CursoLectivo
	var subjects []string
	var opErr error
	sess.View(func(st *store.Store) {
		c, err := cursoConPeriodos(st)
		if err != nil {
			opErr = err
			return
		}
		e, ok := st.EstudianteByID(req.EstudianteID)
		if !ok {
			opErr = ErrEstudianteNoEncontrado
			return
		}
		est, curso, subjects = e, c, c.Subjects
	})
	if opErr != nil {
		return "", opErr
	}

	// Annual average per subject; attendance is summed across all of them.
	var resumenAcademico string
	var asistenciaTotal grading.ResumenAsistencia
	for _, subject := range subjects {
		res, err := s.resumen.Estudiante(ctx, userID, req.EstudianteID, PeriodoAnual, subject)
		if err != nil {
			return "", err
		}
		resumenAcademico += fmt.Sprintf("- %s: %.2f%%\n", subject, res.Resultados.TotalPorcentaje)
		asistenciaTotal = asistenciaTotal.Sumar(res.Resultados.Asistencia)
	}

	prompt := ai.PromptPerfilSalida(est, curso, PeriodoAnual, resumenAcademico,
		asistenciaTotal, req.Socioafectiva, req.Psicomotriz, req.ApoyoHogar)
	return s.gateway.Generate(ctx, ai.Request{Prompt: prompt})
}

// Companion answers a free-form question over the active course's data,
// streaming the reply through onChunk.
func (s *aiService) Companion(ctx context.Context, userID string, req *dto.CompanionRequest, onChunk func(string) error) error {
	if err := s.permitir(ctx, userID); err != nil {
		return err
	}

	sess := s.sessions.Acquire(ctx, userID)
	var contexto []byte
	var opErr error
	sess.View(func(st *store.Store) {
		curso, err := cursoActivo(st)
		if err != nil {
			opErr = err
			return
		}
		payload := map[string]any{
			"curso":       curso,
			"estudiantes": st.EstudiantesDelCurso(curso.ID),
			"datos":       st.DatosDelCurso(curso.ID),
			"alertas":     st.AlertasDelCurso(curso.ID),
		}
		contexto, opErr = json.Marshal(payload)
	})
	if opErr != nil {
		return opErr
	}

	prompt := ai.PromptCompanion(string(contexto), req.Pregunta)
	return s.gateway.GenerateStream(ctx, ai.Request{Prompt: prompt}, onChunk)
}
