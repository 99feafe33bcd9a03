package service

import (
	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/config"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/ai"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/repository"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/session"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/jwt"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/redis"
)

// Service is the aggregate entry point for all business logic. The three
// weighted grading families share one implementation, instantiated per
// category.
type Service struct {
	Auth       AuthService
	Curso      CursoService
	Estudiante EstudianteService
	Asistencia AsistenciaService
	Tareas     EvaluacionService
	Proyectos  EvaluacionService
	Pruebas    EvaluacionService
	Cotidiano  CotidianoService
	Alerta     AlertaService
	Resumen    ResumenService
	Export     ExportService
	AI         AIService
}

// NewService wires every service. rdb and gateway may be nil: auth then
// skips the blacklist and AI features report themselves unavailable.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	sessions *session.Manager,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	gateway ai.Gateway,
	logger *zap.Logger,
) *Service {
	resumen := NewResumenService(sessions, logger)
	return &Service{
		Auth:       NewAuthService(repo, sessions, jwtMgr, rdb, logger),
		Curso:      NewCursoService(sessions, logger),
		Estudiante: NewEstudianteService(sessions, logger),
		Asistencia: NewAsistenciaService(sessions, logger),
		Tareas:     NewEvaluacionService(model.CategoriaTareas, sessions, logger),
		Proyectos:  NewEvaluacionService(model.CategoriaProyectos, sessions, logger),
		Pruebas:    NewEvaluacionService(model.CategoriaPruebas, sessions, logger),
		Cotidiano:  NewCotidianoService(sessions, logger),
		Alerta:     NewAlertaService(sessions, logger),
		Resumen:    resumen,
		Export:     NewExportService(sessions, resumen, logger),
		AI:         NewAIService(&cfg.AI, sessions, resumen, gateway, rdb, logger),
	}
}
