package handler

import "github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth       *AuthHandler
	Curso      *CursoHandler
	Estudiante *EstudianteHandler
	Asistencia *AsistenciaHandler
	Tareas     *EvaluacionHandler
	Proyectos  *EvaluacionHandler
	Pruebas    *EvaluacionHandler
	Cotidiano  *CotidianoHandler
	Alerta     *AlertaHandler
	Resumen    *ResumenHandler
	Export     *ExportHandler
	AI         *AIHandler
}

// NewHandler wires the handlers to the service aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Curso:      NewCursoHandler(svc.Curso),
		Estudiante: NewEstudianteHandler(svc.Estudiante),
		Asistencia: NewAsistenciaHandler(svc.Asistencia),
		Tareas:     NewEvaluacionHandler(svc.Tareas),
		Proyectos:  NewEvaluacionHandler(svc.Proyectos),
		Pruebas:    NewEvaluacionHandler(svc.Pruebas),
		Cotidiano:  NewCotidianoHandler(svc.Cotidiano),
		Alerta:     NewAlertaHandler(svc.Alerta),
		Resumen:    NewResumenHandler(svc.Resumen),
		Export:     NewExportHandler(svc.Export),
		AI:         NewAIHandler(svc.AI),
	}
}
