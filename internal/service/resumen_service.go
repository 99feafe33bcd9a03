package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/grading"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/session"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/store"
)

// PeriodoAnual selects the annual composition instead of a single period.
const PeriodoAnual = "Anual"

// ResumenService computes grade summaries through the aggregation engine.
// Export and AI drafting build on it.
type ResumenService interface {
	Estudiante(ctx context.Context, userID, estudianteID, periodo, subject string) (*dto.ResumenEstudianteResponse, error)
	Grupo(ctx context.Context, userID, periodo, subject string) (*dto.ResumenGrupoResponse, error)
}

type resumenService struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// NewResumenService creates the ResumenService instance.
func NewResumenService(sessions *session.Manager, logger *zap.Logger) ResumenService {
	return &resumenService{sessions: sessions, logger: logger}
}

// calcular resolves one student's results for a named period, or the annual
// composition when periodo is Anual.
func calcular(st *store.Store, cursoID string, periodos [2]string, estudianteID, periodo, subject string) grading.ResultadoPeriodo {
	d := st.DatosDelCurso(cursoID)
	if periodo == PeriodoAnual {
		return grading.CalcularAnual(d, periodos, estudianteID, subject)
	}
	return grading.CalcularPeriodo(d, estudianteID, periodo, subject)
}

func (s *resumenService) Estudiante(ctx context.Context, userID, estudianteID, periodo, subject string) (*dto.ResumenEstudianteResponse, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *dto.ResumenEstudianteResponse
	var opErr error
	sess.View(func(st *store.Store) {
		curso, err := cursoConPeriodos(st)
		if err != nil {
			opErr = err
			return
		}
		if periodo != PeriodoAnual && !periodoDelCurso(curso, periodo) {
			opErr = ErrPeriodoNoExiste
			return
		}
		if !subjectDelCurso(curso, subject) {
			opErr = ErrSubjectNoExiste
			return
		}
		est, ok := st.EstudianteByID(estudianteID)
		if !ok || est.CursoLectivoID != curso.ID {
			opErr = ErrEstudianteNoEncontrado
			return
		}
		periodos := [2]string{curso.Periods[0].Nombre, curso.Periods[1].Nombre}
		out = &dto.ResumenEstudianteResponse{
			EstudianteID:     est.ID,
			NombreEstudiante: est.NombreCompleto(),
			PeriodoNombre:    periodo,
			Subject:          subject,
			Resultados:       calcular(st, curso.ID, periodos, est.ID, periodo, subject),
		}
	})
	return out, opErr
}

// Grupo computes the whole active roster for one view. Only Activo students
// appear.
func (s *resumenService) Grupo(ctx context.Context, userID, periodo, subject string) (*dto.ResumenGrupoResponse, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *dto.ResumenGrupoResponse
	var opErr error
	sess.View(func(st *store.Store) {
		curso, err := cursoConPeriodos(st)
		if err != nil {
			opErr = err
			return
		}
		if periodo != PeriodoAnual && !periodoDelCurso(curso, periodo) {
			opErr = ErrPeriodoNoExiste
			return
		}
		if !subjectDelCurso(curso, subject) {
			opErr = ErrSubjectNoExiste
			return
		}
		periodos := [2]string{curso.Periods[0].Nombre, curso.Periods[1].Nombre}
		resp := &dto.ResumenGrupoResponse{PeriodoNombre: periodo, Subject: subject}
		for _, est := range st.EstudiantesActivos(curso.ID) {
			resp.Estudiantes = append(resp.Estudiantes, dto.ResumenEstudianteResponse{
				EstudianteID:     est.ID,
				NombreEstudiante: est.NombreCompleto(),
				PeriodoNombre:    periodo,
				Subject:          subject,
				Resultados:       calcular(st, curso.ID, periodos, est.ID, periodo, subject),
			})
		}
		out = resp
	})
	return out, opErr
}
