package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/grading"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/session"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/store"
)

// ── cotidiano business errors ──

var (
	ErrIndicadorNoEncontrado   = errors.New("el indicador no existe")
	ErrIndicadorDuplicado      = errors.New("ya existe un indicador con esa descripción en la materia")
	ErrIndicadorNoSeleccionado = errors.New("el indicador no está seleccionado para este periodo y materia")
	ErrArchivoSinIndicadores   = errors.New("el archivo no contiene indicadores en la primera columna")
)

// CotidianoService manages the rubric category: the indicator bank, the
// per-period selection and level grading.
type CotidianoService interface {
	SetConfig(ctx context.Context, userID string, req *dto.ConfigCategoriaRequest) (*model.ConfiguracionCategoria, error)
	CreateIndicador(ctx context.Context, userID string, req *dto.IndicadorRequest) (*model.Indicador, error)
	UpdateIndicador(ctx context.Context, userID, id string, req *dto.IndicadorRequest) (*model.Indicador, error)
	DeleteIndicador(ctx context.Context, userID, id string) error
	ListIndicadores(ctx context.Context, userID, subject string) ([]model.Indicador, error)
	ImportIndicadores(ctx context.Context, userID string, req *dto.ImportIndicadoresRequest) (*dto.ImportIndicadoresResponse, error)
	ImportIndicadoresXLSX(ctx context.Context, userID, subject string, r io.Reader) (*dto.ImportIndicadoresResponse, error)
	SetSeleccion(ctx context.Context, userID string, req *dto.SeleccionCotidianoRequest) (*model.EvaluacionCotidiano, error)
	GetSeleccion(ctx context.Context, userID, periodo, subject string) (*model.EvaluacionCotidiano, error)
	CiclarNivel(ctx context.Context, userID string, req *dto.CiclarNivelRequest) (model.NivelRubrica, error)
}

type cotidianoService struct {
	sessions *session.Manager
	logger   *zap.Logger
}

// NewCotidianoService creates the CotidianoService instance.
func NewCotidianoService(sessions *session.Manager, logger *zap.Logger) CotidianoService {
	return &cotidianoService{sessions: sessions, logger: logger}
}

func (s *cotidianoService) SetConfig(ctx context.Context, userID string, req *dto.ConfigCategoriaRequest) (*model.ConfiguracionCategoria, error) {
	req.Habilitada = true
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.ConfiguracionCategoria
	var opErr error
	sess.Update(func(st *store.Store) {
		out, opErr = setConfigCategoria(st, model.CategoriaCotidiano, req)
	})
	return out, opErr
}

// descripcionEnBanco reports a duplicate description within (curso,
// subject), ignoring case and surrounding spaces.
func descripcionEnBanco(st *store.Store, cursoID, subject, descripcion, excluirID string) bool {
	want := strings.ToLower(strings.TrimSpace(descripcion))
	for _, i := range st.IndicadoresDe(cursoID, subject) {
		if i.ID != excluirID && strings.ToLower(strings.TrimSpace(i.Descripcion)) == want {
			return true
		}
	}
	return false
}

func (s *cotidianoService) CreateIndicador(ctx context.Context, userID string, req *dto.IndicadorRequest) (*model.Indicador, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.Indicador
	var opErr error
	sess.Update(func(st *store.Store) {
		curso, err := cursoActivo(st)
		if err != nil {
			opErr = err
			return
		}
		if !subjectDelCurso(curso, req.Subject) {
			opErr = ErrSubjectNoExiste
			return
		}
		if descripcionEnBanco(st, curso.ID, req.Subject, req.Descripcion, "") {
			opErr = ErrIndicadorDuplicado
			return
		}
		ind := model.Indicador{
			ID:             uuid.NewString(),
			CursoLectivoID: curso.ID,
			Subject:        req.Subject,
			Descripcion:    strings.TrimSpace(req.Descripcion),
		}
		st.UpsertIndicador(ind)
		out = &ind
	})
	return out, opErr
}

func (s *cotidianoService) UpdateIndicador(ctx context.Context, userID, id string, req *dto.IndicadorRequest) (*model.Indicador, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.Indicador
	var opErr error
	sess.Update(func(st *store.Store) {
		ind, ok := st.IndicadorByID(id)
		if !ok {
			opErr = ErrIndicadorNoEncontrado
			return
		}
		if descripcionEnBanco(st, ind.CursoLectivoID, ind.Subject, req.Descripcion, id) {
			opErr = ErrIndicadorDuplicado
			return
		}
		ind.Descripcion = strings.TrimSpace(req.Descripcion)
		st.UpsertIndicador(ind)
		out = &ind
	})
	return out, opErr
}

// DeleteIndicador removes a bank indicator from every period selection and
// drops its grades.
func (s *cotidianoService) DeleteIndicador(ctx context.Context, userID, id string) error {
	sess := s.sessions.Acquire(ctx, userID)
	var opErr error
	sess.Update(func(st *store.Store) {
		if _, ok := st.IndicadorByID(id); !ok {
			opErr = ErrIndicadorNoEncontrado
			return
		}
		st.DeleteIndicador(id)
	})
	return opErr
}

func (s *cotidianoService) ListIndicadores(ctx context.Context, userID, subject string) ([]model.Indicador, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out []model.Indicador
	var opErr error
	sess.View(func(st *store.Store) {
		curso, err := cursoActivo(st)
		if err != nil {
			opErr = err
			return
		}
		out = st.IndicadoresDe(curso.ID, subject)
	})
	return out, opErr
}

// ImportIndicadores adds many descriptions at once. Duplicates, whether of
// the bank or within the batch itself, are counted and skipped.
func (s *cotidianoService) ImportIndicadores(ctx context.Context, userID string, req *dto.ImportIndicadoresRequest) (*dto.ImportIndicadoresResponse, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *dto.ImportIndicadoresResponse
	var opErr error
	sess.Update(func(st *store.Store) {
		curso, err := cursoActivo(st)
		if err != nil {
			opErr = err
			return
		}
		if !subjectDelCurso(curso, req.Subject) {
			opErr = ErrSubjectNoExiste
			return
		}
		res := &dto.ImportIndicadoresResponse{}
		for _, desc := range req.Descripciones {
			desc = strings.TrimSpace(desc)
			if desc == "" {
				continue
			}
			if descripcionEnBanco(st, curso.ID, req.Subject, desc, "") {
				res.Duplicados++
				continue
			}
			st.UpsertIndicador(model.Indicador{
				ID:             uuid.NewString(),
				CursoLectivoID: curso.ID,
				Subject:        req.Subject,
				Descripcion:    desc,
			})
			res.Importados++
		}
		out = res
	})
	return out, opErr
}

// ImportIndicadoresXLSX reads descriptions from the first column of the
// first sheet, skipping a header row when one is detected.
func (s *cotidianoService) ImportIndicadoresXLSX(ctx context.Context, userID, subject string, r io.Reader) (*dto.ImportIndicadoresResponse, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var descripciones []string
	for i, row := range rows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if i == 0 && strings.EqualFold(cell, "indicador") {
			continue
		}
		descripciones = append(descripciones, cell)
	}
	if len(descripciones) == 0 {
		return nil, ErrArchivoSinIndicadores
	}
	s.logger.Info("importing indicadores from xlsx",
		zap.String("user_id", userID), zap.Int("rows", len(descripciones)))
	return s.ImportIndicadores(ctx, userID, &dto.ImportIndicadoresRequest{
		Subject:       subject,
		Descripciones: descripciones,
	})
}

// SetSeleccion picks which bank indicators are graded in one (periodo,
// subject). Every id must exist in the bank.
func (s *cotidianoService) SetSeleccion(ctx context.Context, userID string, req *dto.SeleccionCotidianoRequest) (*model.EvaluacionCotidiano, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.EvaluacionCotidiano
	var opErr error
	sess.Update(func(st *store.Store) {
		curso, err := cursoConPeriodos(st)
		if err != nil {
			opErr = err
			return
		}
		if !periodoDelCurso(curso, req.PeriodoNombre) {
			opErr = ErrPeriodoNoExiste
			return
		}
		if !subjectDelCurso(curso, req.Subject) {
			opErr = ErrSubjectNoExiste
			return
		}
		for _, id := range req.IndicadorIDs {
			if _, ok := st.IndicadorByID(id); !ok {
				opErr = ErrIndicadorNoEncontrado
				return
			}
		}
		ev := model.EvaluacionCotidiano{
			ID:             model.ConfigCategoriaID(curso.ID, req.PeriodoNombre, req.Subject),
			CursoLectivoID: curso.ID,
			PeriodoNombre:  req.PeriodoNombre,
			Subject:        req.Subject,
			IndicadorIDs:   req.IndicadorIDs,
		}
		st.UpsertEvaluacionCotidiano(ev)
		out = &ev
	})
	return out, opErr
}

func (s *cotidianoService) GetSeleccion(ctx context.Context, userID, periodo, subject string) (*model.EvaluacionCotidiano, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var out *model.EvaluacionCotidiano
	var opErr error
	sess.View(func(st *store.Store) {
		curso, err := cursoActivo(st)
		if err != nil {
			opErr = err
			return
		}
		ev, ok := st.EvaluacionCotidiano(curso.ID, periodo, subject)
		if !ok {
			out = &model.EvaluacionCotidiano{
				ID:             model.ConfigCategoriaID(curso.ID, periodo, subject),
				CursoLectivoID: curso.ID,
				PeriodoNombre:  periodo,
				Subject:        subject,
			}
			return
		}
		out = &ev
	})
	return out, opErr
}

// CiclarNivel advances one cell through N/O -> 4 -> 3 -> 2 -> 1 -> N/O,
// deleting the record when it lands back on No Observado. It returns the
// level the cell landed on.
func (s *cotidianoService) CiclarNivel(ctx context.Context, userID string, req *dto.CiclarNivelRequest) (model.NivelRubrica, error) {
	sess := s.sessions.Acquire(ctx, userID)
	var next model.NivelRubrica
	var opErr error
	sess.Update(func(st *store.Store) {
		curso, err := cursoConPeriodos(st)
		if err != nil {
			opErr = err
			return
		}
		if _, ok := st.EstudianteByID(req.EstudianteID); !ok {
			opErr = ErrEstudianteNoEncontrado
			return
		}
		ev, ok := st.EvaluacionCotidiano(curso.ID, req.PeriodoNombre, req.Subject)
		if !ok || !contiene(ev.IndicadorIDs, req.IndicadorID) {
			opErr = ErrIndicadorNoSeleccionado
			return
		}

		id := model.CalificacionIndicadorID(req.EstudianteID, req.IndicadorID, req.PeriodoNombre, req.Subject)
		current := model.NivelNoObservado
		if c, ok := st.CalificacionIndicadorByID(id); ok {
			current = c.Nivel
		}
		next = grading.CycleNivel(current)
		if next == model.NivelNoObservado {
			st.DeleteCalificacionIndicador(id)
			return
		}
		st.UpsertCalificacionIndicador(model.CalificacionIndicador{
			ID:             id,
			EstudianteID:   req.EstudianteID,
			IndicadorID:    req.IndicadorID,
			CursoLectivoID: curso.ID,
			PeriodoNombre:  req.PeriodoNombre,
			Subject:        req.Subject,
			Nivel:          next,
		})
	})
	return next, opErr
}

func contiene(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
