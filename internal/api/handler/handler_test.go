package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/ai"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/api/middleware"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── mock services ──

type mockAuthService struct {
	registerResult *dto.UserResponse
	registerErr    error
	loginResult    *dto.TokenResponse
	loginErr       error
	refreshResult  *dto.TokenResponse
	refreshErr     error
	logoutErr      error
	meResult       *dto.UserResponse
	meErr          error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.UserResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}

type mockCursoService struct {
	createResult *dto.CursoResponse
	createErr    error
	updateResult *dto.CursoResponse
	updateErr    error
	deleteErr    error
	listResult   []dto.CursoResponse
	listErr      error
	activateErr  error
	activoResult *dto.CursoResponse
	activoErr    error
}

func (m *mockCursoService) Create(_ context.Context, _ string, _ *dto.CreateCursoRequest) (*dto.CursoResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockCursoService) Update(_ context.Context, _, _ string, _ *dto.UpdateCursoRequest) (*dto.CursoResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockCursoService) Delete(_ context.Context, _, _ string) error { return m.deleteErr }
func (m *mockCursoService) List(_ context.Context, _ string) ([]dto.CursoResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockCursoService) Activate(_ context.Context, _, _ string) error { return m.activateErr }
func (m *mockCursoService) GetActivo(_ context.Context, _ string) (*dto.CursoResponse, error) {
	return m.activoResult, m.activoErr
}

type mockAsistenciaService struct {
	ciclarResult model.AsistenciaStatus
	ciclarErr    error
	setErr       error
	gridResult   *dto.GridAsistenciaResponse
	gridErr      error
}

func (m *mockAsistenciaService) Ciclar(_ context.Context, _ string, _ *dto.CiclarAsistenciaRequest) (model.AsistenciaStatus, error) {
	return m.ciclarResult, m.ciclarErr
}
func (m *mockAsistenciaService) Set(_ context.Context, _ string, _ *dto.SetAsistenciaRequest) error {
	return m.setErr
}
func (m *mockAsistenciaService) Grid(_ context.Context, _, _ string, _ int, _ time.Month) (*dto.GridAsistenciaResponse, error) {
	return m.gridResult, m.gridErr
}

type mockEvaluacionService struct {
	configResult  *model.ConfiguracionCategoria
	configErr     error
	itemResult    *model.ItemEvaluable
	itemErr       error
	deleteErr     error
	listResult    []model.ItemEvaluable
	listErr       error
	califResult   *model.CalificacionItem
	califErr      error
	califsResult  []model.CalificacionItem
	califsListErr error
}

func (m *mockEvaluacionService) SetConfig(_ context.Context, _ string, _ *dto.ConfigCategoriaRequest) (*model.ConfiguracionCategoria, error) {
	return m.configResult, m.configErr
}
func (m *mockEvaluacionService) GetConfig(_ context.Context, _, _, _ string) (*model.ConfiguracionCategoria, error) {
	return m.configResult, m.configErr
}
func (m *mockEvaluacionService) CreateItem(_ context.Context, _ string, _ *dto.ItemRequest) (*model.ItemEvaluable, error) {
	return m.itemResult, m.itemErr
}
func (m *mockEvaluacionService) UpdateItem(_ context.Context, _, _ string, _ *dto.ItemRequest) (*model.ItemEvaluable, error) {
	return m.itemResult, m.itemErr
}
func (m *mockEvaluacionService) DeleteItem(_ context.Context, _, _ string) error { return m.deleteErr }
func (m *mockEvaluacionService) ListItems(_ context.Context, _, _, _ string) ([]model.ItemEvaluable, error) {
	return m.listResult, m.listErr
}
func (m *mockEvaluacionService) Calificar(_ context.Context, _, _ string, _ *dto.CalificarItemRequest) (*model.CalificacionItem, error) {
	return m.califResult, m.califErr
}
func (m *mockEvaluacionService) Calificaciones(_ context.Context, _, _ string) ([]model.CalificacionItem, error) {
	return m.califsResult, m.califsListErr
}

type mockAlertaService struct {
	createResult *model.AlertaTemprana
	createErr    error
	updateResult *model.AlertaTemprana
	updateErr    error
	deleteErr    error
	getResult    *model.AlertaTemprana
	getErr       error
	listResult   []dto.AlertaResponse
	listErr      error
	appendResult *model.AlertaTemprana
	appendErr    error
}

func (m *mockAlertaService) Create(_ context.Context, _ string, _ *dto.CreateAlertaRequest) (*model.AlertaTemprana, error) {
	return m.createResult, m.createErr
}
func (m *mockAlertaService) Update(_ context.Context, _, _ string, _ *dto.UpdateAlertaRequest) (*model.AlertaTemprana, error) {
	return m.updateResult, m.updateErr
}
func (m *mockAlertaService) Delete(_ context.Context, _, _ string) error { return m.deleteErr }
func (m *mockAlertaService) Get(_ context.Context, _, _ string) (*model.AlertaTemprana, error) {
	return m.getResult, m.getErr
}
func (m *mockAlertaService) List(_ context.Context, _ string) ([]dto.AlertaResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockAlertaService) AddAtencionAction(_ context.Context, _, _ string, _ *dto.AtencionActionRequest) (*model.AlertaTemprana, error) {
	return m.appendResult, m.appendErr
}
func (m *mockAlertaService) AddContactLog(_ context.Context, _, _ string, _ *dto.ContactLogRequest) (*model.AlertaTemprana, error) {
	return m.appendResult, m.appendErr
}
func (m *mockAlertaService) RemoveAtencionAction(_ context.Context, _, _ string, _ int) (*model.AlertaTemprana, error) {
	return m.appendResult, m.appendErr
}
func (m *mockAlertaService) RemoveContactLog(_ context.Context, _, _ string, _ int) (*model.AlertaTemprana, error) {
	return m.appendResult, m.appendErr
}

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	ics      string
	err      error
}

func (m *mockExportService) ResumenXLSX(_ context.Context, _, _, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) AsistenciaXLSX(_ context.Context, _, _ string, _ int, _ time.Month) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) CalendarioICS(_ context.Context, _ string) (string, string, error) {
	return m.ics, m.filename, m.err
}

type mockAIService struct {
	texto        string
	textoErr     error
	plan         []ai.AccionSugerida
	planErr      error
	chunks       []string
	companionErr error
}

func (m *mockAIService) ComentarioPrueba(_ context.Context, _ string, _ *dto.ComentarioPruebaRequest) (string, error) {
	return m.texto, m.textoErr
}
func (m *mockAIService) Comunicacion(_ context.Context, _ string, _ *dto.ComunicacionRequest) (string, error) {
	return m.texto, m.textoErr
}
func (m *mockAIService) ResumenEstudiante(_ context.Context, _ string, _ *dto.ResumenEstudianteAIRequest) (string, error) {
	return m.texto, m.textoErr
}
func (m *mockAIService) ComentarioInforme(_ context.Context, _ string, _ *dto.ComentarioInformeRequest) (string, error) {
	return m.texto, m.textoErr
}
func (m *mockAIService) PlanAtencion(_ context.Context, _ string, _ *dto.PlanAtencionRequest) ([]ai.AccionSugerida, error) {
	return m.plan, m.planErr
}
func (m *mockAIService) PerfilEntrada(_ context.Context, _ string, _ *dto.PerfilEntradaRequest) (string, error) {
	return m.texto, m.textoErr
}
func (m *mockAIService) PerfilSalida(_ context.Context, _ string, _ *dto.PerfilSalidaRequest) (string, error) {
	return m.texto, m.textoErr
}
func (m *mockAIService) Companion(_ context.Context, _ string, _ *dto.CompanionRequest, onChunk func(string) error) error {
	if m.companionErr != nil {
		return m.companionErr
	}
	for _, c := range m.chunks {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return nil
}

// ── helpers ──

// withUser plays the role of the JWT middleware for tests.
func withUser(c *gin.Context) {
	c.Set(middleware.UserIDKey, "test-user-id")
	c.Set(middleware.TokenJTIKey, "test-jti")
	c.Set(middleware.TokenExpKey, time.Now().Add(15*time.Minute))
	c.Next()
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ── AuthHandler ──

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "docente@mep.go.cr",
		Password: "contrasena-segura",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrCredencialesInvalidas})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email: "docente@mep.go.cr", Password: "mala",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

// ── CursoHandler ──

func TestCursoHandler_Create_Success(t *testing.T) {
	h := NewCursoHandler(&mockCursoService{
		createResult: &dto.CursoResponse{ID: "c1", Year: 2026, Activo: true},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cursos", jsonBody(dto.CreateCursoRequest{
		Year: 2026, TeacherName: "Docente Prueba",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/cursos", withUser, h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestCursoHandler_Create_Unauthenticated(t *testing.T) {
	h := NewCursoHandler(&mockCursoService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/cursos", jsonBody(dto.CreateCursoRequest{Year: 2026}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/cursos", h.Create) // no user in context
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestCursoHandler_GetActivo_NoneSelected(t *testing.T) {
	h := NewCursoHandler(&mockCursoService{activoErr: service.ErrCursoNoActivo})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/cursos/activo", nil)

	r := gin.New()
	r.GET("/cursos/activo", withUser, h.GetActivo)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}

// ── AsistenciaHandler ──

func TestAsistenciaHandler_Ciclar_Weekend(t *testing.T) {
	h := NewAsistenciaHandler(&mockAsistenciaService{ciclarErr: service.ErrDiaNoLectivo})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/asistencia/ciclar", jsonBody(dto.CiclarAsistenciaRequest{
		EstudianteID: "e1", PeriodoNombre: "I Semestre", Subject: "Ciencias", Date: "2026-03-07",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/asistencia/ciclar", withUser, h.Ciclar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

func TestAsistenciaHandler_Grid_BadMonth(t *testing.T) {
	h := NewAsistenciaHandler(&mockAsistenciaService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/asistencia/grid?subject=Ciencias&year=2026&month=13", nil)

	r := gin.New()
	r.GET("/asistencia/grid", withUser, h.Grid)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ── EvaluacionHandler ──

func TestEvaluacionHandler_Calificar_OutOfRange(t *testing.T) {
	h := NewEvaluacionHandler(&mockEvaluacionService{califErr: service.ErrPuntosFueraDeRango})

	puntos := 25.0
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/pruebas/items/item-1/calificaciones", jsonBody(dto.CalificarItemRequest{
		EstudianteID: "e1", Puntos: &puntos,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/pruebas/items/:id/calificaciones", withUser, h.Calificar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 15005 {
		t.Errorf("expected error code 15005, got %d", resp.Code)
	}
}

func TestEvaluacionHandler_CreateItem_ExceedsCategory(t *testing.T) {
	h := NewEvaluacionHandler(&mockEvaluacionService{itemErr: service.ErrPesoExcedeCategoria})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/tareas/items", jsonBody(dto.ItemRequest{
		PeriodoNombre: "I Semestre", Subject: "Ciencias",
		Nombre: "Tarea 9", Porcentaje: 50, PuntosTotales: 10,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/tareas/items", withUser, h.CreateItem)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}

// ── AlertaHandler ──

func TestAlertaHandler_Create_UnknownStudent(t *testing.T) {
	h := NewAlertaHandler(&mockAlertaService{createErr: service.ErrEstudianteNoEncontrado})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/alertas", jsonBody(dto.CreateAlertaRequest{
		EstudianteID: "no-existe",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/alertas", withUser, h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ── ExportHandler ──

func TestExportHandler_ResumenXLSX_Download(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("xlsx-bytes"),
		filename: "resumen_I Semestre_Ciencias.xlsx",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/resumen?periodo=I+Semestre&subject=Ciencias", nil)

	r := gin.New()
	r.GET("/export/resumen", withUser, h.ResumenXLSX)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Error("body should be the workbook bytes")
	}
}

// ── AIHandler ──

func TestAIHandler_Comunicacion_Unavailable(t *testing.T) {
	h := NewAIHandler(&mockAIService{textoErr: service.ErrAINoDisponible})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/ai/comunicacion", jsonBody(dto.ComunicacionRequest{
		EstudianteID: "e1", Motivo: "reunión",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/ai/comunicacion", withUser, h.Comunicacion)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestAIHandler_PlanAtencion_Success(t *testing.T) {
	h := NewAIHandler(&mockAIService{
		plan: []ai.AccionSugerida{{Action: "Reunión con la familia", Responsible: "Docente"}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/ai/plan-atencion", jsonBody(dto.PlanAtencionRequest{
		AlertaID: "a1",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/ai/plan-atencion", withUser, h.PlanAtencion)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Reunión con la familia") {
		t.Error("plan actions should appear in the payload")
	}
}

func TestAIHandler_Companion_Streams(t *testing.T) {
	h := NewAIHandler(&mockAIService{chunks: []string{"El grupo ", "va bien."}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/ai/companion", jsonBody(dto.CompanionRequest{
		Pregunta: "¿Cómo va el grupo?",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/ai/companion", withUser, h.Companion)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "El grupo") || !strings.Contains(body, "va bien.") {
		t.Errorf("chunks missing from stream: %q", body)
	}
	if !strings.Contains(body, "event:done") && !strings.Contains(body, "event: done") {
		t.Errorf("stream should end with a done event: %q", body)
	}
}
