package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
)

func setupTestResumenService(t *testing.T) (ResumenService, EvaluacionService, *sessionHarness) {
	t.Helper()
	h := &sessionHarness{sessions: setupSessions(), userID: "u1"}
	seedCurso(h.sessions, h.userID)
	pruebas := NewEvaluacionService(model.CategoriaPruebas, h.sessions, zap.NewNop())
	return NewResumenService(h.sessions, zap.NewNop()), pruebas, h
}

func cerca(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestResumenService_Estudiante_WeightedCategory(t *testing.T) {
	resumen, pruebas, h := setupTestResumenService(t)

	if _, err := pruebas.SetConfig(context.Background(), h.userID, configDePrueba(35, true)); err != nil {
		t.Fatalf("SetConfig should succeed: %v", err)
	}
	item, err := pruebas.CreateItem(context.Background(), h.userID, itemDePrueba("Quiz 1", 30, 20))
	if err != nil {
		t.Fatalf("CreateItem should succeed: %v", err)
	}
	if _, err := pruebas.Calificar(context.Background(), h.userID, item.ID, &dto.CalificarItemRequest{
		EstudianteID: "e1", Puntos: ptr(16),
	}); err != nil {
		t.Fatalf("Calificar should succeed: %v", err)
	}

	res, err := resumen.Estudiante(context.Background(), h.userID, "e1", "I Semestre", "Ciencias")
	if err != nil {
		t.Fatalf("Estudiante should succeed: %v", err)
	}
	p := res.Resultados.Pruebas
	if !p.Configurado || !p.Evaluado {
		t.Fatalf("pruebas should be configured and evaluated: %+v", p)
	}
	// 16/20 points on a weight of 30 earn 24 of the category.
	if !cerca(p.Porcentaje, 24) {
		t.Errorf("Porcentaje = %v, want 24", p.Porcentaje)
	}
	if !cerca(p.Nota, 80) {
		t.Errorf("Nota = %v, want 80", p.Nota)
	}
	if !cerca(res.Resultados.TotalPorcentaje, 24) {
		t.Errorf("TotalPorcentaje = %v, want 24", res.Resultados.TotalPorcentaje)
	}
}

func TestResumenService_Estudiante_AnnualFallsBackToSinglePeriod(t *testing.T) {
	resumen, pruebas, h := setupTestResumenService(t)

	if _, err := pruebas.SetConfig(context.Background(), h.userID, configDePrueba(35, true)); err != nil {
		t.Fatalf("SetConfig should succeed: %v", err)
	}
	item, err := pruebas.CreateItem(context.Background(), h.userID, itemDePrueba("Quiz 1", 30, 20))
	if err != nil {
		t.Fatalf("CreateItem should succeed: %v", err)
	}
	if _, err := pruebas.Calificar(context.Background(), h.userID, item.ID, &dto.CalificarItemRequest{
		EstudianteID: "e1", Puntos: ptr(16),
	}); err != nil {
		t.Fatalf("Calificar should succeed: %v", err)
	}

	res, err := resumen.Estudiante(context.Background(), h.userID, "e1", PeriodoAnual, "Ciencias")
	if err != nil {
		t.Fatalf("annual summary should succeed: %v", err)
	}
	// Only the first period is configured, so the year passes it through.
	if !cerca(res.Resultados.Pruebas.Porcentaje, 24) || !cerca(res.Resultados.Pruebas.Nota, 80) {
		t.Errorf("annual pruebas = %+v, want the single period passed through", res.Resultados.Pruebas)
	}
}

func TestResumenService_Estudiante_ValidatesView(t *testing.T) {
	resumen, _, h := setupTestResumenService(t)

	if _, err := resumen.Estudiante(context.Background(), h.userID, "e1", "III Trimestre", "Ciencias"); !errors.Is(err, ErrPeriodoNoExiste) {
		t.Errorf("expected ErrPeriodoNoExiste, got %v", err)
	}
	if _, err := resumen.Estudiante(context.Background(), h.userID, "e1", "I Semestre", "Quimica"); !errors.Is(err, ErrSubjectNoExiste) {
		t.Errorf("expected ErrSubjectNoExiste, got %v", err)
	}
	if _, err := resumen.Estudiante(context.Background(), h.userID, "no-existe", "I Semestre", "Ciencias"); !errors.Is(err, ErrEstudianteNoEncontrado) {
		t.Errorf("expected ErrEstudianteNoEncontrado, got %v", err)
	}
}

func TestResumenService_Grupo_OnlyActiveStudents(t *testing.T) {
	resumen, _, h := setupTestResumenService(t)

	estudiantes := NewEstudianteService(h.sessions, zap.NewNop())
	if _, err := estudiantes.CambiarEstado(context.Background(), h.userID, "e2", &dto.CambiarEstadoRequest{
		Estado: string(model.EstadoTrasladado), Fecha: "2026-04-01",
	}); err != nil {
		t.Fatalf("CambiarEstado should succeed: %v", err)
	}

	grupo, err := resumen.Grupo(context.Background(), h.userID, "I Semestre", "Ciencias")
	if err != nil {
		t.Fatalf("Grupo should succeed: %v", err)
	}
	if len(grupo.Estudiantes) != 1 || grupo.Estudiantes[0].EstudianteID != "e1" {
		t.Errorf("only active students belong in the group view, got %+v", grupo.Estudiantes)
	}
}
