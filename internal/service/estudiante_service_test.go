package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
)

func setupTestEstudianteService() (EstudianteService, *sessionHarness) {
	h := &sessionHarness{sessions: setupSessions(), userID: "u1"}
	return NewEstudianteService(h.sessions, zap.NewNop()), h
}

func TestEstudianteService_Create_RequiresActiveCourse(t *testing.T) {
	svc, h := setupTestEstudianteService()

	_, err := svc.Create(context.Background(), h.userID, &dto.CreateEstudianteRequest{
		Nombre: "Ana", PrimerApellido: "Mora", FechaIngreso: "2026-02-09",
	})
	if !errors.Is(err, ErrCursoNoActivo) {
		t.Errorf("expected ErrCursoNoActivo, got %v", err)
	}
}

func TestEstudianteService_Create_JoinsActiveCourse(t *testing.T) {
	svc, h := setupTestEstudianteService()
	seedCurso(h.sessions, h.userID)

	e, err := svc.Create(context.Background(), h.userID, &dto.CreateEstudianteRequest{
		Nombre: "Rosa", PrimerApellido: "Vega", FechaIngreso: "2026-03-02",
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if e.CursoLectivoID != "c1" {
		t.Errorf("student should belong to the active course, got %q", e.CursoLectivoID)
	}
	if e.Estado != model.EstadoActivo {
		t.Errorf("new students start as Activo, got %q", e.Estado)
	}
}

// ── CambiarEstado ──

func TestEstudianteService_CambiarEstado_NeedsFecha(t *testing.T) {
	svc, h := setupTestEstudianteService()
	seedCurso(h.sessions, h.userID)

	_, err := svc.CambiarEstado(context.Background(), h.userID, "e1", &dto.CambiarEstadoRequest{
		Estado: string(model.EstadoTrasladado),
	})
	if !errors.Is(err, ErrEstadoRequiereFecha) {
		t.Errorf("expected ErrEstadoRequiereFecha, got %v", err)
	}
}

func TestEstudianteService_CambiarEstado_RejectsDateBeforeIngreso(t *testing.T) {
	svc, h := setupTestEstudianteService()
	seedCurso(h.sessions, h.userID)

	_, err := svc.CambiarEstado(context.Background(), h.userID, "e1", &dto.CambiarEstadoRequest{
		Estado: string(model.EstadoDesertor), Fecha: "2026-01-15",
	})
	if !errors.Is(err, ErrFechaAnteriorIngreso) {
		t.Fatalf("expected ErrFechaAnteriorIngreso, got %v", err)
	}

	e, err := svc.Get(context.Background(), h.userID, "e1")
	if err != nil {
		t.Fatalf("Get should succeed: %v", err)
	}
	if e.Estado != model.EstadoActivo {
		t.Errorf("a rejected date must leave the student untouched, got estado %q", e.Estado)
	}
}

func TestEstudianteService_CambiarEstado_SwitchingBranchesClearsTheOther(t *testing.T) {
	svc, h := setupTestEstudianteService()
	seedCurso(h.sessions, h.userID)

	_, err := svc.CambiarEstado(context.Background(), h.userID, "e1", &dto.CambiarEstadoRequest{
		Estado: string(model.EstadoTrasladado), Fecha: "2026-04-10",
		Escuela: "Escuela La Uruca", Observaciones: "cambio de domicilio",
	})
	if err != nil {
		t.Fatalf("traslado should succeed: %v", err)
	}

	e, err := svc.CambiarEstado(context.Background(), h.userID, "e1", &dto.CambiarEstadoRequest{
		Estado: string(model.EstadoDesertor), Fecha: "2026-05-20", Observaciones: "abandono",
	})
	if err != nil {
		t.Fatalf("desercion should succeed: %v", err)
	}
	if e.FechaTraslado != "" || e.EscuelaTraslado != "" {
		t.Error("entering Desertor must clear the traslado metadata")
	}
	if e.FechaDesercion != "2026-05-20" {
		t.Errorf("FechaDesercion = %q, want 2026-05-20", e.FechaDesercion)
	}

	e, err = svc.CambiarEstado(context.Background(), h.userID, "e1", &dto.CambiarEstadoRequest{
		Estado: string(model.EstadoActivo),
	})
	if err != nil {
		t.Fatalf("return to Activo should succeed: %v", err)
	}
	if e.FechaDesercion != "" || e.ObservacionesDesercion != "" {
		t.Error("returning to Activo must clear both branches")
	}
}

func TestEstudianteService_Delete_Unknown(t *testing.T) {
	svc, h := setupTestEstudianteService()
	seedCurso(h.sessions, h.userID)

	if err := svc.Delete(context.Background(), h.userID, "no-existe"); !errors.Is(err, ErrEstudianteNoEncontrado) {
		t.Errorf("expected ErrEstudianteNoEncontrado, got %v", err)
	}
}
