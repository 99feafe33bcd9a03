package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
)

func setupTestAlertaService(t *testing.T) (AlertaService, *sessionHarness) {
	t.Helper()
	h := &sessionHarness{sessions: setupSessions(), userID: "u1"}
	seedCurso(h.sessions, h.userID)
	return NewAlertaService(h.sessions, zap.NewNop()), h
}

func TestAlertaService_Create_Defaults(t *testing.T) {
	svc, h := setupTestAlertaService(t)

	a, err := svc.Create(context.Background(), h.userID, &dto.CreateAlertaRequest{
		EstudianteID: "e1", Observaciones: "bajo rendimiento sostenido",
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if a.EstadoAlerta != model.AlertaActivada {
		t.Errorf("new cases start Activada, got %q", a.EstadoAlerta)
	}
	if a.CheckedItems == nil {
		t.Error("CheckedItems must never be nil")
	}
	if a.FechaCreacion == "" {
		t.Error("FechaCreacion must be stamped on creation")
	}
}

func TestAlertaService_Create_StudentMustBelongToActiveCourse(t *testing.T) {
	svc, h := setupTestAlertaService(t)

	_, err := svc.Create(context.Background(), h.userID, &dto.CreateAlertaRequest{
		EstudianteID: "no-existe",
	})
	if !errors.Is(err, ErrEstudianteNoEncontrado) {
		t.Errorf("expected ErrEstudianteNoEncontrado, got %v", err)
	}
}

func TestAlertaService_Update_ClosingKeepsTheCase(t *testing.T) {
	svc, h := setupTestAlertaService(t)

	a, err := svc.Create(context.Background(), h.userID, &dto.CreateAlertaRequest{EstudianteID: "e1"})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}

	estado := model.AlertaCerrada
	justificacion := "la situación fue atendida por la familia"
	if _, err := svc.Update(context.Background(), h.userID, a.ID, &dto.UpdateAlertaRequest{
		EstadoAlerta: &estado, JustificacionEliminada: &justificacion,
	}); err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}

	got, err := svc.Get(context.Background(), h.userID, a.ID)
	if err != nil {
		t.Fatalf("a closed case must still be retrievable: %v", err)
	}
	if got.EstadoAlerta != model.AlertaCerrada || got.JustificacionEliminada != justificacion {
		t.Errorf("closed case not persisted as sent: %+v", got)
	}
}

func TestAlertaService_AddAtencionAction_SequentialIDs(t *testing.T) {
	svc, h := setupTestAlertaService(t)

	a, err := svc.Create(context.Background(), h.userID, &dto.CreateAlertaRequest{EstudianteID: "e2"})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}

	for _, action := range []string{"Reunión con la familia", "Seguimiento semanal", "Referir a orientación"} {
		if a, err = svc.AddAtencionAction(context.Background(), h.userID, a.ID, &dto.AtencionActionRequest{
			Action: action, Responsible: "Docente",
		}); err != nil {
			t.Fatalf("AddAtencionAction should succeed: %v", err)
		}
	}
	if len(a.AtencionActions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(a.AtencionActions))
	}
	for i, act := range a.AtencionActions {
		if act.ID != i+1 {
			t.Errorf("action %d has id %d, want %d", i, act.ID, i+1)
		}
	}
}

func TestAlertaService_RemoveAtencionAction(t *testing.T) {
	svc, h := setupTestAlertaService(t)

	a, err := svc.Create(context.Background(), h.userID, &dto.CreateAlertaRequest{EstudianteID: "e1"})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	for _, action := range []string{"Reunión con la familia", "Seguimiento semanal"} {
		if a, err = svc.AddAtencionAction(context.Background(), h.userID, a.ID, &dto.AtencionActionRequest{
			Action: action, Responsible: "Docente",
		}); err != nil {
			t.Fatalf("AddAtencionAction should succeed: %v", err)
		}
	}

	a, err = svc.RemoveAtencionAction(context.Background(), h.userID, a.ID, 1)
	if err != nil {
		t.Fatalf("RemoveAtencionAction should succeed: %v", err)
	}
	if len(a.AtencionActions) != 1 || a.AtencionActions[0].ID != 2 {
		t.Fatalf("expected only action 2 to remain, got %+v", a.AtencionActions)
	}

	if _, err = svc.RemoveAtencionAction(context.Background(), h.userID, a.ID, 99); !errors.Is(err, ErrEntradaNoEncontrada) {
		t.Errorf("removing an unknown entry should fail with ErrEntradaNoEncontrada, got %v", err)
	}
}

func TestAlertaService_AddContactLog_SequentialIDs(t *testing.T) {
	svc, h := setupTestAlertaService(t)

	a, err := svc.Create(context.Background(), h.userID, &dto.CreateAlertaRequest{EstudianteID: "e1"})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}

	a, err = svc.AddContactLog(context.Background(), h.userID, a.ID, &dto.ContactLogRequest{
		Date: "2026-05-04", ContactMethod: "Llamada", PersonContacted: "Madre",
	})
	if err != nil {
		t.Fatalf("AddContactLog should succeed: %v", err)
	}
	a, err = svc.AddContactLog(context.Background(), h.userID, a.ID, &dto.ContactLogRequest{
		Date: "2026-05-11", ContactMethod: "Mensaje", PersonContacted: "Padre",
	})
	if err != nil {
		t.Fatalf("AddContactLog should succeed: %v", err)
	}
	if len(a.ContactLogs) != 2 || a.ContactLogs[1].ID != 2 {
		t.Errorf("contact log ids must be sequential, got %+v", a.ContactLogs)
	}
}

func TestAlertaService_List_JoinsStudentName(t *testing.T) {
	svc, h := setupTestAlertaService(t)

	if _, err := svc.Create(context.Background(), h.userID, &dto.CreateAlertaRequest{EstudianteID: "e1"}); err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}

	list, err := svc.List(context.Background(), h.userID)
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 case, got %d", len(list))
	}
	if list[0].NombreEstudiante != "Ana Mora" {
		t.Errorf("NombreEstudiante = %q, want Ana Mora", list[0].NombreEstudiante)
	}
}
