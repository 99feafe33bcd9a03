package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/dto"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/store"
)

func setupTestAsistenciaService() (AsistenciaService, *sessionHarness) {
	h := &sessionHarness{sessions: setupSessions(), userID: "u1"}
	return NewAsistenciaService(h.sessions, zap.NewNop()), h
}

func celdaDePrueba(fecha string) *dto.CiclarAsistenciaRequest {
	return &dto.CiclarAsistenciaRequest{
		EstudianteID:  "e1",
		PeriodoNombre: "I Semestre",
		Subject:       "Ciencias",
		Date:          fecha,
	}
}

func TestAsistenciaService_Ciclar_StartsAtJustificada(t *testing.T) {
	svc, h := setupTestAsistenciaService()
	seedCurso(h.sessions, h.userID)

	status, err := svc.Ciclar(context.Background(), h.userID, celdaDePrueba("2026-03-02"))
	if err != nil {
		t.Fatalf("Ciclar should succeed: %v", err)
	}
	if status != model.AsistenciaJustificada {
		t.Errorf("first click should land on J, got %q", status)
	}
}

func TestAsistenciaService_Ciclar_FifthClickDeletesRecord(t *testing.T) {
	svc, h := setupTestAsistenciaService()
	seedCurso(h.sessions, h.userID)

	var status model.AsistenciaStatus
	var err error
	for i := 0; i < 5; i++ {
		status, err = svc.Ciclar(context.Background(), h.userID, celdaDePrueba("2026-03-02"))
		if err != nil {
			t.Fatalf("click %d failed: %v", i+1, err)
		}
	}
	if status != model.AsistenciaPresente {
		t.Errorf("fifth click should land back on Presente, got %q", status)
	}
	registros := ver(h.sessions, h.userID, func(st *store.Store) int {
		return len(st.Snapshot().AsistenciaRecords)
	})
	if registros != 0 {
		t.Errorf("a Presente cell must not keep a record, %d left", registros)
	}
}

func TestAsistenciaService_Ciclar_RejectsWeekend(t *testing.T) {
	svc, h := setupTestAsistenciaService()
	seedCurso(h.sessions, h.userID)

	// 2026-03-07 is a Saturday.
	_, err := svc.Ciclar(context.Background(), h.userID, celdaDePrueba("2026-03-07"))
	if !errors.Is(err, ErrDiaNoLectivo) {
		t.Errorf("expected ErrDiaNoLectivo, got %v", err)
	}
}

func TestAsistenciaService_Ciclar_UnknownPeriodAndSubject(t *testing.T) {
	svc, h := setupTestAsistenciaService()
	seedCurso(h.sessions, h.userID)

	req := celdaDePrueba("2026-03-02")
	req.PeriodoNombre = "III Trimestre"
	if _, err := svc.Ciclar(context.Background(), h.userID, req); !errors.Is(err, ErrPeriodoNoExiste) {
		t.Errorf("expected ErrPeriodoNoExiste, got %v", err)
	}

	req = celdaDePrueba("2026-03-02")
	req.Subject = "Quimica"
	if _, err := svc.Ciclar(context.Background(), h.userID, req); !errors.Is(err, ErrSubjectNoExiste) {
		t.Errorf("expected ErrSubjectNoExiste, got %v", err)
	}
}

func TestAsistenciaService_Set_EmptyStatusDeletes(t *testing.T) {
	svc, h := setupTestAsistenciaService()
	seedCurso(h.sessions, h.userID)

	set := &dto.SetAsistenciaRequest{
		EstudianteID: "e1", PeriodoNombre: "I Semestre", Subject: "Ciencias",
		Date: "2026-03-02", Status: "TI",
	}
	if err := svc.Set(context.Background(), h.userID, set); err != nil {
		t.Fatalf("Set should succeed: %v", err)
	}

	set.Status = ""
	if err := svc.Set(context.Background(), h.userID, set); err != nil {
		t.Fatalf("clearing Set should succeed: %v", err)
	}
	registros := ver(h.sessions, h.userID, func(st *store.Store) int {
		return len(st.Snapshot().AsistenciaRecords)
	})
	if registros != 0 {
		t.Errorf("setting Presente must remove the record, %d left", registros)
	}
}

func TestAsistenciaService_Grid_ShapeAndCells(t *testing.T) {
	svc, h := setupTestAsistenciaService()
	seedCurso(h.sessions, h.userID)

	if _, err := svc.Ciclar(context.Background(), h.userID, celdaDePrueba("2026-03-02")); err != nil {
		t.Fatalf("Ciclar should succeed: %v", err)
	}

	grid, err := svc.Grid(context.Background(), h.userID, "Ciencias", 2026, time.March)
	if err != nil {
		t.Fatalf("Grid should succeed: %v", err)
	}
	if len(grid.Dias) != 22 {
		t.Errorf("March 2026 has 22 school days, got %d", len(grid.Dias))
	}
	if len(grid.Filas) != 2 {
		t.Fatalf("expected one row per active student, got %d", len(grid.Filas))
	}
	for _, fila := range grid.Filas {
		if len(fila.Celdas) != len(grid.Dias) {
			t.Errorf("row %s has %d cells, want %d", fila.EstudianteID, len(fila.Celdas), len(grid.Dias))
		}
	}

	var e1 *dto.FilaAsistencia
	for i := range grid.Filas {
		if grid.Filas[i].EstudianteID == "e1" {
			e1 = &grid.Filas[i]
		}
	}
	if e1 == nil {
		t.Fatal("grid is missing the row for e1")
	}
	if e1.Celdas[0].Status != model.AsistenciaJustificada {
		t.Errorf("first school day of e1 should read J, got %q", e1.Celdas[0].Status)
	}
	if e1.Celdas[1].Status != model.AsistenciaPresente {
		t.Errorf("untouched cells should read Presente, got %q", e1.Celdas[1].Status)
	}
}
