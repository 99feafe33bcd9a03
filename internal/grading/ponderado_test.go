package grading

import (
	"testing"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
)

func ptr(f float64) *float64 { return &f }

func configPruebas(habilitada bool) *model.ConfiguracionCategoria {
	return &model.ConfiguracionCategoria{
		ID:                "c1-I Semestre-Ciencias",
		PeriodoNombre:     "I Semestre",
		Subject:           "Ciencias",
		PorcentajeGeneral: 30,
		Habilitada:        habilitada,
	}
}

// ── CalcularPonderado ──

func TestCalcularPonderado_SingleItem(t *testing.T) {
	// 16 of 20 points on an item worth 30 percentage points: the student
	// earns 24.00 of the final grade, on an 80.00 performance.
	items := []model.ItemEvaluable{{ID: "q1", Porcentaje: 30, PuntosTotales: 20}}
	califs := []model.CalificacionItem{{ItemID: "q1", EstudianteID: "e1", PuntosObtenidos: ptr(16)}}

	r := CalcularPonderado(configPruebas(true), true, items, califs, "e1")
	if !r.Configurado || !r.Evaluado {
		t.Fatalf("expected configurado and evaluado, got %+v", r)
	}
	if !casi(r.Porcentaje, 24) {
		t.Errorf("Porcentaje = %v, want 24.00", r.Porcentaje)
	}
	if !casi(r.Nota, 80) {
		t.Errorf("Nota = %v, want 80.00", r.Nota)
	}
}

func TestCalcularPonderado_UngradedExcludedFromNota(t *testing.T) {
	// A second, ungraded item must not dilute Nota: the 80 performance on
	// the graded item stands until the second is graded.
	items := []model.ItemEvaluable{
		{ID: "q1", Porcentaje: 15, PuntosTotales: 20},
		{ID: "q2", Porcentaje: 15, PuntosTotales: 10},
	}
	califs := []model.CalificacionItem{{ItemID: "q1", EstudianteID: "e1", PuntosObtenidos: ptr(16)}}

	r := CalcularPonderado(configPruebas(true), true, items, califs, "e1")
	if !casi(r.Porcentaje, 12) {
		t.Errorf("Porcentaje = %v, want 12.00", r.Porcentaje)
	}
	if !casi(r.Nota, 80) {
		t.Errorf("Nota = %v, want 80.00 (ungraded weight excluded)", r.Nota)
	}
}

func TestCalcularPonderado_NoEntregadoCountsWeight(t *testing.T) {
	// Not handing in an item scores zero but the weight stays in the
	// denominator, unlike an ungraded item.
	items := []model.ItemEvaluable{
		{ID: "q1", Porcentaje: 15, PuntosTotales: 20},
		{ID: "q2", Porcentaje: 15, PuntosTotales: 10},
	}
	califs := []model.CalificacionItem{
		{ItemID: "q1", EstudianteID: "e1", PuntosObtenidos: ptr(16)},
		{ItemID: "q2", EstudianteID: "e1", NoEntregado: true},
	}

	r := CalcularPonderado(configPruebas(true), true, items, califs, "e1")
	if !casi(r.Porcentaje, 12) {
		t.Errorf("Porcentaje = %v, want 12.00", r.Porcentaje)
	}
	if !casi(r.Nota, 40) {
		t.Errorf("Nota = %v, want 40.00 (12 of 30 counted)", r.Nota)
	}
}

func TestCalcularPonderado_NoEntregadoOverridesPoints(t *testing.T) {
	items := []model.ItemEvaluable{{ID: "q1", Porcentaje: 30, PuntosTotales: 20}}
	califs := []model.CalificacionItem{{ItemID: "q1", EstudianteID: "e1", PuntosObtenidos: ptr(16), NoEntregado: true}}

	r := CalcularPonderado(configPruebas(true), true, items, califs, "e1")
	if r.Porcentaje != 0 || r.Nota != 0 {
		t.Errorf("NoEntregado must force zero, got %+v", r)
	}
}

func TestCalcularPonderado_FractionalWeight(t *testing.T) {
	// Weights below one percentage point still form the Nota denominator:
	// full marks on a 0.5-point item is a 100, not a 50.
	items := []model.ItemEvaluable{{ID: "q1", Porcentaje: 0.5, PuntosTotales: 10}}
	califs := []model.CalificacionItem{{ItemID: "q1", EstudianteID: "e1", PuntosObtenidos: ptr(10)}}

	r := CalcularPonderado(configPruebas(true), true, items, califs, "e1")
	if !casi(r.Porcentaje, 0.5) {
		t.Errorf("Porcentaje = %v, want 0.50", r.Porcentaje)
	}
	if !casi(r.Nota, 100) {
		t.Errorf("Nota = %v, want 100.00 (full marks on the only item)", r.Nota)
	}
}

func TestCalcularPonderado_DisabledCategory(t *testing.T) {
	items := []model.ItemEvaluable{{ID: "q1", Porcentaje: 30, PuntosTotales: 20}}
	califs := []model.CalificacionItem{{ItemID: "q1", EstudianteID: "e1", PuntosObtenidos: ptr(16)}}

	r := CalcularPonderado(configPruebas(false), true, items, califs, "e1")
	if r.Configurado || r.Evaluado || r.Porcentaje != 0 {
		t.Errorf("disabled category must read as unconfigured, got %+v", r)
	}
}

func TestCalcularPonderado_HabilitadaNotRequiredForTareas(t *testing.T) {
	config := configPruebas(false)
	items := []model.ItemEvaluable{{ID: "t1", Porcentaje: 10, PuntosTotales: 10}}
	califs := []model.CalificacionItem{{ItemID: "t1", EstudianteID: "e1", PuntosObtenidos: ptr(10)}}

	r := CalcularPonderado(config, false, items, califs, "e1")
	if !r.Configurado || !casi(r.Porcentaje, 10) {
		t.Errorf("tareas should not require Habilitada, got %+v", r)
	}
}

func TestCalcularPonderado_NoItems(t *testing.T) {
	r := CalcularPonderado(configPruebas(true), true, nil, nil, "e1")
	if !r.Configurado {
		t.Error("expected Configurado")
	}
	if r.Evaluado {
		t.Error("no items means not evaluated")
	}
}

func TestCalcularPonderado_OtherStudentsIgnored(t *testing.T) {
	items := []model.ItemEvaluable{{ID: "q1", Porcentaje: 30, PuntosTotales: 20}}
	califs := []model.CalificacionItem{{ItemID: "q1", EstudianteID: "e2", PuntosObtenidos: ptr(20)}}

	r := CalcularPonderado(configPruebas(true), true, items, califs, "e1")
	if r.Porcentaje != 0 {
		t.Errorf("other student's grade leaked in: %+v", r)
	}
}

// ── Capacity ──

func TestPesoAsignado_ExcludesEditedItem(t *testing.T) {
	items := []model.ItemEvaluable{
		{ID: "q1", Porcentaje: 10},
		{ID: "q2", Porcentaje: 15},
	}
	if got := PesoAsignado(items, ""); !casi(got, 25) {
		t.Errorf("PesoAsignado = %v, want 25", got)
	}
	if got := PesoAsignado(items, "q2"); !casi(got, 10) {
		t.Errorf("PesoAsignado excluding q2 = %v, want 10", got)
	}
}

func TestCabeEnCategoria(t *testing.T) {
	config := configPruebas(true) // 30 points available
	items := []model.ItemEvaluable{{ID: "q1", Porcentaje: 20}}

	if !CabeEnCategoria(config, items, "", 10) {
		t.Error("20 + 10 should fit in 30")
	}
	if CabeEnCategoria(config, items, "", 11) {
		t.Error("20 + 11 must not fit in 30")
	}
	if !CabeEnCategoria(config, items, "q1", 30) {
		t.Error("replacing q1 with a 30-point item should fit")
	}
	if CabeEnCategoria(nil, items, "", 1) {
		t.Error("nothing fits without a configuration")
	}
}
