package ai

import (
	"strings"
	"testing"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/grading"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
)

func ptr(f float64) *float64 { return &f }

func TestPromptComentarioPrueba_IncludesGradeData(t *testing.T) {
	p := PromptComentarioPrueba(
		model.Estudiante{Nombre: "Ana"},
		model.ItemEvaluable{Nombre: "Quiz 1", Porcentaje: 30, PuntosTotales: 20},
		model.CalificacionItem{PuntosObtenidos: ptr(16)},
	)
	for _, want := range []string{"Ana", "Quiz 1", "16 de 20 puntos", "30%"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestPromptComunicacionEncargado_FallbackGuardianName(t *testing.T) {
	p := PromptComunicacionEncargado(model.Estudiante{Nombre: "Ana", PrimerApellido: "Mora"}, "ausencias recientes")
	if !strings.Contains(p, "Estimado(a) encargado(a)") {
		t.Error("missing guardian fallback")
	}
	if !strings.Contains(p, "ausencias recientes") {
		t.Error("missing topic")
	}

	p = PromptComunicacionEncargado(model.Estudiante{Nombre: "Ana", NombreEncargado: "Carlos Mora"}, "reunión")
	if !strings.Contains(p, "Carlos Mora") {
		t.Error("missing guardian name")
	}
}

func TestPromptResumenEstudiante_StateBranches(t *testing.T) {
	base := model.Estudiante{Nombre: "Luis", PrimerApellido: "Soto", Estado: model.EstadoActivo}
	if p := PromptResumenEstudiante(base); strings.Contains(p, "Traslado") || strings.Contains(p, "Deserción") {
		t.Error("active student must not carry transfer or dropout lines")
	}

	base.Estado = model.EstadoTrasladado
	base.EscuelaTraslado = "Escuela Central"
	if p := PromptResumenEstudiante(base); !strings.Contains(p, "Escuela Central") {
		t.Error("transferred student missing destination school")
	}

	base.Estado = model.EstadoDesertor
	if p := PromptResumenEstudiante(base); !strings.Contains(p, "Deserción") {
		t.Error("dropout student missing dropout section")
	}
}

func TestPromptComentarioInforme_UnconfiguredCategoryShowsNoEvaluado(t *testing.T) {
	r := grading.ResultadoPeriodo{
		Tareas:          grading.Resultado{Porcentaje: 18, Nota: 90, Configurado: true, Evaluado: true},
		TotalPorcentaje: 18,
	}
	p := PromptComentarioInforme(model.Estudiante{Nombre: "Ana", PrimerApellido: "Mora"}, "I Semestre", r)
	if !strings.Contains(p, "18.00% (Nota: 90.00)") {
		t.Error("missing tareas line")
	}
	if !strings.Contains(p, "Proyectos: No evaluado") {
		t.Error("unconfigured proyectos should read No evaluado")
	}
}

func TestPromptPlanAtencion_OnlyCheckedFactors(t *testing.T) {
	alerta := model.AlertaTemprana{
		EstadoAlerta: model.AlertaReferida,
		CheckedItems: map[string]bool{
			"Ausentismo frecuente": true,
			"Bajo rendimiento":     false,
		},
		Observaciones: "Sin contacto con el hogar",
	}
	p := PromptPlanAtencion(model.Estudiante{Nombre: "Ana", PrimerApellido: "Mora"}, alerta)
	if !strings.Contains(p, "Ausentismo frecuente") {
		t.Error("checked factor missing")
	}
	if strings.Contains(p, "Bajo rendimiento") {
		t.Error("unchecked factor leaked into the prompt")
	}
	if !strings.Contains(p, model.AlertaReferida) {
		t.Error("tracking state missing")
	}
}

func TestSchemaPlanAtencion_Shape(t *testing.T) {
	s := SchemaPlanAtencion()
	plan, ok := s.Properties["planDeAtencion"]
	if !ok || plan.Type != "array" {
		t.Fatal("planDeAtencion must be an array property")
	}
	for _, key := range []string{"action", "responsible", "observations"} {
		if _, ok := plan.Items.Properties[key]; !ok {
			t.Errorf("action schema missing %q", key)
		}
	}
}

func TestPromptPerfilEntrada_CarriesQualitativeData(t *testing.T) {
	p := PromptPerfilEntrada(
		model.Estudiante{Nombre: "Ana", PrimerApellido: "Mora", SegundoApellido: "Rojas"},
		model.CursoLectivo{Year: 2026, TeacherName: "Docente Prueba"},
		"- Ciencias: Mostró interés por los experimentos.",
		"", "coordinación adecuada", "",
	)
	if !strings.Contains(p, "PERFIL DE ENTRADA DEL ESTUDIANTE") {
		t.Error("missing entry profile header")
	}
	if !strings.Contains(p, "Ana Mora Rojas") || !strings.Contains(p, "2026") {
		t.Error("missing student or course data")
	}
	if !strings.Contains(p, "- Ciencias: Mostró interés por los experimentos.") {
		t.Error("missing per-subject summary")
	}
	if !strings.Contains(p, "coordinación adecuada") {
		t.Error("missing psychomotor keywords")
	}
	if !strings.Contains(p, "No especificado.") {
		t.Error("empty qualitative fields should fall back")
	}
}

func TestPromptPerfilSalida_PlainTextInstruction(t *testing.T) {
	p := PromptPerfilSalida(
		model.Estudiante{Nombre: "Ana", PrimerApellido: "Mora", SegundoApellido: "Rojas"},
		model.CursoLectivo{Year: 2026, TeacherName: "Docente Prueba"},
		"Anual", "- Ciencias: 85.00%",
		grading.ResumenAsistencia{Injustificadas: 2},
		"colaboradora", "", "",
	)
	if !strings.Contains(p, "TEXTO PLANO") {
		t.Error("missing plain-text instruction")
	}
	if !strings.Contains(p, "Ana Mora Rojas") || !strings.Contains(p, "2026") {
		t.Error("missing student or course data")
	}
	if !strings.Contains(p, "No especificado.") {
		t.Error("empty qualitative fields should fall back")
	}
}

func TestPromptCompanion_EmbedsContextAndQuestion(t *testing.T) {
	p := PromptCompanion(`{"estudiantes":[]}`, "¿Cuál es el promedio del grupo?")
	if !strings.Contains(p, `{"estudiantes":[]}`) {
		t.Error("missing JSON context")
	}
	if !strings.Contains(p, "¿Cuál es el promedio del grupo?") {
		t.Error("missing question")
	}
}
