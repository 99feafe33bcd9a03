package ai

import (
	"fmt"
	"strings"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/grading"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/model"
)

// All drafting features speak Spanish: the application serves Costa Rican
// primary-school teachers and every generated text goes to students or
// their guardians.

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// PromptComentarioPrueba asks for a constructive comment on one test grade,
// with tone instructions tiered by the score band.
func PromptComentarioPrueba(est model.Estudiante, prueba model.ItemEvaluable, calif model.CalificacionItem) string {
	var puntos float64
	if calif.PuntosObtenidos != nil {
		puntos = *calif.PuntosObtenidos
	}
	return fmt.Sprintf(`Como asistente de un docente, redacta un borrador de comentario constructivo y personalizado para un estudiante basado en su calificación en una prueba.

Datos:
- Nombre del Estudiante: %s
- Nombre de la Prueba: %s
- Calificación Obtenida: %g de %g puntos.
- Porcentaje de la Prueba: %g%%

Instrucciones:
- El comentario debe ser en español.
- Si la nota es alta (más del 80%% de los puntos), felicita al estudiante y resalta su buen desempeño.
- Si la nota es media (entre 60%% y 80%% de los puntos), reconoce el esfuerzo y sugiere áreas de mejora o anima a revisar los puntos más difíciles.
- Si la nota es baja (menos del 60%% de los puntos), ofrece apoyo, sugiere una reunión para repasar y anima al estudiante a no desanimarse.
- Sé positivo y enfócate en el aprendizaje.
- Mantén el comentario conciso, claro y adecuado para compartir con el estudiante o su encargado.`,
		est.Nombre, prueba.Nombre, puntos, prueba.PuntosTotales, prueba.Porcentaje)
}

// PromptComunicacionEncargado asks for a short SMS draft to a guardian.
func PromptComunicacionEncargado(est model.Estudiante, motivo string) string {
	return fmt.Sprintf(`Como asistente de un docente, redacta un borrador de mensaje de texto (SMS) profesional, breve y cortés para el encargado de un estudiante.

Datos:
- Nombre del Estudiante: %s %s
- Nombre del Encargado: %s
- Motivo de la comunicación: %s

Instrucciones:
- El mensaje debe ser en español.
- Sé respetuoso y claro.
- No incluyas el nombre del docente, deja un espacio para que lo añada (ej: "Atte. [Nombre del Docente]").
- El mensaje debe ser adecuado para ser enviado por SMS, por lo tanto, debe ser conciso.`,
		est.Nombre, est.PrimerApellido,
		valueOr(est.NombreEncargado, "Estimado(a) encargado(a)"), motivo)
}

// PromptResumenEstudiante asks for a one-paragraph summary of a roster
// entry. Transfer and dropout details appear only for the matching state.
func PromptResumenEstudiante(est model.Estudiante) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Como asistente de un docente, resume la siguiente información del estudiante en un párrafo profesional y coherente. Sé conciso y enfócate en los datos más relevantes para un reporte rápido.

Datos del Estudiante:
- Nombre Completo: %s
- Cédula: %s
- Fecha de Ingreso: %s
- Estado Actual: %s
`, est.NombreCompleto(), est.Cedula, est.FechaIngreso, est.Estado)

	switch est.Estado {
	case model.EstadoTrasladado:
		fmt.Fprintf(&b, "- Fecha de Traslado: %s\n- Escuela de Destino: %s\n- Observaciones del Traslado: %s\n",
			valueOr(est.FechaTraslado, "No especificada"),
			valueOr(est.EscuelaTraslado, "No especificada"),
			valueOr(est.ObservacionesTraslado, "Ninguna"))
	case model.EstadoDesertor:
		fmt.Fprintf(&b, "- Fecha de Deserción: %s\n- Observaciones de la Deserción: %s\n",
			valueOr(est.FechaDesercion, "No especificada"),
			valueOr(est.ObservacionesDesercion, "Ninguna"))
	}

	fmt.Fprintf(&b, `- Nombre del Encargado: %s
- Teléfono del Encargado: %s
- Dirección: %s

Genera el resumen en español.`,
		valueOr(est.NombreEncargado, "No especificado"),
		valueOr(est.Telefono, "No especificado"),
		valueOr(est.Direccion, "No especificada"))
	return b.String()
}

func formatoResultado(r grading.Resultado) string {
	if !r.Configurado {
		return "No evaluado"
	}
	return fmt.Sprintf("%.2f%% (Nota: %.2f)", r.Porcentaje, r.Nota)
}

// PromptComentarioInforme asks for the general report-card comment from a
// period's computed results.
func PromptComentarioInforme(est model.Estudiante, periodo string, r grading.ResultadoPeriodo) string {
	tardias := r.Asistencia.TardiasJustificadas + r.Asistencia.TardiasInjustificadas
	return fmt.Sprintf(`Como asistente de un docente, redacta un comentario general para el informe de calificaciones de un estudiante. El comentario debe ser profesional, constructivo y basado en los siguientes datos de rendimiento.

Datos del Informe:
- Nombre del Estudiante: %s %s
- Periodo Evaluado: %s
- Rendimiento en Tareas: %s
- Rendimiento en Trabajo Cotidiano: %s
- Resumen de Asistencia: %d ausencias injustificadas, %d justificadas, y %d tardías.
- Rendimiento en Pruebas: %s
- Rendimiento en Proyectos: %s
- Promedio Final: %.2f%%

Instrucciones para la redacción:
1. Idioma: el comentario debe ser en español.
2. Tono: mantén un tono positivo y alentador, incluso si el rendimiento es bajo.
3. Estructura: comienza con una observación general, menciona las áreas de mayor fortaleza, señala de forma neutral las ausencias injustificadas si las hay, indica de manera constructiva las áreas a mejorar y concluye con una nota de ánimo.
4. Personalización: usa el nombre del estudiante.
5. Claridad: el texto debe ser fácil de entender para los padres o encargados.
6. Formato: redacta un único párrafo coherente.`,
		est.Nombre, est.PrimerApellido, periodo,
		formatoResultado(r.Tareas), formatoResultado(r.Cotidiano),
		r.Asistencia.Injustificadas, r.Asistencia.Justificadas, tardias,
		formatoResultado(r.Pruebas), formatoResultado(r.Proyectos),
		r.TotalPorcentaje)
}

// PlanAtencion is the decoded shape of the structured action-plan reply.
type PlanAtencion struct {
	PlanDeAtencion []AccionSugerida `json:"planDeAtencion"`
}

// AccionSugerida is one suggested follow-up action.
type AccionSugerida struct {
	Action       string `json:"action"`
	Responsible  string `json:"responsible"`
	Observations string `json:"observations"`
}

// SchemaPlanAtencion constrains the action-plan reply to the PlanAtencion
// shape.
func SchemaPlanAtencion() *Schema {
	return &Schema{
		Type:     "object",
		Required: []string{"planDeAtencion"},
		Properties: map[string]*Schema{
			"planDeAtencion": {
				Type: "array",
				Items: &Schema{
					Type:     "object",
					Required: []string{"action", "responsible", "observations"},
					Properties: map[string]*Schema{
						"action":       {Type: "string", Description: "Descripción clara y concisa de la acción a realizar."},
						"responsible":  {Type: "string", Description: "Responsable sugerido (ej. Docente, Orientación, Comité de Convivencia, Administración)."},
						"observations": {Type: "string", Description: "Sugerencias o detalles importantes para llevar a cabo la acción."},
					},
				},
			},
		},
	}
}

// PromptPlanAtencion asks for a structured attention plan for an
// early-warning case, tuned to the case's current tracking state.
func PromptPlanAtencion(est model.Estudiante, alerta model.AlertaTemprana) string {
	var factores []string
	for item, checked := range alerta.CheckedItems {
		if checked {
			factores = append(factores, "  - "+item)
		}
	}
	factoresText := "  - Ninguno seleccionado"
	if len(factores) > 0 {
		factoresText = strings.Join(factores, "\n")
	}
	return fmt.Sprintf(`ROL Y OBJETIVO:
Actúa como un orientador educativo experto en protocolos de alerta temprana. Tu tarea es generar un "Plan de Atención" estructurado y profesional basado en los factores de riesgo identificados y el estado actual del proceso para un estudiante.

DATOS DEL CONTEXTO:
- Estudiante: %s %s
- Estado Actual del Proceso: %s
- Factores de Riesgo Identificados:
%s
- Observaciones Adicionales del Docente: %s

INSTRUCCIONES:
Genera un plan de acción sugerido, coherente con el estado actual del proceso. Si el estado es 'Referida', las acciones deben enfocarse en el seguimiento de esa referencia. Si el estado es 'Activada', las acciones deben ser de contacto inicial y diagnóstico.
Asegúrate de que las acciones sean coherentes con los factores de riesgo y las observaciones. El plan debe ser realista y aplicable en un contexto escolar.`,
		est.Nombre, est.PrimerApellido,
		valueOr(alerta.EstadoAlerta, "No especificado"),
		factoresText,
		valueOr(alerta.Observaciones, "Ninguna"))
}

// PromptPerfilEntrada asks for the formal entry profile of a student
// starting the school year, from the teacher's per-subject prior-year
// comments plus qualitative keywords. The reply must be plain text, no
// markdown.
func PromptPerfilEntrada(est model.Estudiante, curso model.CursoLectivo, resumenPorMateria, socioafectiva, psicomotriz, apoyoHogar string) string {
	return fmt.Sprintf(`ROL Y OBJETIVO:
Actúa como un experimentado educador. Tu tarea es generar un "Perfil de Entrada" formal, bien estructurado y profesional para un estudiante que inicia el curso lectivo. El perfil debe ser descriptivo, constructivo y basarse en los datos proporcionados por el docente.

DATOS DEL ESTUDIANTE:
- Nombre Completo: %s
- Curso Lectivo Actual: %d
- Docente Actual: %s

DATOS CUALITATIVOS PROPORCIONADOS POR EL DOCENTE:
- Rendimiento Académico del Año Anterior por Materia:
%s
- Área Socioafectiva: %s
- Área Psicomotriz: %s
- Apoyo en el Hogar: %s

INSTRUCCIONES ESTRICTAS DE FORMATO Y CONTENIDO:
Genera el informe en español. La respuesta DEBE SER TEXTO PLANO. NO uses ningún tipo de formato Markdown, especialmente asteriscos para negrita (**).
La estructura debe seguir el orden exacto de los títulos que se muestran a continuación. Cada título debe estar en una línea separada y en mayúsculas.
Redacta párrafos completos y profesionales para cada sección, integrando los datos cualitativos de forma natural.

PERFIL DE ENTRADA DEL ESTUDIANTE

NOMBRE DEL ESTUDIANTE: %s
CURSO LECTIVO: %d

1. DESEMPEÑO ACADÉMICO INICIAL
(Basado en el resumen del año anterior por materia, analiza la situación académica con la que el estudiante inicia. Menciona fortalezas y posibles áreas de apoyo para cada materia comentada.)

2. DESARROLLO SOCIOAFECTIVO Y CONDUCTUAL
(Describe las características socioafectivas y conductuales observadas o reportadas, integrando las palabras clave del docente.)

3. DESARROLLO PSICOMOTRIZ
(Breve descripción de habilidades psicomotrices basada en las palabras clave. Si no hay, indica que no se realizaron observaciones específicas.)

4. VINCULACIÓN FAMILIA-ESCUELA
(Describe el apoyo familiar percibido, basado en las palabras clave.)

5. SÍNTESIS Y RECOMENDACIONES INICIALES
(Un resumen del perfil y 2-3 recomendaciones claras para el docente y la familia al iniciar el año.)`,
		est.NombreCompleto(), curso.Year, curso.TeacherName,
		resumenPorMateria,
		valueOr(socioafectiva, "No especificado."),
		valueOr(psicomotriz, "No especificado."),
		valueOr(apoyoHogar, "No especificado."),
		est.NombreCompleto(), curso.Year)
}

// PromptPerfilSalida asks for the formal exit profile of a student from
// annual results plus the teacher's qualitative notes. The reply must be
// plain text, no markdown.
func PromptPerfilSalida(est model.Estudiante, curso model.CursoLectivo, periodo, resumenAcademico string, asistencia grading.ResumenAsistencia, socioafectiva, psicomotriz, apoyoHogar string) string {
	tardias := asistencia.TardiasJustificadas + asistencia.TardiasInjustificadas
	return fmt.Sprintf(`ROL Y OBJETIVO:
Actúa como un experimentado educador. Tu tarea es generar un "Perfil de Salida" formal, bien estructurado y profesional para un estudiante. El perfil debe ser descriptivo, constructivo y basarse en los datos proporcionados.

DATOS DEL ESTUDIANTE:
- Nombre Completo: %s
- Curso Lectivo: %d
- Docente: %s
- Periodo Evaluado: %s

DATOS DE RENDIMIENTO ACADÉMICO (PROMEDIO ANUAL POR MATERIA):
%s

DATOS DE ASISTENCIA ANUAL:
- Ausencias Injustificadas: %d
- Ausencias Justificadas: %d
- Tardías: %d

APORTES CUALITATIVOS DEL DOCENTE (PALABRAS CLAVE):
- Área Socioafectiva: %s
- Área Psicomotriz: %s
- Apoyo en el Hogar: %s

INSTRUCCIONES ESTRICTAS DE FORMATO Y CONTENIDO:
Genera el informe en español. La respuesta DEBE SER TEXTO PLANO. NO uses ningún tipo de formato Markdown, especialmente asteriscos para negrita (**).
La estructura debe iniciar con el título PERFIL DE SALIDA DEL ESTUDIANTE en mayúsculas, seguido por secciones tituladas en mayúsculas en líneas separadas.
Redacta párrafos completos y profesionales para cada sección, integrando los datos cuantitativos y cualitativos de forma natural.`,
		est.NombreCompleto(), curso.Year, curso.TeacherName, periodo,
		resumenAcademico,
		asistencia.Injustificadas, asistencia.Justificadas, tardias,
		valueOr(socioafectiva, "No especificado."),
		valueOr(psicomotriz, "No especificado."),
		valueOr(apoyoHogar, "No especificado."))
}

// PromptCompanion asks a free-form question over the active course's data,
// serialized as JSON context.
func PromptCompanion(contextoJSON, pregunta string) string {
	return fmt.Sprintf(`ROL Y OBJETIVO:
Actúa como "Estudiante AI", un experto asistente integrado en una aplicación de registro de notas para docentes.
Tu propósito es ayudar al docente a analizar y comprender los datos de su clase respondiendo a sus preguntas de forma conversacional.
Se te ha proporcionado un objeto JSON completo con todos los datos del curso activo actual.
Analiza estos datos para responder a las preguntas del usuario con precisión.

INSTRUCCIONES:
- Al proporcionar información, sé conciso, claro y profesional.
- Si se te pide realizar un cálculo (como un promedio), hazlo y muestra el resultado.
- Si una pregunta es ambigua o requiere datos que no tienes, indícalo cortésmente.
- No inventes datos. Basa todas tus respuestas estrictamente en el contexto JSON proporcionado.
- Responde siempre en español.

CONTEXTO DE DATOS JSON DEL CURSO ACTIVO:
%s

---
PREGUNTA DEL DOCENTE:
%s`, contextoJSON, pregunta)
}
