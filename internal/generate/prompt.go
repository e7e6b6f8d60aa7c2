package generate

import (
	"fmt"
	"strings"

	"mensajero/internal/analyze"
	"mensajero/internal/message"
)

// formatRules are the output instructions shared by every final prompt.
func writeFormatRules(b *strings.Builder) {
	b.WriteString("Formato de salida:\n")
	b.WriteString("- Primera línea: título de máximo 50 caracteres con la forma \"tipo: descripción\" o \"tipo(alcance): descripción\".\n")
	b.WriteString("- Tipos permitidos: feat, fix, docs, style, refactor, perf, test, chore, build, ci, revert.\n")
	b.WriteString("- Después del título, líneas con el detalle de los cambios.\n")
	b.WriteString("- TODO el mensaje en español. No uses verbos en inglés como add, update, create o remove.\n")
	b.WriteString("- Respondé solamente con el mensaje, sin comillas ni bloques de código.\n")
}

// buildDirectPrompt asks for a commit message straight from a small diff.
func buildDirectPrompt(diff, extraContext string) string {
	var b strings.Builder

	b.WriteString("Sos un asistente que escribe mensajes de commit de Git en español.\n\n")
	b.WriteString("Analizá el siguiente diff de cambios preparados y generá UN mensaje de commit.\n\n")
	b.WriteString("Diff:\n```\n")
	b.WriteString(diff)
	b.WriteString("\n```\n\n")
	if extraContext != "" {
		b.WriteString(extraContext)
		b.WriteString("\n\n")
	}
	writeFormatRules(&b)

	return b.String()
}

// buildConsolidatedPrompt asks for a commit message from the merged analysis
// of a chunked diff.
func buildConsolidatedPrompt(c analyze.ConsolidatedAnalysis, extraContext string) string {
	var b strings.Builder

	b.WriteString("Sos un asistente que escribe mensajes de commit de Git en español.\n\n")
	b.WriteString("El diff era muy grande y se analizó por segmentos. Este es el resumen consolidado:\n\n")
	fmt.Fprintf(&b, "Tipo principal de cambio: %s\n", c.PrimaryType)
	if len(c.Components) > 0 {
		fmt.Fprintf(&b, "Componentes afectados: %s\n", strings.Join(c.Components, ", "))
	}
	b.WriteString("Cambios detectados:\n")
	for _, change := range c.Changes {
		fmt.Fprintf(&b, "- %s\n", change)
	}
	if c.ContextSummary != "" {
		fmt.Fprintf(&b, "\nContexto: %s\n", c.ContextSummary)
	}
	b.WriteString("\nGenerá UN mensaje de commit que resuma todos estos cambios.\n\n")
	if extraContext != "" {
		b.WriteString(extraContext)
		b.WriteString("\n\n")
	}
	writeFormatRules(&b)

	return b.String()
}

// asOptionsPrompt rewrites a single-message prompt into a multi-option one.
func asOptionsPrompt(prompt string, count int) string {
	var b strings.Builder

	b.WriteString(prompt)
	fmt.Fprintf(&b, "\nGenerá %d opciones distintas de mensaje de commit.\n", count)
	fmt.Fprintf(&b, "Separá cada opción con el delimitador literal %q en una línea propia.\n", message.OptionDelimiter)
	b.WriteString("Cada opción sigue el mismo formato: título en la primera línea, detalle después.\n")

	return b.String()
}

// withAttemptContext extends a prompt with the previous rejected output and
// the rule it violated, so a retry is not an identical resubmission.
func withAttemptContext(prompt, rejected, rule string) string {
	var b strings.Builder

	b.WriteString(prompt)
	b.WriteString("\n\nTu respuesta anterior fue rechazada.\n")
	fmt.Fprintf(&b, "Regla violada: %s\n", rule)
	b.WriteString("Respuesta rechazada:\n")
	b.WriteString(rejected)
	b.WriteString("\nGenerá una respuesta nueva que cumpla todas las reglas.\n")

	return b.String()
}
