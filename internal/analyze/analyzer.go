// Package analyze extracts structured summaries from diff segments and
// consolidates them into a single analysis that drives the final commit
// message prompt. Each segment is analyzed independently; a reply that cannot
// be decoded never fails the pipeline, it degrades to a synthetic fallback so
// consolidation always receives one well-formed value per segment.
package analyze

import (
	"context"
	"fmt"
	"strings"

	"mensajero/internal/chunker"
	"mensajero/internal/llm"
	"mensajero/internal/message"
)

// fallbackContextLen bounds how much of an undecodable reply is kept as
// context.
const fallbackContextLen = 100

// SegmentAnalysis is the structured summary of one diff segment.
// Values are immutable after creation.
type SegmentAnalysis struct {
	// PrimaryType is the dominant commit type for the segment.
	PrimaryType message.CommitType `json:"type"`

	// Components names the modules or areas the segment touches.
	Components []string `json:"components"`

	// Changes lists the concrete changes, in order of appearance.
	Changes []string `json:"changes"`

	// Context is a short free-form description of the segment.
	Context string `json:"context"`
}

// Analyzer produces a SegmentAnalysis per diff segment via the backend.
type Analyzer struct {
	client llm.Client
}

// NewAnalyzer creates an analyzer backed by the given client.
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze summarizes one segment. index is zero-based; the prompt names the
// segment's one-based position out of total. A backend failure is returned
// as-is (fatal to the caller); an undecodable reply is substituted with a
// fallback analysis instead of an error.
func (a *Analyzer) Analyze(ctx context.Context, span chunker.Span, index, total int) (SegmentAnalysis, error) {
	prompt := buildSegmentPrompt(span, index, total)

	reply, err := a.client.Generate(ctx, prompt)
	if err != nil {
		return SegmentAnalysis{}, fmt.Errorf("segment %d of %d: %w", index+1, total, err)
	}

	analysis, err := decodeAnalysis(reply)
	if err != nil {
		return fallbackAnalysis(index, reply), nil
	}
	return analysis, nil
}

func buildSegmentPrompt(span chunker.Span, index, total int) string {
	var b strings.Builder

	b.WriteString("Sos un asistente que analiza diffs de Git para generar mensajes de commit en español.\n\n")
	fmt.Fprintf(&b, "Este es el segmento %d de %d de un diff grande. Analizá solamente este segmento.\n\n", index+1, total)
	b.WriteString("Segmento del diff:\n```\n")
	b.WriteString(span.Text())
	b.WriteString("\n```\n\n")
	b.WriteString("Respondé ÚNICAMENTE con un objeto JSON con esta forma exacta:\n")
	b.WriteString(`{"type": "<uno de: feat, fix, docs, style, refactor, perf, test, chore, build, ci, revert>", "components": ["modulo o area afectada"], "changes": ["cambio concreto en español"], "context": "descripcion breve en español"}`)
	b.WriteString("\n\nSin texto adicional, sin bloques de markdown.\n")

	return b.String()
}

// fallbackAnalysis is the synthetic value substituted when a reply cannot be
// decoded. It trades fidelity for pipeline robustness.
func fallbackAnalysis(index int, reply string) SegmentAnalysis {
	context := reply
	if runes := []rune(context); len(runes) > fallbackContextLen {
		context = string(runes[:fallbackContextLen])
	}

	return SegmentAnalysis{
		PrimaryType: message.TypeChore,
		Components:  []string{"code"},
		Changes:     []string{fmt.Sprintf("cambios en el segmento %d", index+1)},
		Context:     context + "...",
	}
}
