package analyze

import (
	"errors"
	"strings"

	"mensajero/internal/message"
)

var ErrNoAnalyses = errors.New("no segment analyses to consolidate")

// ConsolidatedAnalysis merges the per-segment analyses of one pipeline
// invocation. It is derived deterministically and discarded after the final
// prompt is built.
type ConsolidatedAnalysis struct {
	// PrimaryType is the most frequent commit type across segments.
	PrimaryType message.CommitType

	// Components is the union of segment components, first-appearance
	// order, deduplicated.
	Components []string

	// Changes concatenates every segment's changes in segment order.
	// Duplicates are kept: each bullet is segment-scoped detail.
	Changes []string

	// ContextSummary joins the segment contexts with ". " in order.
	ContextSummary string
}

// Consolidate merges an ordered, non-empty sequence of segment analyses.
// The primary type is chosen by occurrence count; ties go to the type
// encountered first.
func Consolidate(analyses []SegmentAnalysis) (ConsolidatedAnalysis, error) {
	if len(analyses) == 0 {
		return ConsolidatedAnalysis{}, ErrNoAnalyses
	}

	// Ordered tally so the tie-break is first-insertion-wins by
	// construction, never map iteration order.
	type tally struct {
		t     message.CommitType
		count int
	}
	var counts []tally

	seen := make(map[string]bool)
	var components []string
	var changes []string
	var contexts []string

	for _, a := range analyses {
		found := false
		for i := range counts {
			if counts[i].t == a.PrimaryType {
				counts[i].count++
				found = true
				break
			}
		}
		if !found {
			counts = append(counts, tally{t: a.PrimaryType, count: 1})
		}

		for _, c := range a.Components {
			if !seen[c] {
				seen[c] = true
				components = append(components, c)
			}
		}

		changes = append(changes, a.Changes...)

		if a.Context != "" {
			contexts = append(contexts, a.Context)
		}
	}

	primary := counts[0].t
	best := counts[0].count
	for _, c := range counts[1:] {
		if c.count > best {
			primary = c.t
			best = c.count
		}
	}

	return ConsolidatedAnalysis{
		PrimaryType:    primary,
		Components:     components,
		Changes:        changes,
		ContextSummary: strings.Join(contexts, ". "),
	}, nil
}
