// Package chunker splits large diff text into token-bounded spans so each
// piece fits within a single backend request. Consecutive spans share a few
// trailing lines of context so the analyzer can follow changes that straddle
// a boundary.
package chunker

import (
	"strings"
	"unicode/utf8"

	"mensajero/internal/token"
)

// DefaultOverlapLines is the number of trailing lines carried from a flushed
// span into the next one.
const DefaultOverlapLines = 5

// Span is a bounded contiguous portion of the original text.
// Spans are immutable once returned by Split.
type Span struct {
	// Lines holds the span's content in original order.
	Lines []string

	// Tokens is the estimated token cost of the span, summed per line.
	Tokens int
}

// Text joins the span's lines back into a single string.
func (s Span) Text() string {
	return strings.Join(s.Lines, "\n")
}

// Chunker splits text into token-bounded spans.
type Chunker struct {
	// OverlapLines is how many trailing lines of a flushed span seed the
	// next span. Zero disables overlap.
	OverlapLines int
}

// New creates a Chunker with the default overlap policy.
func New() *Chunker {
	return &Chunker{OverlapLines: DefaultOverlapLines}
}

// Split divides text into spans whose estimated token cost does not exceed
// maxTokens. Non-empty input always yields at least one span, and the spans'
// lines, minus the injected overlap, reconstruct the original line sequence.
//
// A single line costing more than maxTokens is cut into fixed-size character
// windows appended as their own spans; no overlap is applied to those.
func (c *Chunker) Split(text string, maxTokens int) []Span {
	lines := strings.Split(text, "\n")

	var spans []Span
	var current []string
	running := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		spans = append(spans, newSpan(current))
	}

	for _, line := range lines {
		cost := token.Estimate(line)

		if cost > maxTokens {
			flush()
			current = nil
			running = 0
			for _, window := range splitWindows(line, maxTokens*token.CharsPerToken) {
				spans = append(spans, newSpan([]string{window}))
			}
			continue
		}

		if running+cost > maxTokens && len(current) > 0 {
			flush()
			seed := overlapTail(current, c.OverlapLines)
			current = seed
			running = 0
			for _, s := range seed {
				running += token.Estimate(s)
			}
		}

		current = append(current, line)
		running += cost
	}

	flush()
	return spans
}

func newSpan(lines []string) Span {
	copied := make([]string, len(lines))
	copy(copied, lines)
	cost := 0
	for _, line := range copied {
		cost += token.Estimate(line)
	}
	return Span{Lines: copied, Tokens: cost}
}

// overlapTail returns a fresh slice holding the last min(n, len(lines)) lines.
func overlapTail(lines []string, n int) []string {
	if n <= 0 || len(lines) == 0 {
		return nil
	}
	if n > len(lines) {
		n = len(lines)
	}
	tail := make([]string, n)
	copy(tail, lines[len(lines)-n:])
	return tail
}

// splitWindows cuts an oversized line into windows of at most maxChars bytes,
// never splitting inside a UTF-8 sequence.
func splitWindows(line string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = token.CharsPerToken
	}

	var windows []string
	for len(line) > maxChars {
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		if cut == 0 {
			cut = maxChars
		}
		windows = append(windows, line[:cut])
		line = line[cut:]
	}
	if line != "" {
		windows = append(windows, line)
	}
	return windows
}
