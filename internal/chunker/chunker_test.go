package chunker

import (
	"fmt"
	"strings"
	"testing"

	"mensajero/internal/token"
)

func TestSplit_SmallInputSingleSpan(t *testing.T) {
	c := New()
	spans := c.Split("line one\nline two", 100)

	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Text() != "line one\nline two" {
		t.Errorf("unexpected span text: %q", spans[0].Text())
	}
}

func TestSplit_NonEmptyInputNonEmptyOutput(t *testing.T) {
	c := New()
	spans := c.Split("x", 1)
	if len(spans) == 0 {
		t.Fatal("expected at least one span for non-empty input")
	}
}

func TestSplit_ReconstructsOriginalLines(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "+added line number %d with some diff content\n", i)
	}
	original := strings.TrimSuffix(b.String(), "\n")

	c := New()
	spans := c.Split(original, 50)
	if len(spans) < 2 {
		t.Fatalf("expected multiple spans, got %d", len(spans))
	}

	// Strip the overlap: each span after the first repeats the previous
	// span's trailing lines.
	var reconstructed []string
	reconstructed = append(reconstructed, spans[0].Lines...)
	for i := 1; i < len(spans); i++ {
		prev := spans[i-1].Lines
		overlap := DefaultOverlapLines
		if overlap > len(prev) {
			overlap = len(prev)
		}
		reconstructed = append(reconstructed, spans[i].Lines[overlap:]...)
	}

	want := strings.Split(original, "\n")
	if len(reconstructed) != len(want) {
		t.Fatalf("reconstructed %d lines, want %d", len(reconstructed), len(want))
	}
	for i := range want {
		if reconstructed[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, reconstructed[i], want[i])
		}
	}
}

func TestSplit_OverlapBetweenConsecutiveSpans(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("line %02d aaaaaaaaaaaaaaaaaaaa", i))
	}

	c := New()
	spans := c.Split(strings.Join(lines, "\n"), 60)
	if len(spans) < 2 {
		t.Fatalf("expected multiple spans, got %d", len(spans))
	}

	for i := 1; i < len(spans); i++ {
		prev := spans[i-1].Lines
		n := DefaultOverlapLines
		if n > len(prev) {
			n = len(prev)
		}
		tail := prev[len(prev)-n:]
		head := spans[i].Lines[:n]
		for j := range tail {
			if tail[j] != head[j] {
				t.Errorf("span %d overlap line %d: got %q, want %q", i, j, head[j], tail[j])
			}
		}
	}
}

func TestSplit_OversizedLineCharacterWindows(t *testing.T) {
	maxTokens := 10
	long := strings.Repeat("abcdefgh", 20) // 160 chars, 40 tokens

	c := New()
	spans := c.Split(long, maxTokens)

	if len(spans) != 4 {
		t.Fatalf("expected 4 window spans, got %d", len(spans))
	}
	for i, s := range spans {
		if len(s.Lines) != 1 {
			t.Errorf("window span %d has %d lines, want 1", i, len(s.Lines))
		}
		if s.Tokens > maxTokens {
			t.Errorf("window span %d costs %d tokens, budget %d", i, s.Tokens, maxTokens)
		}
	}
	if got := strings.Join([]string{spans[0].Lines[0], spans[1].Lines[0], spans[2].Lines[0], spans[3].Lines[0]}, ""); got != long {
		t.Error("window spans do not reconstruct the oversized line")
	}
}

func TestSplit_OversizedLineFlushesAccumulatedFirst(t *testing.T) {
	long := strings.Repeat("z", 200)
	input := "short one\nshort two\n" + long + "\nshort three"

	c := New()
	spans := c.Split(input, 20)

	if len(spans) < 3 {
		t.Fatalf("expected at least 3 spans, got %d", len(spans))
	}
	if spans[0].Text() != "short one\nshort two" {
		t.Errorf("first span should hold accumulated short lines, got %q", spans[0].Text())
	}
	// The window spans follow, then the trailing short line.
	last := spans[len(spans)-1]
	if last.Lines[len(last.Lines)-1] != "short three" {
		t.Errorf("last span should end with the trailing line, got %q", last.Text())
	}
}

func TestSplit_ExactBudgetNotSplit(t *testing.T) {
	// Two 20-char lines estimate to 5 tokens each; a budget of 10 holds
	// both because the threshold is a strict greater-than compare.
	line := strings.Repeat("a", 20)
	c := New()
	spans := c.Split(line+"\n"+line, 10)

	if len(spans) != 1 {
		t.Fatalf("expected a single span at exact budget, got %d", len(spans))
	}
	if spans[0].Tokens != 10 {
		t.Errorf("span cost = %d, want 10", spans[0].Tokens)
	}
}

func TestSplit_BudgetRespected(t *testing.T) {
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}

	c := &Chunker{OverlapLines: 2}
	maxTokens := 12
	spans := c.Split(strings.Join(lines, "\n"), maxTokens)

	for i, s := range spans {
		if s.Tokens > maxTokens {
			t.Errorf("span %d cost %d exceeds budget %d", i, s.Tokens, maxTokens)
		}
		sum := 0
		for _, l := range s.Lines {
			sum += token.Estimate(l)
		}
		if sum != s.Tokens {
			t.Errorf("span %d reports %d tokens, lines sum to %d", i, s.Tokens, sum)
		}
	}
}

func TestSplit_OverlapShorterThanPolicy(t *testing.T) {
	// The flushed span has fewer lines than the overlap policy; the seed
	// must be the whole span, not an out-of-range slice.
	c := &Chunker{OverlapLines: 5}
	spans := c.Split(strings.Repeat("a", 36)+"\n"+strings.Repeat("b", 36), 9)

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[1].Lines[0] != strings.Repeat("a", 36) {
		t.Errorf("second span should be seeded with the first span's only line")
	}
}
