package analyze

import (
	"errors"
	"testing"

	"mensajero/internal/message"
)

func TestConsolidate_MajorityTypeWins(t *testing.T) {
	analyses := []SegmentAnalysis{
		{PrimaryType: message.TypeFeat, Changes: []string{"a"}},
		{PrimaryType: message.TypeFix, Changes: []string{"b"}},
		{PrimaryType: message.TypeFeat, Changes: []string{"c"}},
	}

	got, err := Consolidate(analyses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PrimaryType != message.TypeFeat {
		t.Errorf("primary type = %q, want feat", got.PrimaryType)
	}
}

func TestConsolidate_TieBreaksToFirstEncountered(t *testing.T) {
	analyses := []SegmentAnalysis{
		{PrimaryType: message.TypeFix, Changes: []string{"a"}},
		{PrimaryType: message.TypeFeat, Changes: []string{"b"}},
		{PrimaryType: message.TypeFeat, Changes: []string{"c"}},
		{PrimaryType: message.TypeFix, Changes: []string{"d"}},
	}

	got, err := Consolidate(analyses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PrimaryType != message.TypeFix {
		t.Errorf("tie should break to first encountered type, got %q", got.PrimaryType)
	}
}

func TestConsolidate_ComponentsDeduplicatedInFirstAppearanceOrder(t *testing.T) {
	analyses := []SegmentAnalysis{
		{PrimaryType: message.TypeFeat, Components: []string{"api", "auth"}, Changes: []string{"a"}},
		{PrimaryType: message.TypeFeat, Components: []string{"auth", "db"}, Changes: []string{"b"}},
	}

	got, err := Consolidate(analyses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"api", "auth", "db"}
	if len(got.Components) != len(want) {
		t.Fatalf("components = %v, want %v", got.Components, want)
	}
	for i := range want {
		if got.Components[i] != want[i] {
			t.Errorf("component %d = %q, want %q", i, got.Components[i], want[i])
		}
	}
}

func TestConsolidate_ChangesKeepOrderAndDuplicates(t *testing.T) {
	analyses := []SegmentAnalysis{
		{PrimaryType: message.TypeFix, Changes: []string{"corregir parser", "ajustar test"}},
		{PrimaryType: message.TypeFix, Changes: []string{"corregir parser"}},
	}

	got, err := Consolidate(analyses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"corregir parser", "ajustar test", "corregir parser"}
	if len(got.Changes) != len(want) {
		t.Fatalf("changes = %v, want %v", got.Changes, want)
	}
	for i := range want {
		if got.Changes[i] != want[i] {
			t.Errorf("change %d = %q, want %q", i, got.Changes[i], want[i])
		}
	}
}

func TestConsolidate_ContextsJoinedInOrder(t *testing.T) {
	analyses := []SegmentAnalysis{
		{PrimaryType: message.TypeDocs, Changes: []string{"a"}, Context: "primera parte"},
		{PrimaryType: message.TypeDocs, Changes: []string{"b"}, Context: ""},
		{PrimaryType: message.TypeDocs, Changes: []string{"c"}, Context: "ultima parte"},
	}

	got, err := Consolidate(analyses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ContextSummary != "primera parte. ultima parte" {
		t.Errorf("context summary = %q", got.ContextSummary)
	}
}

func TestConsolidate_EmptyInputFails(t *testing.T) {
	_, err := Consolidate(nil)
	if !errors.Is(err, ErrNoAnalyses) {
		t.Errorf("expected ErrNoAnalyses, got %v", err)
	}
}
