package analyze

import (
	"encoding/json"

	"mensajero/internal/message"
)

// decodeAnalysis locates the first balanced {...} region in a backend reply
// and decodes it as a SegmentAnalysis. Failures are typed so the fallback
// substitution in Analyze is an explicit branch.
func decodeAnalysis(reply string) (SegmentAnalysis, error) {
	region, err := extractObject(reply)
	if err != nil {
		return SegmentAnalysis{}, err
	}

	var wire struct {
		Type       string   `json:"type"`
		Components []string `json:"components"`
		Changes    []string `json:"changes"`
		Context    string   `json:"context"`
	}
	if err := json.Unmarshal([]byte(region), &wire); err != nil {
		return SegmentAnalysis{}, &message.ParseError{Reason: "malformed analysis object: " + err.Error(), Raw: reply}
	}

	primary, err := message.ParseType(wire.Type)
	if err != nil {
		return SegmentAnalysis{}, &message.ParseError{Reason: "missing or unknown type field", Raw: reply}
	}
	if len(wire.Changes) == 0 {
		return SegmentAnalysis{}, &message.ParseError{Reason: "missing changes field", Raw: reply}
	}

	return SegmentAnalysis{
		PrimaryType: primary,
		Components:  wire.Components,
		Changes:     wire.Changes,
		Context:     wire.Context,
	}, nil
}

// extractObject returns the first balanced top-level {...} region of text.
// Braces inside JSON string literals do not affect the balance.
func extractObject(text string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", &message.ParseError{Reason: "no balanced object region found", Raw: text}
}
