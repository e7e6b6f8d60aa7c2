// Package token approximates the token cost of text sent to the generation
// backend. Costs are estimates derived from an empirical characters-per-token
// ratio for Spanish prose and diff text, never exact tokenizer counts.
package token

// CharsPerToken is the empirical ratio used to approximate token counts.
const CharsPerToken = 4

// Estimate approximates the token cost of text as ceil(len/4).
// It is deterministic and returns 0 only for empty input.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + CharsPerToken - 1) / CharsPerToken
}
