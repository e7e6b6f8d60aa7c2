package message

import (
	"fmt"
	"strings"
)

// OptionDelimiter separates candidate messages in a multi-option reply.
const OptionDelimiter = "|||"

// ParseError reports a backend reply that could not be decoded into the
// expected shape.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable reply: %s", e.Reason)
}

// ParseReply decodes a backend reply into a commit message: the first line
// becomes the title, the remaining non-empty lines joined become the body.
func ParseReply(reply string) (CommitMessage, error) {
	trimmed := strings.TrimSpace(reply)
	if trimmed == "" {
		return CommitMessage{}, &ParseError{Reason: "empty reply", Raw: reply}
	}

	lines := strings.Split(trimmed, "\n")
	title := strings.TrimSpace(lines[0])
	if title == "" {
		return CommitMessage{}, &ParseError{Reason: "empty title line", Raw: reply}
	}

	var body []string
	for _, line := range lines[1:] {
		if s := strings.TrimSpace(line); s != "" {
			body = append(body, s)
		}
	}

	return CommitMessage{Title: title, Body: strings.Join(body, "\n")}, nil
}

// ParseOptions decodes a multi-option reply: candidates are separated by
// OptionDelimiter and each candidate is decoded like a single reply.
// Undecodable candidates are skipped; the caller validates the rest.
func ParseOptions(reply string) []CommitMessage {
	var options []CommitMessage
	for _, part := range strings.Split(reply, OptionDelimiter) {
		msg, err := ParseReply(part)
		if err != nil {
			continue
		}
		options = append(options, msg)
	}
	return options
}
