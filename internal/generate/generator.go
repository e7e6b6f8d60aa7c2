// Package generate orchestrates commit message generation: it routes a diff
// through the single-pass or chunked analysis path, builds the final prompt,
// and drives the bounded retry loop that rejects output failing format or
// language checks. Backend failures are never retried here; only validation
// failures are.
package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mensajero/internal/llm"
	"mensajero/internal/message"
)

var (
	// ErrExhausted reports a retry loop that ran out of attempts without
	// producing a valid message.
	ErrExhausted = errors.New("generation attempts exhausted")
)

// Generator runs bounded-attempt generation with validation for both the
// single-message and the multi-option mode.
type Generator struct {
	client          llm.Client
	maxAttempts     int
	enforceLanguage bool
	delay           time.Duration
}

// NewGenerator creates a generator over the given backend client.
// maxAttempts must be at least 1.
func NewGenerator(client llm.Client, maxAttempts int, enforceLanguage bool, delay time.Duration) *Generator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Generator{
		client:          client,
		maxAttempts:     maxAttempts,
		enforceLanguage: enforceLanguage,
		delay:           delay,
	}
}

// Message generates one validated commit message from the prompt.
// Validation failures are retried with the rejected output appended to the
// prompt; backend failures abort immediately.
func (g *Generator) Message(ctx context.Context, prompt string) (message.CommitMessage, error) {
	current := prompt

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := g.wait(ctx); err != nil {
				return message.CommitMessage{}, err
			}
		}

		reply, err := g.client.Generate(ctx, current)
		if err != nil {
			return message.CommitMessage{}, err
		}

		msg, rule := g.assess(reply)
		if rule == "" {
			return msg, nil
		}

		if attempt < g.maxAttempts {
			current = withAttemptContext(prompt, reply, rule)
		}
	}

	return message.CommitMessage{}, fmt.Errorf("%w after %d attempts", ErrExhausted, g.maxAttempts)
}

// Options generates up to count validated commit message candidates.
// Each backend reply is split into candidates and every valid one is
// accumulated across bounded attempts. Exhausting the attempts with nothing
// accumulated is an ErrExhausted failure; a partial accumulation is returned
// as-is.
func (g *Generator) Options(ctx context.Context, prompt string, count int) ([]message.CommitMessage, error) {
	if count < 1 {
		count = 1
	}
	optionsPrompt := asOptionsPrompt(prompt, count)

	var valid []message.CommitMessage
	for attempt := 1; attempt <= g.maxAttempts && len(valid) < count; attempt++ {
		if attempt > 1 {
			if err := g.wait(ctx); err != nil {
				return nil, err
			}
		}

		reply, err := g.client.Generate(ctx, optionsPrompt)
		if err != nil {
			return nil, err
		}

		for _, candidate := range message.ParseOptions(reply) {
			if len(valid) == count {
				break
			}
			if _, rule := g.assessMessage(candidate); rule == "" {
				valid = append(valid, candidate)
			}
		}
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf("%w after %d attempts: no valid options", ErrExhausted, g.maxAttempts)
	}
	return valid, nil
}

// assess decodes a raw reply and checks the accept predicate. The returned
// rule is empty when the message is acceptable, otherwise it names the
// violated rule in the language of the retry prompt.
func (g *Generator) assess(reply string) (message.CommitMessage, string) {
	msg, err := message.ParseReply(reply)
	if err != nil {
		return message.CommitMessage{}, "la respuesta no tiene un título en la primera línea"
	}
	return g.assessMessage(msg)
}

func (g *Generator) assessMessage(msg message.CommitMessage) (message.CommitMessage, string) {
	if msg.Body == "" {
		return msg, "el mensaje no tiene cuerpo: hace falta el detalle después del título"
	}
	if _, err := message.TitleType(msg.Title); err != nil {
		return msg, "el título no empieza con un tipo de commit válido (feat, fix, docs, ...)"
	}
	if g.enforceLanguage {
		if verdict := message.Validate(msg.Title, msg.Body); !verdict.IsValid {
			return msg, "el mensaje contiene palabras en inglés: escribilo completamente en español"
		}
	}
	return msg, ""
}

func (g *Generator) wait(ctx context.Context) error {
	if g.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(g.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
