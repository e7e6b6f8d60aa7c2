package generate

import (
	"context"
	"fmt"
	"time"

	"mensajero/internal/analyze"
	"mensajero/internal/chunker"
	"mensajero/internal/llm"
	"mensajero/internal/message"
	"mensajero/internal/token"
)

// Config holds the tunables of a pipeline invocation.
type Config struct {
	// ChunkThreshold is the estimated token cost above which the diff is
	// split and analyzed per segment instead of sent in one pass.
	ChunkThreshold int

	// MaxTokensPerChunk bounds each segment's estimated cost.
	MaxTokensPerChunk int

	// OverlapLines is the cross-segment context carried by the chunker.
	OverlapLines int

	// MaxAttempts bounds the simple retry loop.
	MaxAttempts int

	// LanguageAttempts bounds the retry loop when language checks are on.
	LanguageAttempts int

	// EnforceLanguage enables the Spanish purity check on generated text.
	EnforceLanguage bool

	// CallDelay is awaited between consecutive backend calls in a batch,
	// never after the last one.
	CallDelay time.Duration

	// ExtraContext is an optional instruction block appended to the final
	// prompt (e.g. an issue reference requirement).
	ExtraContext string
}

// DefaultConfig returns the pipeline defaults.
func DefaultConfig() Config {
	return Config{
		ChunkThreshold:    4000,
		MaxTokensPerChunk: 2000,
		OverlapLines:      chunker.DefaultOverlapLines,
		MaxAttempts:       3,
		LanguageAttempts:  5,
		EnforceLanguage:   true,
		CallDelay:         time.Second,
	}
}

// Pipeline turns a staged diff into a validated commit message.
// A single pipeline invocation owns all intermediate state; nothing persists
// across invocations.
type Pipeline struct {
	client   llm.Client
	analyzer *analyze.Analyzer
	chunker  *chunker.Chunker
	config   Config
}

// NewPipeline assembles a pipeline over the given backend client.
func NewPipeline(client llm.Client, config Config) *Pipeline {
	return &Pipeline{
		client:   client,
		analyzer: analyze.NewAnalyzer(client),
		chunker:  &chunker.Chunker{OverlapLines: config.OverlapLines},
		config:   config,
	}
}

// Run generates one validated commit message for the diff.
// The caller is responsible for never passing an empty diff.
func (p *Pipeline) Run(ctx context.Context, diff string) (message.CommitMessage, error) {
	prompt, err := p.buildFinalPrompt(ctx, diff)
	if err != nil {
		return message.CommitMessage{}, err
	}

	gen := NewGenerator(p.client, p.attempts(), p.config.EnforceLanguage, p.config.CallDelay)
	return gen.Message(ctx, prompt)
}

// RunOptions generates up to count validated commit message candidates for
// the diff.
func (p *Pipeline) RunOptions(ctx context.Context, diff string, count int) ([]message.CommitMessage, error) {
	prompt, err := p.buildFinalPrompt(ctx, diff)
	if err != nil {
		return nil, err
	}

	gen := NewGenerator(p.client, p.attempts(), p.config.EnforceLanguage, p.config.CallDelay)
	return gen.Options(ctx, prompt, count)
}

// buildFinalPrompt routes the diff: small diffs go straight into a direct
// prompt, large ones through chunking, per-segment analysis and
// consolidation.
func (p *Pipeline) buildFinalPrompt(ctx context.Context, diff string) (string, error) {
	if token.Estimate(diff) <= p.config.ChunkThreshold {
		return buildDirectPrompt(diff, p.config.ExtraContext), nil
	}

	spans := p.chunker.Split(diff, p.config.MaxTokensPerChunk)
	if len(spans) == 0 {
		return "", fmt.Errorf("chunking produced no segments")
	}

	// Segments are analyzed strictly in order: consolidation needs a
	// deterministic, index-ordered sequence and the backend is
	// rate-limited.
	analyses := make([]analyze.SegmentAnalysis, 0, len(spans))
	for i, span := range spans {
		a, err := p.analyzer.Analyze(ctx, span, i, len(spans))
		if err != nil {
			return "", err
		}
		analyses = append(analyses, a)

		if i < len(spans)-1 {
			if err := p.wait(ctx); err != nil {
				return "", err
			}
		}
	}

	consolidated, err := analyze.Consolidate(analyses)
	if err != nil {
		return "", err
	}

	return buildConsolidatedPrompt(consolidated, p.config.ExtraContext), nil
}

func (p *Pipeline) attempts() int {
	if p.config.EnforceLanguage {
		return p.config.LanguageAttempts
	}
	return p.config.MaxAttempts
}

func (p *Pipeline) wait(ctx context.Context) error {
	if p.config.CallDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(p.config.CallDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
