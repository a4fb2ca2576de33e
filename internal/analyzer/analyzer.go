package analyzer

import (
	"context"
	"fmt"
	"time"

	"feedback-console/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Generator is the external text-generation service.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analyzer turns a rating and review into an Analysis. It keeps no state
// between calls.
type Analyzer struct {
	gen     Generator
	timeout time.Duration
	log     zerolog.Logger
}

func New(gen Generator, timeout time.Duration, log zerolog.Logger) *Analyzer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Analyzer{
		gen:     gen,
		timeout: timeout,
		log:     log.With().Str("component", "analyzer").Logger(),
	}
}

// Analyze never fails: any error from the generator or the parser is logged
// and replaced by Fallback(). There is no retry.
func (a *Analyzer) Analyze(ctx context.Context, rating int, review string) (result Analysis) {
	analysisID := uuid.NewString()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Str("analysis_id", analysisID).Interface("panic", r).Msg("analysis panicked, using fallback")
			metrics.ObserveAnalysis(true, "panic")
			result = Fallback()
		}
	}()

	out, err := a.analyze(ctx, rating, review)
	if err != nil {
		a.log.Error().
			Err(err).
			Str("analysis_id", analysisID).
			Str("reason", reason(err)).
			Int("rating", rating).
			Dur("elapsed", time.Since(start)).
			Msg("feedback analysis failed, using fallback")
		metrics.ObserveAnalysis(true, reason(err))
		return Fallback()
	}

	a.log.Debug().
		Str("analysis_id", analysisID).
		Int("rating", rating).
		Str("summary", out.Summary).
		Dur("elapsed", time.Since(start)).
		Msg("feedback analysed")
	metrics.ObserveAnalysis(false, "")
	return out
}

func (a *Analyzer) analyze(ctx context.Context, rating int, review string) (Analysis, error) {
	if a.gen == nil {
		return Analysis{}, fmt.Errorf("%w: no generator configured", ErrExternalService)
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.gen.Generate(ctx, BuildPrompt(rating, review))
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: %w", ErrExternalService, err)
	}
	return ParseResponse(text)
}
