// Package generator drives one word cloud generation from raw input to PNG.
package generator

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnechkaShv/wordcloud-generator/internal/engine"
	"github.com/AnechkaShv/wordcloud-generator/internal/metrics"
	"github.com/AnechkaShv/wordcloud-generator/internal/params"
	"github.com/AnechkaShv/wordcloud-generator/internal/render"
)

// Request carries the user-tunable parameters of a generation.
type Request struct {
	ExtraStopwords string
	Width          int
	Height         int
	MaxWords       int
}

// DefaultRequest mirrors the initial values of the page inputs.
func DefaultRequest() Request {
	return Request{
		Width:    params.DefaultWidth,
		Height:   params.DefaultHeight,
		MaxWords: params.DefaultMaxWords,
	}
}

// Validate checks the size parameters the way the page inputs bound them.
func (r Request) Validate() error {
	return params.Config{Width: r.Width, Height: r.Height, MaxWords: r.MaxWords}.Validate()
}

// Result is the outcome of Generate. Exactly one of Skipped, Err or PNG is set.
type Result struct {
	Image   image.Image
	PNG     []byte
	Skipped bool
	Err     *GenerationError
}

func (r Result) OK() bool {
	return !r.Skipped && r.Err == nil
}

type Generator struct {
	base   params.StopwordSet
	engine engine.Engine
	log    zerolog.Logger
}

// New wires a generator. base is the stoplist every request starts from.
func New(base params.StopwordSet, eng engine.Engine, log zerolog.Logger) *Generator {
	return &Generator{
		base:   base,
		engine: eng,
		log:    log.With().Str("component", "generator").Logger(),
	}
}

// Generate runs a full cycle. It never panics and never returns a partial
// image: any failure comes back as Result.Err.
func (g *Generator) Generate(ctx context.Context, src Source, req Request) (res Result) {
	if !src.Available() {
		metrics.RecordGeneration(metrics.OutcomeSkipped)
		return Result{Skipped: true}
	}

	defer func() {
		if r := recover(); r != nil {
			res = g.fail(ctx, StageLayout, fmt.Errorf("%v", r))
		}
	}()

	text, err := src.Resolve()
	if err != nil {
		return g.fail(ctx, StageDecode, err)
	}

	cfg := params.Assemble(g.base, req.ExtraStopwords, req.Width, req.Height, req.MaxWords)

	start := time.Now()
	img, err := g.engine.Render(ctx, text, cfg)
	metrics.RecordRender(time.Since(start).Seconds())
	if err != nil {
		return g.fail(ctx, StageLayout, err)
	}

	img = render.Fit(img, cfg.Width, cfg.Height)
	data, err := render.EncodePNG(img)
	if err != nil {
		return g.fail(ctx, StageEncode, err)
	}

	metrics.RecordGeneration(metrics.OutcomeSuccess)
	g.logger(ctx).Debug().
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Int("png_bytes", len(data)).
		Dur("render", time.Since(start)).
		Msg("word cloud generated")

	return Result{Image: img, PNG: data}
}

func (g *Generator) fail(ctx context.Context, stage Stage, err error) Result {
	genErr := &GenerationError{Stage: stage, Err: err}
	metrics.RecordGeneration(metrics.OutcomeFailure)

	log := g.logger(ctx)
	log.Warn().Err(genErr).Str("stage", string(stage)).Msg("word cloud generation failed")

	return Result{Err: genErr}
}

// logger prefers the request-scoped logger stored in ctx.
func (g *Generator) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &g.log
}
