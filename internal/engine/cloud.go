package engine

import (
	"context"
	"fmt"
	"image"

	"github.com/psykhi/wordclouds"
	"github.com/rs/zerolog"

	"github.com/AnechkaShv/wordcloud-generator/internal/params"
)

// Cloud lays words out with psykhi/wordclouds: the most frequent word goes in
// the middle and the rest spiral outwards without overlapping.
type Cloud struct {
	fontFile string
	opts     Options
	log      zerolog.Logger
}

func NewCloud(fontFile string, opts Options, log zerolog.Logger) *Cloud {
	return &Cloud{
		fontFile: fontFile,
		opts:     opts.withDefaults(),
		log:      log,
	}
}

// Render returns as soon as ctx is done. The abandoned layout keeps running
// in the background until the library finishes it.
func (c *Cloud) Render(ctx context.Context, text string, cfg params.Config) (image.Image, error) {
	if err := checkSize(cfg); err != nil {
		return nil, err
	}
	bg, err := ParseColor(cfg.Background)
	if err != nil {
		return nil, err
	}

	freqs, err := prepare(ctx, text, cfg, c.opts.MinWordLength)
	if err != nil {
		return nil, err
	}

	minSize, maxSize := c.fontBounds(cfg)
	img, err := runLayout(ctx, func() image.Image {
		return wordclouds.NewWordcloud(
			freqs.Map(),
			wordclouds.FontFile(c.fontFile),
			wordclouds.Width(cfg.Width),
			wordclouds.Height(cfg.Height),
			wordclouds.FontMinSize(minSize),
			wordclouds.FontMaxSize(maxSize),
			wordclouds.Colors(c.opts.Palette),
			wordclouds.BackgroundColor(bg),
		).Draw()
	})
	if err != nil {
		return nil, err
	}

	c.log.Debug().
		Int("words", len(freqs)).
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Msg("cloud rendered")
	return img, nil
}

type layoutResult struct {
	img image.Image
	err error
}

// runLayout runs layout on its own goroutine and waits for it or for ctx.
// The library panics on font and layout failures; those become errors.
func runLayout(ctx context.Context, layout func() image.Image) (image.Image, error) {
	done := make(chan layoutResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- layoutResult{err: fmt.Errorf("layout engine: %v", r)}
			}
		}()
		done <- layoutResult{img: layout()}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.img, res.err
	}
}

// fontBounds keeps the largest word small enough to fit the canvas height.
func (c *Cloud) fontBounds(cfg params.Config) (int, int) {
	maxSize := min(c.opts.FontMaxSize, cfg.Height/3)
	minSize := min(c.opts.FontMinSize, maxSize)
	return minSize, max(maxSize, minSize)
}
