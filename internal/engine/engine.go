// Package engine turns text into a word cloud raster: it tokenizes, removes
// stopwords, counts frequencies and lays the words out on a canvas.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnechkaShv/wordcloud-generator/internal/params"
)

const (
	KindCloud   = "cloud"
	KindScatter = "scatter"
	KindRemote  = "quickchart"
)

// ErrNoWords is returned when nothing is left to draw after filtering.
var ErrNoWords = errors.New("no words to render")

// Engine renders text into an image of cfg.Width x cfg.Height pixels.
type Engine interface {
	Render(ctx context.Context, text string, cfg params.Config) (image.Image, error)
}

type Options struct {
	// FontFile is a TrueType font path. Empty means the bundled Go Regular face.
	FontFile      string
	FontMinSize   int
	FontMaxSize   int
	MinWordLength int
	Palette       []color.Color
	// Seed drives placement randomness of the scatter engine. Zero means time based.
	Seed int64

	// RemoteURL and RemoteTimeout configure the quickchart engine.
	RemoteURL     string
	RemoteTimeout time.Duration
}

var defaultPalette = []color.Color{
	color.RGBA{255, 0, 0, 255},   // Red
	color.RGBA{0, 0, 255, 255},   // Blue
	color.RGBA{0, 128, 0, 255},   // Green
	color.RGBA{128, 0, 128, 255}, // Purple
	color.RGBA{255, 165, 0, 255}, // Orange
	color.RGBA{0, 0, 0, 255},     // Black
	color.RGBA{165, 42, 42, 255}, // Brown
}

func (o Options) withDefaults() Options {
	if o.FontMinSize <= 0 {
		o.FontMinSize = 10
	}
	if o.FontMaxSize < o.FontMinSize {
		o.FontMaxSize = max(150, o.FontMinSize)
	}
	if o.MinWordLength <= 0 {
		o.MinWordLength = 1
	}
	if len(o.Palette) == 0 {
		o.Palette = defaultPalette
	}
	return o
}

// New builds the engine named by kind. The returned cleanup releases the
// font materialised on disk, if any.
func New(kind string, opts Options, log zerolog.Logger) (Engine, func(), error) {
	opts = opts.withDefaults()
	logger := log.With().Str("component", "engine").Str("engine", kind).Logger()

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindCloud, "":
		fontPath, cleanup, err := materializeFont(opts.FontFile)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("font", fontPath).Msg("cloud engine ready")
		return NewCloud(fontPath, opts, logger), cleanup, nil
	case KindScatter:
		face, err := loadFont(opts.FontFile)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("scatter engine ready")
		return NewScatter(face, opts, logger), func() {}, nil
	case KindRemote:
		client := &http.Client{Timeout: opts.RemoteTimeout}
		logger.Info().Str("url", opts.RemoteURL).Msg("remote engine ready")
		return NewRemote(opts.RemoteURL, client, opts, logger), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown engine %q", kind)
	}
}

// prepare returns the frequency table that will be drawn for text.
func prepare(ctx context.Context, text string, cfg params.Config, minLen int) (Frequencies, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	freqs := Count(Tokenize(text), cfg.Stopwords, minLen).Top(cfg.MaxWords)
	if len(freqs) == 0 {
		return nil, ErrNoWords
	}
	return freqs, nil
}

// ParseColor understands a few color names and #rrggbb. Colors are always
// color.RGBA, the model of the canvases they are compared against.
func ParseColor(name string) (color.Color, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	switch s {
	case "", "white":
		return color.RGBA{255, 255, 255, 255}, nil
	case "black":
		return color.RGBA{0, 0, 0, 255}, nil
	case "transparent":
		return color.RGBA{}, nil
	}

	var r, g, b uint8
	if len(s) == 7 && s[0] == '#' {
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{r, g, b, 255}, nil
		}
	}
	return nil, fmt.Errorf("unsupported background color %q", name)
}

func checkSize(cfg params.Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", cfg.Width, cfg.Height)
	}
	return nil
}
