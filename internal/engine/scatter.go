package engine

import (
	"context"
	"image"
	"image/draw"
	"math/rand"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/AnechkaShv/wordcloud-generator/internal/params"
)

const placementAttempts = 60

// Scatter drops words at random free spots, largest first. Words that do not
// fit after placementAttempts tries are left out.
type Scatter struct {
	font *truetype.Font
	opts Options
	log  zerolog.Logger
}

func NewScatter(f *truetype.Font, opts Options, log zerolog.Logger) *Scatter {
	return &Scatter{
		font: f,
		opts: opts.withDefaults(),
		log:  log,
	}
}

func (s *Scatter) Render(ctx context.Context, text string, cfg params.Config) (image.Image, error) {
	if err := checkSize(cfg); err != nil {
		return nil, err
	}
	bg, err := ParseColor(cfg.Background)
	if err != nil {
		return nil, err
	}

	freqs, err := prepare(ctx, text, cfg, s.opts.MinWordLength)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	faces := make(map[int]font.Face)
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()

	var (
		placed  []image.Rectangle
		skipped int
	)
	maxCount := freqs.MaxCount()
	for i, wc := range freqs {
		if i%16 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		size := s.fontSize(wc.Count, maxCount, cfg.Height)
		face, ok := faces[size]
		if !ok {
			face = truetype.NewFace(s.font, &truetype.Options{
				Size:    float64(size),
				DPI:     72,
				Hinting: font.HintingFull,
			})
			faces[size] = face
		}

		box, ok := s.findSpot(rng, face, wc.Word, img.Bounds(), placed)
		if !ok {
			skipped++
			continue
		}
		placed = append(placed, box)

		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(s.opts.Palette[rng.Intn(len(s.opts.Palette))]),
			Face: face,
			Dot:  fixed.P(box.Min.X, box.Min.Y+face.Metrics().Ascent.Ceil()),
		}
		d.DrawString(wc.Word)
	}

	s.log.Debug().
		Int("words", len(freqs)).
		Int("skipped", skipped).
		Msg("scatter rendered")
	return img, nil
}

// fontSize scales linearly with frequency between the configured bounds.
func (s *Scatter) fontSize(count, maxCount, height int) int {
	hi := min(s.opts.FontMaxSize, height/3)
	lo := min(s.opts.FontMinSize, hi)
	if maxCount <= 1 {
		return hi
	}
	return lo + (hi-lo)*(count-1)/(maxCount-1)
}

func (s *Scatter) findSpot(rng *rand.Rand, face font.Face, word string, bounds image.Rectangle, placed []image.Rectangle) (image.Rectangle, bool) {
	m := face.Metrics()
	w := font.MeasureString(face, word).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	if w > bounds.Dx() || h > bounds.Dy() {
		return image.Rectangle{}, false
	}

	for attempt := 0; attempt < placementAttempts; attempt++ {
		x := bounds.Min.X + rng.Intn(bounds.Dx()-w+1)
		y := bounds.Min.Y + rng.Intn(bounds.Dy()-h+1)
		box := image.Rect(x, y, x+w, y+h)
		if !overlapsAny(box, placed) {
			return box, true
		}
	}
	return image.Rectangle{}, false
}

func overlapsAny(box image.Rectangle, placed []image.Rectangle) bool {
	for _, p := range placed {
		if box.Overlaps(p) {
			return true
		}
	}
	return false
}
