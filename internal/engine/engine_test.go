package engine

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnechkaShv/wordcloud-generator/internal/params"
)

const sampleText = "the quick brown fox the quick brown"

func sampleConfig() params.Config {
	return params.Config{
		Stopwords:  params.NewStopwordSet(),
		Width:      800,
		Height:     400,
		MaxWords:   200,
		Background: params.Background,
	}
}

func TestEnginesProduceRequestedSize(t *testing.T) {
	for _, kind := range []string{KindCloud, KindScatter} {
		t.Run(kind, func(t *testing.T) {
			eng, cleanup, err := New(kind, Options{Seed: 1}, zerolog.Nop())
			require.NoError(t, err)
			defer cleanup()

			img, err := eng.Render(context.Background(), sampleText, sampleConfig())
			require.NoError(t, err)
			assert.Equal(t, 800, img.Bounds().Dx())
			assert.Equal(t, 400, img.Bounds().Dy())
		})
	}
}

func TestEnginesRejectEmptyWordList(t *testing.T) {
	cfg := sampleConfig()
	cfg.Stopwords = params.BaseStopwords()

	for _, kind := range []string{KindCloud, KindScatter} {
		t.Run(kind, func(t *testing.T) {
			eng, cleanup, err := New(kind, Options{Seed: 1}, zerolog.Nop())
			require.NoError(t, err)
			defer cleanup()

			_, err = eng.Render(context.Background(), "Il lo LA gli ... 123", cfg)
			assert.ErrorIs(t, err, ErrNoWords)
		})
	}
}

func TestScatterDeterministicWithSeed(t *testing.T) {
	f, err := loadFont("")
	require.NoError(t, err)

	a := NewScatter(f, Options{Seed: 42}, zerolog.Nop())
	b := NewScatter(f, Options{Seed: 42}, zerolog.Nop())

	imgA, err := a.Render(context.Background(), sampleText, sampleConfig())
	require.NoError(t, err)
	imgB, err := b.Render(context.Background(), sampleText, sampleConfig())
	require.NoError(t, err)

	assert.Equal(t, imgA, imgB)
}

func TestScatterBackgroundIsWhite(t *testing.T) {
	f, err := loadFont("")
	require.NoError(t, err)

	img, err := NewScatter(f, Options{Seed: 7}, zerolog.Nop()).
		Render(context.Background(), "parola", sampleConfig())
	require.NoError(t, err)

	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0xffff, 0xffff, 0xffff}, [4]uint32{r, g, b, a})
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	f, err := loadFont("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewScatter(f, Options{}, zerolog.Nop()).Render(ctx, sampleText, sampleConfig())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRenderRejectsBadCanvas(t *testing.T) {
	f, err := loadFont("")
	require.NoError(t, err)

	cfg := sampleConfig()
	cfg.Width = 0
	_, err = NewScatter(f, Options{}, zerolog.Nop()).Render(context.Background(), sampleText, cfg)
	assert.Error(t, err)
}

func TestNewUnknownEngine(t *testing.T) {
	_, _, err := New("spiral", Options{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestMaterializeFont(t *testing.T) {
	path, cleanup, err := materializeFont("")
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	_, _, err = materializeFont(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"white", color.RGBA{255, 255, 255, 255}, false},
		{"", color.RGBA{255, 255, 255, 255}, false},
		{" Black ", color.RGBA{0, 0, 0, 255}, false},
		{"transparent", color.RGBA{}, false},
		{"#ff8000", color.RGBA{255, 128, 0, 255}, false},
		{"#zzzzzz", nil, true},
		{"mauve", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCloudBackgroundMatchesCanvasModel(t *testing.T) {
	eng, cleanup, err := New(KindCloud, Options{}, zerolog.Nop())
	require.NoError(t, err)
	defer cleanup()

	bg, err := ParseColor(params.Background)
	require.NoError(t, err)

	img, err := eng.Render(context.Background(), "parola", sampleConfig())
	require.NoError(t, err)

	// The layout compares canvas pixels to the background with ==.
	assert.True(t, img.At(0, 0) == bg, "pixel %#v, background %#v", img.At(0, 0), bg)
}

func TestRunLayout(t *testing.T) {
	t.Run("returns the image", func(t *testing.T) {
		want := image.NewRGBA(image.Rect(0, 0, 4, 4))
		got, err := runLayout(context.Background(), func() image.Image { return want })
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("panic becomes an error", func(t *testing.T) {
		_, err := runLayout(context.Background(), func() image.Image { panic("no font") })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no font")
	})

	t.Run("deadline stops waiting", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := runLayout(ctx, func() image.Image {
			<-release
			return nil
		})
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.Less(t, time.Since(start), time.Second)
	})
}
