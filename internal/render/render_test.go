package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	return img
}

func TestFit(t *testing.T) {
	tests := []struct {
		name        string
		src         image.Image
		w, h        int
		sameAsInput bool
	}{
		{"exact", solid(800, 400), 800, 400, true},
		{"upscale", solid(400, 200), 800, 400, false},
		{"downscale", solid(1000, 500), 800, 400, false},
		{"offset origin", solid(900, 500).SubImage(image.Rect(100, 100, 900, 500)), 800, 400, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.src, tt.w, tt.h)
			assert.Equal(t, image.Rect(0, 0, tt.w, tt.h), got.Bounds())
			if tt.sameAsInput {
				assert.Same(t, tt.src, got)
			}

			r, g, b, _ := got.At(tt.w/2, tt.h/2).RGBA()
			assert.Equal(t, [3]uint32{0, 0, 0xffff}, [3]uint32{r, g, b})
		})
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(solid(800, 400))
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
}

func TestDataURI(t *testing.T) {
	uri := DataURI([]byte("png"))

	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), raw)
}
