package engine

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnechkaShv/wordcloud-generator/internal/params"
)

func TestRemoteRender(t *testing.T) {
	var got remoteRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "image/png")
		png.Encode(w, image.NewRGBA(image.Rect(0, 0, got.Width, got.Height)))
	}))
	defer srv.Close()

	cfg := sampleConfig()
	cfg.Stopwords = params.NewStopwordSet("fox")
	eng := NewRemote(srv.URL, &http.Client{Timeout: time.Second}, Options{}, zerolog.Nop())

	img, err := eng.Render(context.Background(), sampleText, cfg)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 800, 400), img.Bounds())

	assert.Equal(t, 800, got.Width)
	assert.Equal(t, 400, got.Height)
	assert.Equal(t, "png", got.Format)
	assert.Equal(t, "white", got.BackgroundColor)
	assert.False(t, got.RemoveStopwords)
	assert.Equal(t, 3, got.MaxNumWords)
	assert.NotContains(t, got.Text, "fox")
	assert.Equal(t, 2, strings.Count(got.Text, "quick"))
}

func TestRemoteRenderUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	eng := NewRemote(srv.URL, nil, Options{}, zerolog.Nop())
	_, err := eng.Render(context.Background(), sampleText, sampleConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestExpand(t *testing.T) {
	assert.Equal(t, "b b a", expand(Frequencies{{"b", 2}, {"a", 1}}))

	scaled := expand(Frequencies{{"big", 1000}, {"tiny", 1}})
	assert.Equal(t, maxRepeats, strings.Count(scaled, "big"))
	assert.Equal(t, 1, strings.Count(scaled, "tiny"))
}
