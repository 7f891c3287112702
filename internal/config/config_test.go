package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "word-cloud-service", cfg.ServiceName)
	assert.Equal(t, 8083, cfg.HTTPPort)
	assert.Equal(t, ":8083", cfg.Addr())
	assert.Equal(t, "cloud", cfg.Engine)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2, cfg.MinWordLength)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("WORDCLOUD_ENGINE", " Scatter ")
	t.Setenv("FONT_MAX_SIZE", "90")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "scatter", cfg.Engine)
	assert.Equal(t, 90, cfg.FontMaxSize)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown engine", map[string]string{"WORDCLOUD_ENGINE": "spiral"}},
		{"font bounds swapped", map[string]string{"FONT_MIN_SIZE": "80", "FONT_MAX_SIZE": "20"}},
		{"bad port", map[string]string{"HTTP_PORT": "http"}},
		{"no upload room", map[string]string{"MAX_UPLOAD_BYTES": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
