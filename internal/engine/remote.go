package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AnechkaShv/wordcloud-generator/internal/params"
)

// DefaultRemoteURL is the public QuickChart word cloud endpoint.
const DefaultRemoteURL = "https://quickchart.io/wordcloud"

// maxRepeats bounds how many times the top word is repeated in the text sent upstream.
const maxRepeats = 100

// Remote delegates layout to a QuickChart compatible HTTP service. Words are
// filtered and counted locally, then sent as repeated text so the service
// only lays them out.
type Remote struct {
	url    string
	client *http.Client
	opts   Options
	log    zerolog.Logger
}

func NewRemote(url string, client *http.Client, opts Options, log zerolog.Logger) *Remote {
	if url == "" {
		url = DefaultRemoteURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{
		url:    url,
		client: client,
		opts:   opts.withDefaults(),
		log:    log,
	}
}

type remoteRequest struct {
	Text            string `json:"text"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Format          string `json:"format"`
	BackgroundColor string `json:"backgroundColor"`
	RemoveStopwords bool   `json:"removeStopwords"`
	CaseSensitive   bool   `json:"caseSensitive"`
	MaxNumWords     int    `json:"maxNumWords"`
	MinWordLength   int    `json:"minWordLength"`
}

func (r *Remote) Render(ctx context.Context, text string, cfg params.Config) (image.Image, error) {
	if err := checkSize(cfg); err != nil {
		return nil, err
	}
	freqs, err := prepare(ctx, text, cfg, r.opts.MinWordLength)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(remoteRequest{
		Text:            expand(freqs),
		Width:           cfg.Width,
		Height:          cfg.Height,
		Format:          "png",
		BackgroundColor: cfg.Background,
		CaseSensitive:   true,
		MaxNumWords:     len(freqs),
		MinWordLength:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("encode word cloud request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create word cloud request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("word cloud API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("word cloud API returned status %d", resp.StatusCode)
	}

	img, err := png.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode word cloud image: %w", err)
	}

	r.log.Debug().Int("words", len(freqs)).Str("url", r.url).Msg("remote cloud rendered")
	return img, nil
}

// expand rebuilds a text whose word frequencies are proportional to freqs.
func expand(freqs Frequencies) string {
	maxCount := freqs.MaxCount()
	var b strings.Builder
	for _, wc := range freqs {
		n := wc.Count
		if maxCount > maxRepeats {
			n = max(1, wc.Count*maxRepeats/maxCount)
		}
		for i := 0; i < n; i++ {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(wc.Word)
		}
	}
	return b.String()
}
