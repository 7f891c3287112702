package engine

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFont parses the font at path, or Go Regular when path is empty.
func loadFont(path string) (*truetype.Font, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font file: %w", err)
		}
		data = b
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", path, err)
	}
	return f, nil
}

// materializeFont returns a font path usable by libraries that only load
// fonts from disk. Without a configured path the bundled Go Regular face is
// written to a temporary file, removed by the returned cleanup.
func materializeFont(path string) (string, func(), error) {
	if path != "" {
		if _, err := loadFont(path); err != nil {
			return "", nil, err
		}
		return path, func() {}, nil
	}

	f, err := os.CreateTemp("", "wordcloud-font-*.ttf")
	if err != nil {
		return "", nil, fmt.Errorf("create font file: %w", err)
	}
	if _, err := f.Write(goregular.TTF); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("write font file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("close font file: %w", err)
	}

	name := f.Name()
	return name, func() { os.Remove(name) }, nil
}
