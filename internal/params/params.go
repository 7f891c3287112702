// Package params assembles the configuration handed to the cloud layout engine.
package params

import (
	"errors"
	"fmt"
)

// Bounds, defaults and input steps of the size parameters.
const (
	MinWidth     = 400
	MaxWidth     = 2000
	DefaultWidth = 800
	WidthStep    = 100

	MinHeight     = 200
	MaxHeight     = 1500
	DefaultHeight = 400
	HeightStep    = 100

	MinMaxWords     = 10
	MaxMaxWords     = 500
	DefaultMaxWords = 200
	MaxWordsStep    = 10

	// UnlimitedWords disables the word cap.
	UnlimitedWords = 0
)

// Background is the only supported background color.
const Background = "white"

type Config struct {
	Stopwords  StopwordSet
	Width      int
	Height     int
	MaxWords   int
	Background string
}

// Assemble merges extra stopwords into base and packs the size parameters.
// No range checks are done here; see Validate and Clamp.
func Assemble(base StopwordSet, extraStopwords string, width, height, maxWords int) Config {
	return Config{
		Stopwords:  Merge(base, extraStopwords),
		Width:      width,
		Height:     height,
		MaxWords:   maxWords,
		Background: Background,
	}
}

// Unlimited reports whether every counted word may be drawn.
func (c Config) Unlimited() bool {
	return c.MaxWords == UnlimitedWords
}

// RangeError reports a parameter outside its allowed bounds.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// Validate checks the size parameters against their bounds.
func (c Config) Validate() error {
	var errs []error
	if c.Width < MinWidth || c.Width > MaxWidth {
		errs = append(errs, &RangeError{Field: "width", Value: c.Width, Min: MinWidth, Max: MaxWidth})
	}
	if c.Height < MinHeight || c.Height > MaxHeight {
		errs = append(errs, &RangeError{Field: "height", Value: c.Height, Min: MinHeight, Max: MaxHeight})
	}
	if !c.Unlimited() && (c.MaxWords < MinMaxWords || c.MaxWords > MaxMaxWords) {
		errs = append(errs, &RangeError{Field: "max_words", Value: c.MaxWords, Min: MinMaxWords, Max: MaxMaxWords})
	}
	return errors.Join(errs...)
}

// Clamp pulls out-of-range values back inside their bounds.
func (c Config) Clamp() Config {
	c.Width = clamp(c.Width, MinWidth, MaxWidth)
	c.Height = clamp(c.Height, MinHeight, MaxHeight)
	if !c.Unlimited() {
		c.MaxWords = clamp(c.MaxWords, MinMaxWords, MaxMaxWords)
	}
	if c.Background == "" {
		c.Background = Background
	}
	return c
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
