// Package render prepares a word cloud raster for display and download.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

const (
	Filename = "wordcloud.png"
	MIMEType = "image/png"
)

// Fit returns img scaled to exactly width x height pixels. Images that
// already match are returned untouched.
func Fit(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height && b.Min == (image.Point{}) {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// EncodePNG encodes img without any padding around it.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI inlines PNG bytes for use in img src and download links.
func DataURI(data []byte) string {
	return "data:" + MIMEType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
