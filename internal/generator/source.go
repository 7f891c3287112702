package generator

import (
	"errors"
	"unicode/utf8"
)

var errNotUTF8 = errors.New("uploaded file is not valid UTF-8 text")

// Source is the text input of one generation: an uploaded file, pasted text, or both.
type Source struct {
	File    []byte
	HasFile bool
	Pasted  string
}

// Available reports whether there is anything to generate from.
func (s Source) Available() bool {
	return s.HasFile || s.Pasted != ""
}

// Resolve picks the text to render. The uploaded file wins over pasted text.
func (s Source) Resolve() (string, error) {
	if !s.HasFile {
		return s.Pasted, nil
	}
	if !utf8.Valid(s.File) {
		return "", errNotUTF8
	}
	text := string(s.File)
	// Strip a UTF-8 byte order mark left by some editors.
	if len(text) >= 3 && text[:3] == "\xef\xbb\xbf" {
		text = text[3:]
	}
	return text, nil
}
