package generator

import "fmt"

// Stage names the step of a generation that failed.
type Stage string

const (
	StageDecode Stage = "decode"
	StageLayout Stage = "layout"
	StageEncode Stage = "encode"
)

// GenerationError is the single error kind surfaced to users. Stage is kept
// for logs only; users see Message.
type GenerationError struct {
	Stage Stage
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Message is the text shown in place of the image.
func (e *GenerationError) Message() string {
	return "An error occurred: " + e.Err.Error()
}
