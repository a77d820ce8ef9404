package stickerlayers

import (
	"errors"
	"fmt"
)

var (
	ErrDimensionMismatch = errors.New("mask and image dimensions differ")
	ErrEmptyRegion       = errors.New("no pixel meets the alpha threshold")
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	ErrDecode            = errors.New("decode image")
	ErrEncode            = errors.New("encode image")
	ErrTracing           = errors.New("trace layer")
	ErrNoMask            = errors.New("mask provider returned no mask")
)

// StageError records which pipeline stage failed. errors.Is sees through it
// to the sentinel above or to context.Canceled.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
