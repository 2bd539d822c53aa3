package domain

import (
	"errors"
	"fmt"

	"github.com/Vovarama1992/deepflow/internal/models"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrCancelled       = errors.New("run cancelled")
	ErrPresetNotFound  = errors.New("preset not found")
)

// SegmentError is recorded when one segment's request fails or is cancelled.
type SegmentError struct {
	Index int
	Kind  models.ErrorKind
	Err   error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d: %s: %v", e.Index, e.Kind, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
