// Package rerrors defines the rename engine's error taxonomy (spec §7):
// a closed set of hard-failure kinds shared across the layers that need
// to raise or recognize them, plus IsCancelled, which recognizes the
// Cancelled kind as plain context cancellation.
package rerrors

import (
	"context"
	"errors"
	"fmt"
)

// ErrWorkspaceNotOpen is returned when the request URI has no open
// workspace.
var ErrWorkspaceNotOpen = errors.New("rerrors: workspace not open")

// ErrUnsupportedLanguage is returned when a translation is required for a
// definition language that is neither Swift-family nor Clang-family.
var ErrUnsupportedLanguage = errors.New("rerrors: unsupported definition language")

// IsCancelled reports whether err is (or wraps) a cancellation, the one
// kind callers are expected to propagate rather than log-and-degrade.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// CannotComputeOffsetError indicates a position could not be resolved
// against a snapshot's line table — a snapshot/position inconsistency.
// Position holds whatever coordinate value the caller attempted to
// resolve (a protocol.Position, an index.RenameLocation, ...).
type CannotComputeOffsetError struct {
	Position any
	Err      error
}

func (e *CannotComputeOffsetError) Error() string {
	return fmt.Sprintf("cannot compute offset for position %+v: %v", e.Position, e.Err)
}

func (e *CannotComputeOffsetError) Unwrap() error { return e.Err }

// MalformedTranslationResponseError indicates a name-translation response
// was missing fields required for the requested direction.
type MalformedTranslationResponseError struct {
	Direction string
	Payload   any
}

func (e *MalformedTranslationResponseError) Error() string {
	return fmt.Sprintf("malformed translation response (%s direction): %+v", e.Direction, e.Payload)
}

// InternalError wraps a backend response that succeeded but omitted
// fields the engine requires to proceed (spec §7: "backend returned
// success without required fields").
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return "internal error: " + e.Message }
