// Copyright © 2024 The renamebridge authors

package rename

import (
	"errors"
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Sentinel errors for the closed taxonomy in spec §7. Callers should
// compare with errors.Is; the hard-failure kinds below are returned to
// the client wrapped in the detail-carrying error types further down,
// whose Unwrap methods return the matching sentinel.
var (
	// ErrWorkspaceNotOpen is returned when the request URI has no open
	// workspace.
	ErrWorkspaceNotOpen = errors.New("workspace not open")
	// ErrUnsupportedLanguage is returned when a required translation is
	// attempted for a definition language that is neither Swift-family
	// nor Clang-family.
	ErrUnsupportedLanguage = errors.New("unsupported language for translation")
	// ErrCannotComputeOffset indicates a snapshot inconsistency: a
	// position could not be resolved to a byte offset.
	ErrCannotComputeOffset = errors.New("cannot compute offset for position")
	// ErrMalformedTranslationResponse is returned when a backend's name
	// translation response is missing required fields.
	ErrMalformedTranslationResponse = errors.New("malformed translation response")
	// ErrInternal indicates a backend returned success without a
	// required field.
	ErrInternal = errors.New("internal error")
	// ErrCancelled is the sentinel a CancelledError unwraps to when the
	// per-file fan-out fails; the underlying error is kept in its Cause
	// field.
	ErrCancelled = errors.New("rename cancelled")
)

// WorkspaceNotOpenError reports the URI for which no workspace was open.
type WorkspaceNotOpenError struct {
	URI string
}

func (e *WorkspaceNotOpenError) Error() string {
	return fmt.Sprintf("workspace not open for %s", e.URI)
}

func (e *WorkspaceNotOpenError) Unwrap() error { return ErrWorkspaceNotOpen }

// CannotComputeOffsetError reports the position that could not be
// resolved against a snapshot's line table.
type CannotComputeOffsetError struct {
	Position protocol.Position
}

func (e *CannotComputeOffsetError) Error() string {
	return fmt.Sprintf("cannot compute offset for position %d:%d", e.Position.Line, e.Position.Character)
}

func (e *CannotComputeOffsetError) Unwrap() error { return ErrCannotComputeOffset }

// MalformedTranslationResponseError reports the translation direction
// and the offending payload.
type MalformedTranslationResponseError struct {
	Direction string
	Payload   any
}

func (e *MalformedTranslationResponseError) Error() string {
	return fmt.Sprintf("malformed %s translation response: %+v", e.Direction, e.Payload)
}

func (e *MalformedTranslationResponseError) Unwrap() error { return ErrMalformedTranslationResponse }

// InternalError reports a message describing what required field or
// invariant was missing from an otherwise successful backend response.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return "internal error: " + e.Message }

func (e *InternalError) Unwrap() error { return ErrInternal }
