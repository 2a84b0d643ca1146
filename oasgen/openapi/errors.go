package openapi

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-readable resolution error code.
type ErrorCode string

const (
	CodeUnsupportedReferenceKind ErrorCode = "unsupported_reference_kind"
	CodeUnresolvableReference    ErrorCode = "unresolvable_reference"
)

// Sentinels matched by errors.Is against a *ResolveError of the same code.
var (
	ErrUnsupportedReferenceKind = errors.New("unsupported reference kind")
	ErrUnresolvableReference    = errors.New("unresolvable reference")
)

// ResolveError reports a reference that cannot be followed. Both codes are
// fatal for a generation run.
type ResolveError struct {
	Code    ErrorCode
	Pointer string
	// Segment is the decoded pointer segment that was not found. It is empty
	// for CodeUnsupportedReferenceKind.
	Segment string
}

func (e *ResolveError) Error() string {
	switch e.Code {
	case CodeUnsupportedReferenceKind:
		return fmt.Sprintf("%s: only local references are supported, got %q", e.Code, e.Pointer)
	default:
		return fmt.Sprintf("%s: cannot resolve %q at segment %q", e.Code, e.Pointer, e.Segment)
	}
}

// Is lets errors.Is match the package sentinels.
func (e *ResolveError) Is(target error) bool {
	switch target {
	case ErrUnsupportedReferenceKind:
		return e.Code == CodeUnsupportedReferenceKind
	case ErrUnresolvableReference:
		return e.Code == CodeUnresolvableReference
	}
	return false
}

func unsupported(pointer string) *ResolveError {
	return &ResolveError{Code: CodeUnsupportedReferenceKind, Pointer: pointer}
}

func unresolvable(pointer, segment string) *ResolveError {
	return &ResolveError{Code: CodeUnresolvableReference, Pointer: pointer, Segment: segment}
}
