package internal

import (
	"github.com/cockroachdb/errors"
)

// Engine error taxonomy. Callers classify with errors.Is against these
// sentinels; the transport layer owns the mapping to response codes.
var (
	// ErrInternal is the catch-all for invariant violations inside the engine.
	ErrInternal = errors.New("internal error")

	// ErrDefinition indicates an entity definition is missing a required part
	// (schema or workflow) or is self-inconsistent.
	ErrDefinition = errors.New("invalid entity definition")

	// ErrConnection indicates the shared store connection could not be
	// established or configured.
	ErrConnection = errors.New("connection unavailable")

	// ErrNotFound indicates zero rows (or, for unique probes, more than one
	// row) where exactly one was required.
	ErrNotFound = errors.New("record not found")

	// ErrMissingParameter indicates a required input or identity was absent.
	ErrMissingParameter = errors.New("required parameter missing")

	// ErrNotReady indicates a document accessor was used before the document
	// was populated.
	ErrNotReady = errors.New("document not populated")

	// ErrAmbiguousTransition indicates zero or multiple legal workflow
	// transitions where exactly one was required.
	ErrAmbiguousTransition = errors.New("ambiguous workflow transition")
)

// NotFoundf returns a new error classified as ErrNotFound.
func NotFoundf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrNotFound)
}

// MissingParameterf returns a new error classified as ErrMissingParameter.
func MissingParameterf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrMissingParameter)
}

// DefinitionErrorf returns a new error classified as ErrDefinition.
func DefinitionErrorf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrDefinition)
}

// ConnectionError wraps err, classifying it as ErrConnection. A nil err
// yields a new error with just the message.
func ConnectionError(err error, format string, args ...interface{}) error {
	if err == nil {
		return errors.Mark(errors.Newf(format, args...), ErrConnection)
	}
	return errors.Mark(errors.Wrapf(err, format, args...), ErrConnection)
}

// AmbiguousTransitionf returns a new error classified as ErrAmbiguousTransition.
func AmbiguousTransitionf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrAmbiguousTransition)
}
