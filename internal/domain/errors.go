package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAIService marks any failure of the outbound suggestion call. It is
	// recovered inside the pipeline and never surfaces to the client.
	ErrAIService = errors.New("suggestion service failure")

	// ErrRender marks a chart whose figure could not be built or serialized.
	// The offending chart is dropped and assembly continues.
	ErrRender = errors.New("render failure")
)

// ParseError reports an upload that could not be decoded into a Dataset. Its
// message is user-visible and returned with a 4xx status.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return e.Reason }

// Parsef builds a ParseError with a formatted reason.
func Parsef(format string, args ...any) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// AIServiceErr wraps a suggestion-call failure with the taxonomy sentinel so
// callers can classify it without inspecting provider internals.
func AIServiceErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrAIService, err)
}

// RenderErr wraps a figure build or serialization failure.
func RenderErr(chartTitle string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrRender, chartTitle, err)
}
