package locatork

import (
	"fmt"

	"github.com/pkg/errors"
)

// NotFoundErr when a single match is required but the selector matched nothing,
// or an ordinal index is past the available matches.
type NotFoundErr struct {
	Selector string
	Index    int // 1-based ordinal, only meaningful when Ordinal is set
	Ordinal  bool
}

func (e *NotFoundErr) Error() string {
	if e.Ordinal {
		return fmt.Sprintf("Unable to find element %d of %s", e.Index, e.Selector)
	}
	return "Unable to find element " + e.Selector
}

// AmbiguousMatchErr only returned by strict resolution when more than one node matched
type AmbiguousMatchErr struct {
	Selector string
	Count    int
}

func (e *AmbiguousMatchErr) Error() string {
	return fmt.Sprintf("selector %s matched %d elements, expected 1", e.Selector, e.Count)
}

// InvalidSelectorErr when a selector expression does not parse
type InvalidSelectorErr struct {
	Selector string
	Message  string
}

func (e *InvalidSelectorErr) Error() string {
	return "invalid selector " + e.Selector + ": " + e.Message
}

// UnknownFieldErr when a field name has no binding
type UnknownFieldErr struct {
	Field string
}

func (e *UnknownFieldErr) Error() string {
	return "no binding for field " + e.Field
}

// IsNotFound reports whether err (or anything it wraps) is a NotFoundErr
func IsNotFound(err error) bool {
	var nf *NotFoundErr
	return errors.As(err, &nf)
}
