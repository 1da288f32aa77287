package locatork

import (
	"context"
	"strings"
)

// Document is a live, queryable page supplied by a document provider
// (a parsed snapshot, a chrome tab, a rod page...).
type Document interface {
	// Query returns the first node matching selector in document order, false if none matched
	Query(ctx context.Context, selector string) (Node, bool, error)
	// QueryAll returns every node matching selector in document order
	QueryAll(ctx context.Context, selector string) ([]Node, error)
}

// Node is a handle into a Document as it was when the query ran.
type Node interface {
	Text() (string, error)
	// Attribute value and whether the attribute exists on the node
	Attribute(name string) (string, bool, error)
}

// NormalizeText collapses runs of whitespace and trims, approximating
// the visible text a browser reports for an element.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
