package mock

import (
	"context"

	"gitlab.com/locatork/locatork"
)

// MakeMockNode with fixed text and attributes
func MakeMockNode(text string, attrs map[string]string) *Node {
	return &Node{
		TextFn: func() (string, error) {
			return text, nil
		},
		AttributeFn: func(name string) (string, bool, error) {
			val, ok := attrs[name]
			return val, ok, nil
		},
	}
}

// MakeMockNodes one per text
func MakeMockNodes(texts ...string) []locatork.Node {
	nodes := make([]locatork.Node, len(texts))
	for i, text := range texts {
		nodes[i] = MakeMockNode(text, nil)
	}
	return nodes
}

// MakeMockDocument answering from a selector -> nodes map. Selectors not in
// the map match nothing.
func MakeMockDocument(matches map[string][]locatork.Node) *Document {
	return &Document{
		QueryFn: func(ctx context.Context, selector string) (locatork.Node, bool, error) {
			nodes := matches[selector]
			if len(nodes) == 0 {
				return nil, false, nil
			}
			return nodes[0], true, nil
		},
		QueryAllFn: func(ctx context.Context, selector string) ([]locatork.Node, error) {
			return matches[selector], nil
		},
	}
}
