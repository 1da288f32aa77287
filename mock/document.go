package mock

import (
	"context"

	"gitlab.com/locatork/locatork"
)

// Document mocks locatork.Document
type Document struct {
	QueryFn     func(ctx context.Context, selector string) (locatork.Node, bool, error)
	QueryCalled int

	QueryAllFn     func(ctx context.Context, selector string) ([]locatork.Node, error)
	QueryAllCalled int

	Selectors []string // every selector queried, in order
}

func (d *Document) Query(ctx context.Context, selector string) (locatork.Node, bool, error) {
	d.QueryCalled++
	d.Selectors = append(d.Selectors, selector)
	return d.QueryFn(ctx, selector)
}

func (d *Document) QueryAll(ctx context.Context, selector string) ([]locatork.Node, error) {
	d.QueryAllCalled++
	d.Selectors = append(d.Selectors, selector)
	return d.QueryAllFn(ctx, selector)
}

// Node mocks locatork.Node
type Node struct {
	TextFn     func() (string, error)
	TextCalled int

	AttributeFn     func(name string) (string, bool, error)
	AttributeCalled int
}

func (n *Node) Text() (string, error) {
	n.TextCalled++
	return n.TextFn()
}

func (n *Node) Attribute(name string) (string, bool, error) {
	n.AttributeCalled++
	return n.AttributeFn(name)
}
