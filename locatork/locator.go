package locatork

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Locator resolves bound fields and selectors against a Document. It keeps no
// results between calls: every resolution and every element access queries
// the document again, so values always reflect its current state.
type Locator struct {
	doc      Document
	bindings *Bindings
}

// New locator over doc. bindings may be nil if only raw selectors are used.
func New(doc Document, bindings *Bindings) *Locator {
	return &Locator{doc: doc, bindings: bindings}
}

// Document this locator queries
func (l *Locator) Document() Document {
	return l.doc
}

// Bindings this locator was created with
func (l *Locator) Bindings() *Bindings {
	return l.bindings
}

// Resolve the binding to the first matching element in document order.
// Returns a NotFoundErr if nothing matches; multiple matches are not an error.
func (l *Locator) Resolve(ctx context.Context, b Binding) (*Element, error) {
	_, found, err := l.doc.Query(ctx, b.selector)
	if err != nil {
		return nil, errors.Wrap(err, "resolve "+b.name)
	}
	if !found {
		log.Ctx(ctx).Debug().Str("field", b.name).Str("selector", b.selector).Msg("no match")
		return nil, &NotFoundErr{Selector: b.selector}
	}
	log.Ctx(ctx).Debug().Str("field", b.name).Str("selector", b.selector).Msg("resolved")
	return &Element{doc: l.doc, selector: b.selector, single: true}, nil
}

// ResolveUnique is a strict Resolve, returning AmbiguousMatchErr when more than one node matches.
func (l *Locator) ResolveUnique(ctx context.Context, b Binding) (*Element, error) {
	nodes, err := l.doc.QueryAll(ctx, b.selector)
	if err != nil {
		return nil, errors.Wrap(err, "resolve "+b.name)
	}
	switch len(nodes) {
	case 0:
		return nil, &NotFoundErr{Selector: b.selector}
	case 1:
		return &Element{doc: l.doc, selector: b.selector, single: true}, nil
	}
	return nil, &AmbiguousMatchErr{Selector: b.selector, Count: len(nodes)}
}

// Field resolves the element bound to name
func (l *Locator) Field(ctx context.Context, name string) (*Element, error) {
	b, ok := l.bindings.Get(name)
	if !ok {
		return nil, &UnknownFieldErr{Field: name}
	}
	return l.Resolve(ctx, b)
}

// FieldAll resolves every element matched by the selector bound to name
func (l *Locator) FieldAll(ctx context.Context, name string) (*Collection, error) {
	b, ok := l.bindings.Get(name)
	if !ok {
		return nil, &UnknownFieldErr{Field: name}
	}
	return l.ResolveAll(ctx, b.selector)
}

// ResolveAll matches selector against the document. No matches gives an empty
// collection, not an error.
func (l *Locator) ResolveAll(ctx context.Context, selector string) (*Collection, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	nodes, err := l.doc.QueryAll(ctx, selector)
	if err != nil {
		return nil, errors.Wrap(err, "resolve all "+selector)
	}
	c := &Collection{doc: l.doc, selector: selector, elements: make([]*Element, len(nodes))}
	for i := range nodes {
		c.elements[i] = &Element{doc: l.doc, selector: selector, index: i}
	}
	log.Ctx(ctx).Debug().Str("selector", selector).Int("matches", len(nodes)).Msg("resolved all")
	return c, nil
}

// TextOf each element of the collection, in document order.
func (l *Locator) TextOf(ctx context.Context, c *Collection) ([]string, error) {
	texts := make([]string, 0, c.Len())
	if c.Len() == 0 {
		return texts, nil
	}
	nodes, err := c.doc.QueryAll(ctx, c.selector)
	if err != nil {
		return nil, errors.Wrap(err, "text of "+c.selector)
	}
	for _, ele := range c.elements {
		if ele.index >= len(nodes) {
			return nil, &NotFoundErr{Selector: c.selector, Index: ele.index + 1, Ordinal: true}
		}
		text, err := nodes[ele.index].Text()
		if err != nil {
			return nil, err
		}
		texts = append(texts, NormalizeText(text))
	}
	return texts, nil
}

// Texts is ResolveAll followed by TextOf
func (l *Locator) Texts(ctx context.Context, selector string) ([]string, error) {
	c, err := l.ResolveAll(ctx, selector)
	if err != nil {
		return nil, err
	}
	return l.TextOf(ctx, c)
}

// NthChild appends the ordinal pseudo selector for the 1-based index
func NthChild(selector string, index int) string {
	return selector + ":nth-child(" + strconv.Itoa(index) + ")"
}

// NthElement resolves selector:nth-child(index). index is 1-based.
func (l *Locator) NthElement(ctx context.Context, selector string, index int) (*Element, error) {
	if index < 1 {
		return nil, &NotFoundErr{Selector: selector, Index: index, Ordinal: true}
	}
	nth := NthChild(selector, index)
	if err := ValidateSelector(nth); err != nil {
		return nil, err
	}
	_, found, err := l.doc.Query(ctx, nth)
	if err != nil {
		return nil, errors.Wrap(err, "resolve "+nth)
	}
	if !found {
		return nil, &NotFoundErr{Selector: selector, Index: index, Ordinal: true}
	}
	return &Element{doc: l.doc, selector: nth, single: true}, nil
}

// Nth returns the text of the index'th (1-based) match of selector, using :nth-child.
func (l *Locator) Nth(ctx context.Context, selector string, index int) (string, error) {
	ele, err := l.NthElement(ctx, selector, index)
	if err != nil {
		return "", err
	}
	return ele.Text(ctx)
}

// AttributeOf the element. A missing attribute is reported as ("", false, nil).
func (l *Locator) AttributeOf(ctx context.Context, ele *Element, name string) (string, bool, error) {
	return ele.Attribute(ctx, name)
}

// Element is a resolved element. It only remembers how it was found and
// re-queries the document on every access.
type Element struct {
	doc      Document
	selector string
	index    int  // position among all matches
	single   bool // resolved in single (first match) mode
}

// Selector the element was resolved with
func (e *Element) Selector() string {
	return e.selector
}

// Position of the element among the selector's matches, 1-based
func (e *Element) Position() int {
	return e.index + 1
}

func (e *Element) node(ctx context.Context) (Node, error) {
	if e.single {
		node, found, err := e.doc.Query(ctx, e.selector)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, &NotFoundErr{Selector: e.selector}
		}
		return node, nil
	}

	nodes, err := e.doc.QueryAll(ctx, e.selector)
	if err != nil {
		return nil, err
	}
	if e.index >= len(nodes) {
		return nil, &NotFoundErr{Selector: e.selector, Index: e.index + 1, Ordinal: true}
	}
	return nodes[e.index], nil
}

// Text of the element, whitespace collapsed
func (e *Element) Text(ctx context.Context) (string, error) {
	node, err := e.node(ctx)
	if err != nil {
		return "", err
	}
	text, err := node.Text()
	if err != nil {
		return "", err
	}
	return NormalizeText(text), nil
}

// Attribute value and whether it is present
func (e *Element) Attribute(ctx context.Context, name string) (string, bool, error) {
	node, err := e.node(ctx)
	if err != nil {
		return "", false, err
	}
	return node.Attribute(name)
}

// Collection of elements matched by a selector, in document order
type Collection struct {
	doc      Document
	selector string
	elements []*Element
}

// Selector the collection was resolved with
func (c *Collection) Selector() string {
	return c.selector
}

// Len at resolution time
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.elements)
}

// Elements in document order
func (c *Collection) Elements() []*Element {
	elements := make([]*Element, len(c.elements))
	copy(elements, c.elements)
	return elements
}

// At returns the element at the 1-based position
func (c *Collection) At(position int) (*Element, error) {
	if position < 1 || position > len(c.elements) {
		return nil, &NotFoundErr{Selector: c.selector, Index: position, Ordinal: true}
	}
	return c.elements[position-1], nil
}
