// Package static provides locatork documents backed by parsed HTML, either a
// fixed snapshot or a source (file, URL) that is re-read for every query.
package static

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/locatork/locatork"
)

// Loader returns the current HTML of a live source
type Loader func(ctx context.Context) (io.ReadCloser, error)

// Document over an HTML snapshot, or a live source when created with a Loader
type Document struct {
	lock   sync.RWMutex
	doc    *goquery.Document
	load   Loader
	source string
}

// New snapshot document from r
func New(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse document")
	}
	return &Document{doc: doc, source: "inline"}, nil
}

// FromString snapshot document
func FromString(html string) (*Document, error) {
	return New(strings.NewReader(html))
}

// NewLive document that calls load for every query, nothing is cached between queries
func NewLive(source string, load Loader) *Document {
	return &Document{load: load, source: source}
}

// Open a live document over a file, the file is re-read on every query
func Open(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return NewLive(path, func(ctx context.Context) (io.ReadCloser, error) {
		return os.Open(path)
	}), nil
}

// Fetch a live document over a URL, re-fetched on every query. A nil client uses http.DefaultClient.
func Fetch(url string, client *http.Client) *Document {
	if client == nil {
		client = http.DefaultClient
	}
	return NewLive(url, func(ctx context.Context) (io.ReadCloser, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
		}
		return resp.Body, nil
	})
}

// Source describes where the document comes from
func (d *Document) Source() string {
	return d.source
}

// SetContent replaces the document. For live documents this turns them into a snapshot.
func (d *Document) SetContent(html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return errors.Wrap(err, "parse document")
	}
	d.lock.Lock()
	d.doc = doc
	d.load = nil
	d.lock.Unlock()
	return nil
}

func (d *Document) current(ctx context.Context) (*goquery.Document, error) {
	d.lock.RLock()
	doc, load := d.doc, d.load
	d.lock.RUnlock()

	if load == nil {
		return doc, nil
	}

	rc, err := load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load "+d.source)
	}
	defer rc.Close()

	doc, err = goquery.NewDocumentFromReader(rc)
	if err != nil {
		return nil, errors.Wrap(err, "parse "+d.source)
	}
	log.Ctx(ctx).Debug().Str("source", d.source).Msg("document loaded")
	return doc, nil
}

func (d *Document) find(ctx context.Context, selector string) (*goquery.Selection, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, &locatork.InvalidSelectorErr{Selector: selector, Message: err.Error()}
	}
	doc, err := d.current(ctx)
	if err != nil {
		return nil, err
	}
	return doc.FindMatcher(matcher), nil
}

// Query the first node matching selector
func (d *Document) Query(ctx context.Context, selector string) (locatork.Node, bool, error) {
	s, err := d.find(ctx, selector)
	if err != nil {
		return nil, false, err
	}
	if s.Length() == 0 {
		return nil, false, nil
	}
	return &Node{s: s.First()}, true, nil
}

// QueryAll nodes matching selector in document order
func (d *Document) QueryAll(ctx context.Context, selector string) ([]locatork.Node, error) {
	s, err := d.find(ctx, selector)
	if err != nil {
		return nil, err
	}
	nodes := make([]locatork.Node, 0, s.Length())
	s.Each(func(_ int, item *goquery.Selection) {
		nodes = append(nodes, &Node{s: item})
	})
	return nodes, nil
}

// HTML of the whole document
func (d *Document) HTML(ctx context.Context) (string, error) {
	doc, err := d.current(ctx)
	if err != nil {
		return "", err
	}
	return doc.Html()
}

// Node is a single element of a parsed document
type Node struct {
	s *goquery.Selection
}

// Text content of the node and its descendants
func (n *Node) Text() (string, error) {
	return n.s.Text(), nil
}

// Attribute value, names are matched case insensitively like the html parser does
func (n *Node) Attribute(name string) (string, bool, error) {
	val, ok := n.s.Attr(strings.ToLower(name))
	return val, ok, nil
}

// Tag name of the node
func (n *Node) Tag() string {
	return goquery.NodeName(n.s)
}
