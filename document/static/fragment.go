package static

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"gitlab.com/locatork/locatork"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// template context accepts any element (td, option, li...) without fostering
var fragmentContext = &html.Node{
	Type:     html.ElementNode,
	Data:     "template",
	DataAtom: atom.Template,
}

// FragmentNode parses the serialized outer HTML of a single element into a Node.
func FragmentNode(outerHTML string) (locatork.Node, error) {
	tag := openingTag(outerHTML)
	if tag == "" {
		return nil, errors.New("no element in fragment")
	}
	nodes, err := html.ParseFragment(strings.NewReader(outerHTML), fragmentContext)
	if err != nil {
		return nil, errors.Wrap(err, "parse fragment")
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode && n.Data == tag {
			return &Node{s: goquery.NewDocumentFromNode(n).Selection}, nil
		}
	}

	// html, head and body are dropped by fragment parsing, fall back to a full parse
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(outerHTML))
	if err != nil {
		return nil, errors.Wrap(err, "parse fragment")
	}
	s := doc.Find(tag).First()
	if s.Length() == 0 {
		return nil, errors.New("no " + tag + " element in fragment")
	}
	return &Node{s: s}, nil
}

func openingTag(outerHTML string) string {
	start := strings.IndexByte(outerHTML, '<')
	if start < 0 {
		return ""
	}
	tag := outerHTML[start+1:]
	if end := strings.IndexAny(tag, " \t\r\n/>"); end >= 0 {
		tag = tag[:end]
	}
	return strings.ToLower(tag)
}
