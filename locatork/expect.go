package locatork

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Expectation is a declarative check against a page. Exactly one of Field or
// Selector names what to locate. With All set the texts of every match are
// checked, with Nth set the Nth (1-based) match is used, otherwise the first.
// Any Nth outside the matches, zero and negative included, is not found.
type Expectation struct {
	Name      string   `toml:"name" json:"name,omitempty" msgpack:"name"`
	Field     string   `toml:"field" json:"field,omitempty" msgpack:"field"`
	Selector  string   `toml:"selector" json:"selector,omitempty" msgpack:"selector"`
	All       bool     `toml:"all" json:"all,omitempty" msgpack:"all"`
	Nth       *int     `toml:"nth" json:"nth,omitempty" msgpack:"nth"`
	Attribute string   `toml:"attribute" json:"attribute,omitempty" msgpack:"attribute"`
	Equals    string   `toml:"equals" json:"equals,omitempty" msgpack:"equals"`
	Contains  []string `toml:"contains" json:"contains,omitempty" msgpack:"contains"`
	Absent    bool     `toml:"absent" json:"absent,omitempty" msgpack:"absent"`
}

// NthOf is the ordinal for Expectation.Nth
func NthOf(index int) *int {
	return &index
}

// Result of checking an Expectation
type Result struct {
	Name   string   `json:"name" msgpack:"name"`
	Passed bool     `json:"passed" msgpack:"passed"`
	Got    []string `json:"got" msgpack:"got"`
	Reason string   `json:"reason" msgpack:"reason"`
}

// Label of the expectation for reporting
func (e Expectation) Label() string {
	if e.Name != "" {
		return e.Name
	}
	target := e.Field
	if target == "" {
		target = e.Selector
	}
	switch {
	case e.Attribute != "":
		return target + "@" + e.Attribute
	case e.Nth != nil:
		return fmt.Sprintf("%s#%d", target, *e.Nth)
	}
	return target
}

func (e Expectation) selector(l *Locator) (string, error) {
	if e.Field == "" && e.Selector == "" {
		return "", errors.Errorf("expectation %q has neither field nor selector", e.Label())
	}
	if e.Field == "" {
		return e.Selector, nil
	}
	b, ok := l.bindings.Get(e.Field)
	if !ok {
		return "", &UnknownFieldErr{Field: e.Field}
	}
	return b.selector, nil
}

// Check the expectation using the locator. Locator errors become failed results.
func (e Expectation) Check(ctx context.Context, l *Locator) *Result {
	r := &Result{Name: e.Label()}
	got, err := e.Values(ctx, l)
	if err != nil {
		r.Reason = err.Error()
		return r
	}
	r.Got = got
	r.Passed, r.Reason = e.compare(got)
	return r
}

// Values located by the expectation: the texts, or the attribute value.
// An absent attribute gives nil and no error.
func (e Expectation) Values(ctx context.Context, l *Locator) ([]string, error) {
	selector, err := e.selector(l)
	if err != nil {
		return nil, err
	}

	if e.All {
		return l.Texts(ctx, selector)
	}

	var ele *Element
	if e.Nth != nil {
		ele, err = l.NthElement(ctx, selector, *e.Nth)
	} else {
		var b Binding
		if b, err = NewBinding(e.Label(), selector); err == nil {
			ele, err = l.Resolve(ctx, b)
		}
	}
	if err != nil {
		return nil, err
	}

	if e.Attribute != "" {
		val, ok, err := l.AttributeOf(ctx, ele, e.Attribute)
		if err != nil || !ok {
			return nil, err
		}
		return []string{val}, nil
	}

	text, err := ele.Text(ctx)
	if err != nil {
		return nil, err
	}
	return []string{text}, nil
}

func (e Expectation) compare(got []string) (bool, string) {
	if e.Absent {
		if got == nil {
			return true, ""
		}
		return false, fmt.Sprintf("expected %s to be absent, got %q", e.Attribute, got)
	}
	if got == nil {
		return false, fmt.Sprintf("attribute %s is absent", e.Attribute)
	}

	if len(e.Contains) > 0 {
		missing := make([]string, 0)
		for _, want := range e.Contains {
			if !containsString(got, want) {
				missing = append(missing, want)
			}
		}
		if len(missing) > 0 {
			return false, fmt.Sprintf("missing %s in %q", strings.Join(missing, ", "), got)
		}
		return true, ""
	}

	joined := strings.Join(got, ", ")
	if joined != e.Equals {
		return false, fmt.Sprintf("expected %q, got %q", e.Equals, joined)
	}
	return true, ""
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// CheckAll runs every expectation in order
func CheckAll(ctx context.Context, l *Locator, expectations []Expectation) []*Result {
	results := make([]*Result, len(expectations))
	for i, e := range expectations {
		results[i] = e.Check(ctx, l)
	}
	return results
}
