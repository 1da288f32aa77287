package locatork

import (
	"sort"

	"github.com/andybalholm/cascadia"
)

// Binding associates a logical field name with a CSS selector. Bindings are
// validated when created and can not be changed afterwards.
type Binding struct {
	name     string
	selector string
}

// NewBinding compiles selector and returns the binding, or an InvalidSelectorErr
func NewBinding(name, selector string) (Binding, error) {
	if err := ValidateSelector(selector); err != nil {
		return Binding{}, err
	}
	return Binding{name: name, selector: selector}, nil
}

// MustBinding is NewBinding for package level declarations, it panics on a bad selector
func MustBinding(name, selector string) Binding {
	b, err := NewBinding(name, selector)
	if err != nil {
		panic(err)
	}
	return b
}

// Name of the field
func (b Binding) Name() string {
	return b.name
}

// Selector expression of the field
func (b Binding) Selector() string {
	return b.selector
}

func (b Binding) String() string {
	return b.name + "=" + b.selector
}

// ValidateSelector checks the selector parses as a CSS selector group
func ValidateSelector(selector string) error {
	if selector == "" {
		return &InvalidSelectorErr{Selector: selector, Message: "empty selector"}
	}
	if _, err := cascadia.ParseGroup(selector); err != nil {
		return &InvalidSelectorErr{Selector: selector, Message: err.Error()}
	}
	return nil
}

// Bindings is the read only set of field bindings for a page, built once at setup.
type Bindings struct {
	byName map[string]Binding
	names  []string
}

// NewBindings from a field name -> selector map
func NewBindings(fields map[string]string) (*Bindings, error) {
	b := &Bindings{
		byName: make(map[string]Binding, len(fields)),
		names:  make([]string, 0, len(fields)),
	}
	for name, selector := range fields {
		if name == "" {
			return nil, &InvalidSelectorErr{Selector: selector, Message: "binding has no field name"}
		}
		binding, err := NewBinding(name, selector)
		if err != nil {
			return nil, err
		}
		b.byName[name] = binding
		b.names = append(b.names, name)
	}
	sort.Strings(b.names)
	return b, nil
}

// BindingsOf the provided bindings, duplicate names are rejected
func BindingsOf(bindings ...Binding) (*Bindings, error) {
	b := &Bindings{
		byName: make(map[string]Binding, len(bindings)),
		names:  make([]string, 0, len(bindings)),
	}
	for _, binding := range bindings {
		if binding.name == "" {
			return nil, &InvalidSelectorErr{Selector: binding.selector, Message: "binding has no field name"}
		}
		if _, exist := b.byName[binding.name]; exist {
			return nil, &InvalidSelectorErr{Selector: binding.selector, Message: "duplicate field " + binding.name}
		}
		b.byName[binding.name] = binding
		b.names = append(b.names, binding.name)
	}
	sort.Strings(b.names)
	return b, nil
}

// Get the binding for a field name
func (b *Bindings) Get(name string) (Binding, bool) {
	if b == nil {
		return Binding{}, false
	}
	binding, ok := b.byName[name]
	return binding, ok
}

// Names of all bound fields, sorted
func (b *Bindings) Names() []string {
	if b == nil {
		return nil
	}
	names := make([]string, len(b.names))
	copy(names, b.names)
	return names
}

// Len of the bindings
func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.names)
}
