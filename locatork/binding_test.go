package locatork_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/locatork/locatork"
)

func TestNewBinding(t *testing.T) {
	var tests = []struct {
		selector string
		valid    bool
	}{
		{"#firstNameField", true},
		{"input[name='emailField']", true},
		{"input[id$='city']", true},
		{"input[id*='stree']", true},
		{"#order-details > .card-title", true},
		{"#available-colors span:nth-child(2)", true},
		{"h1, h2", true},
		{"", false},
		{"input[name=", false},
		{"#", false},
	}

	for _, tt := range tests {
		b, err := locatork.NewBinding("field", tt.selector)
		if !tt.valid {
			var invalid *locatork.InvalidSelectorErr
			assert.True(t, errors.As(err, &invalid), "expected %q to be rejected", tt.selector)
			continue
		}
		require.NoError(t, err, tt.selector)
		assert.Equal(t, "field", b.Name())
		assert.Equal(t, tt.selector, b.Selector())
	}
}

func TestMustBindingPanics(t *testing.T) {
	assert.Panics(t, func() { locatork.MustBinding("bad", "div[") })
	assert.Equal(t, "ok=#ok", locatork.MustBinding("ok", "#ok").String())
}

func TestNewBindings(t *testing.T) {
	b, err := locatork.NewBindings(map[string]string{
		"street": "input[id$='street']",
		"city":   "input[id$='city']",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "street"}, b.Names())

	city, ok := b.Get("city")
	require.True(t, ok)
	assert.Equal(t, "input[id$='city']", city.Selector())

	_, ok = b.Get("zip")
	assert.False(t, ok)

	names := b.Names()
	names[0] = "changed"
	assert.Equal(t, []string{"city", "street"}, b.Names())

	_, err = locatork.NewBindings(map[string]string{"": "#x"})
	assert.Error(t, err)

	_, err = locatork.NewBindings(map[string]string{"broken": "input["})
	assert.Error(t, err)
}

func TestBindingsOfRejectsDuplicates(t *testing.T) {
	_, err := locatork.BindingsOf(
		locatork.MustBinding("city", "#city"),
		locatork.MustBinding("city", "#town"),
	)
	assert.Error(t, err)

	b, err := locatork.BindingsOf(locatork.MustBinding("city", "#city"))
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())
}

func TestNilBindings(t *testing.T) {
	var b *locatork.Bindings
	_, ok := b.Get("anything")
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.Names())
}
