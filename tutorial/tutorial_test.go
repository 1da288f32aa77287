package tutorial_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/locatork/locatork"
	"gitlab.com/locatork/mock"
	"gitlab.com/locatork/tutorial"
)

func openThePage(t *testing.T) (context.Context, *tutorial.ThePage) {
	doc, err := tutorial.Document()
	require.NoError(t, err)
	return mock.Context(context.Background()), tutorial.Open(doc)
}

func TestLocateFirstNameByID(t *testing.T) {
	ctx, onThePage := openThePage(t)
	got, err := onThePage.Placeholder(ctx, tutorial.FirstNameField)
	require.NoError(t, err)
	assert.Equal(t, "Enter first name", got)
}

func TestLocateSurnameByID(t *testing.T) {
	ctx, onThePage := openThePage(t)
	got, err := onThePage.Placeholder(ctx, tutorial.SurnameField)
	require.NoError(t, err)
	assert.Equal(t, tutorial.ExpectedSurnamePlaceholder, got)
}

func TestLocatePostageCost(t *testing.T) {
	ctx, onThePage := openThePage(t)
	got, err := onThePage.TextOfField(ctx, tutorial.Postage)
	require.NoError(t, err)
	assert.Equal(t, "5", got)
}

func TestLocateSalesTax(t *testing.T) {
	ctx, onThePage := openThePage(t)
	got, err := onThePage.TextOfField(ctx, tutorial.SalesTax)
	require.NoError(t, err)
	assert.Equal(t, "20", got)
}

func TestLocateEmailFieldByName(t *testing.T) {
	ctx, onThePage := openThePage(t)
	got, err := onThePage.Placeholder(ctx, tutorial.EmailField)
	require.NoError(t, err)
	assert.Equal(t, "Enter emailField", got)
}

func TestLocatePasswordFieldByName(t *testing.T) {
	ctx, onThePage := openThePage(t)
	got, err := onThePage.Placeholder(ctx, tutorial.PasswordField)
	require.NoError(t, err)
	assert.Equal(t, "Password", got)
}

func TestLocateOrderDetailsTitle(t *testing.T) {
	ctx, onThePage := openThePage(t)
	got, err := onThePage.TextOfField(ctx, tutorial.OrderDetailsTitle)
	require.NoError(t, err)
	assert.Equal(t, "Order", got)
}

func TestLocateTotalPrice(t *testing.T) {
	ctx, onThePage := openThePage(t)
	got, err := onThePage.TextOfField(ctx, tutorial.TotalPrice)
	require.NoError(t, err)
	assert.Equal(t, "125", got)
}

func TestLocateAllCountries(t *testing.T) {
	ctx, onThePage := openThePage(t)
	got, err := onThePage.Countries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"England", "France", "Ireland", "Italy", "Scotland", "Wales"}, got)
}

func TestLocateAvailableColors(t *testing.T) {
	ctx, onThePage := openThePage(t)
	got, err := onThePage.AvailableColors(ctx)
	require.NoError(t, err)
	assert.Subset(t, got, []string{"Blue", "Red", "Yellow", "Green"})
}

func TestLocateUnavailableColors(t *testing.T) {
	ctx, onThePage := openThePage(t)
	got, err := onThePage.UnavailableColors(ctx)
	require.NoError(t, err)
	assert.Subset(t, got, []string{"Cyan", "Grey"})
}

func TestLocate2ndAvailableColor(t *testing.T) {
	ctx, onThePage := openThePage(t)
	got, err := onThePage.NthAvailableColor(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Red", got)
}

func TestLocate2ndUnavailableColor(t *testing.T) {
	ctx, onThePage := openThePage(t)
	got, err := onThePage.NthUnavailableColor(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Grey", got)
}

func TestLocateNthColorPastTheEnd(t *testing.T) {
	ctx, onThePage := openThePage(t)
	_, err := onThePage.NthUnavailableColor(ctx, 3)
	require.Error(t, err)
	assert.True(t, locatork.IsNotFound(err))
}

func TestNthMatchesIndexedTexts(t *testing.T) {
	ctx, onThePage := openThePage(t)
	colors, err := onThePage.Texts(ctx, tutorial.AvailableColorSpans)
	require.NoError(t, err)
	for k := 1; k <= len(colors); k++ {
		got, err := onThePage.NthAvailableColor(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, colors[k-1], got)
	}
}

func TestLocateFieldByPartialAttributeValue(t *testing.T) {
	ctx, onThePage := openThePage(t)
	street, err := onThePage.Placeholder(ctx, tutorial.Street)
	require.NoError(t, err)
	assert.Equal(t, "Enter Street", street)

	city, err := onThePage.Placeholder(ctx, tutorial.City)
	require.NoError(t, err)
	assert.Equal(t, "Enter City", city)
}

func TestAnswerKeyPasses(t *testing.T) {
	ctx, onThePage := openThePage(t)
	for _, result := range locatork.CheckAll(ctx, onThePage.Locator, tutorial.Expectations()) {
		assert.True(t, result.Passed, "%s: %s", result.Name, result.Reason)
	}
}

func TestBindingsCoverEveryField(t *testing.T) {
	b := tutorial.Bindings()
	assert.Equal(t, len(tutorial.Fields()), b.Len())
	for _, name := range b.Names() {
		binding, ok := b.Get(name)
		require.True(t, ok)
		assert.Equal(t, tutorial.Fields()[name], binding.Selector())
	}
}

func TestChecksConfigPasses(t *testing.T) {
	cfg, err := locatork.LoadConfig("checks.toml")
	require.NoError(t, err)
	assert.Equal(t, locatork.EngineStatic, cfg.Engine)

	assert.Equal(t, tutorial.Fields(), cfg.Fields)
	answers := tutorial.Expectations()
	require.Len(t, cfg.Expect, len(answers)+1)
	assert.Equal(t, answers, cfg.Expect[:len(answers)])
	assert.True(t, cfg.Expect[len(answers)].Absent)

	bindings, err := cfg.Bindings()
	require.NoError(t, err)
	assert.Equal(t, tutorial.Bindings().Names(), bindings.Names())

	doc, err := tutorial.Document()
	require.NoError(t, err)
	l := locatork.New(doc, bindings)
	for _, result := range locatork.CheckAll(mock.Context(context.Background()), l, cfg.Expect) {
		assert.True(t, result.Passed, "%s: %s", result.Name, result.Reason)
	}
}
