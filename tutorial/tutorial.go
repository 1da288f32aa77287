// Package tutorial is the CSS locator tutorial page: a checkout form fixture,
// the bindings for its fields and the values a correct locator must read.
package tutorial

import (
	"context"

	"github.com/gobuffalo/packr/v2"
	"gitlab.com/locatork/document/static"
	"gitlab.com/locatork/locatork"
)

// SiteBox holds the tutorial site, served by the serve command and loaded by Document.
var SiteBox = packr.New("locatork-tutorial-site", "./site")

// IndexPage of the site
const IndexPage = "index.html"

// Field names of the page
const (
	FirstNameField    = "firstNameField"
	SurnameField      = "surnameField"
	EmailField        = "emailField"
	PasswordField     = "passwordField"
	City              = "city"
	Street            = "street"
	Postage           = "postage"
	SalesTax          = "salesTax"
	OrderDetailsTitle = "orderDetailsTitle"
	TotalPrice        = "totalPrice"
	Countries         = "countries"
)

// Selectors that are not bound to a field
const (
	AvailableColorsSelector   = "#available-colors .color"
	UnavailableColorsSelector = "#unavailable-colors .color"
	AvailableColorSpans       = "#available-colors span"
	UnavailableColorSpans     = "#unavailable-colors span"
)

// Values on the fixture page
const (
	ExpectedFirstNamePlaceholder = "Enter first name"
	ExpectedSurnamePlaceholder   = "Enter surnameField"
	ExpectedEmailPlaceholder     = "Enter emailField"
	ExpectedPasswordPlaceholder  = "Password"
	ExpectedStreetPlaceholder    = "Enter Street"
	ExpectedCityPlaceholder      = "Enter City"
	ExpectedPostage              = "5"
	ExpectedSalesTax             = "20"
	ExpectedOrderDetailsTitle    = "Order"
	ExpectedTotalPrice           = "125"
)

// revive:exported
var (
	ExpectedCountries         = []string{"England", "France", "Ireland", "Italy", "Scotland", "Wales"}
	ExpectedAvailableColors   = []string{"Blue", "Red", "Yellow", "Green"}
	ExpectedUnavailableColors = []string{"Cyan", "Grey"}
)

// Fields of the page and their selectors
func Fields() map[string]string {
	return map[string]string{
		FirstNameField:    "#firstNameField",
		SurnameField:      "#surnameField",
		EmailField:        "input[name='emailField']",
		PasswordField:     "input[name='passwordField']",
		City:              "input[id$='city']",
		Street:            "input[id$='street']",
		Postage:           ".postage-cost",
		SalesTax:          ".sales-tax",
		OrderDetailsTitle: "#order-details > .card-title",
		TotalPrice:        "#total-price > .amount",
		Countries:         "select[name='country'] > option",
	}
}

// Bindings of the page. The selectors are constants so failure to bind is a programming error.
func Bindings() *locatork.Bindings {
	b, err := locatork.NewBindings(Fields())
	if err != nil {
		panic(err)
	}
	return b
}

// Document of the bundled index page
func Document() (*static.Document, error) {
	html, err := SiteBox.FindString(IndexPage)
	if err != nil {
		return nil, err
	}
	return static.FromString(html)
}

// ThePage is the page object for the tutorial site
type ThePage struct {
	*locatork.Locator
}

// Open the page object over doc
func Open(doc locatork.Document) *ThePage {
	return &ThePage{Locator: locatork.New(doc, Bindings())}
}

// Placeholder of a bound input field
func (p *ThePage) Placeholder(ctx context.Context, field string) (string, error) {
	ele, err := p.Field(ctx, field)
	if err != nil {
		return "", err
	}
	val, _, err := p.AttributeOf(ctx, ele, "placeholder")
	return val, err
}

// TextOfField of a bound element
func (p *ThePage) TextOfField(ctx context.Context, field string) (string, error) {
	ele, err := p.Field(ctx, field)
	if err != nil {
		return "", err
	}
	return ele.Text(ctx)
}

// Countries in the country dropdown
func (p *ThePage) Countries(ctx context.Context) ([]string, error) {
	c, err := p.FieldAll(ctx, Countries)
	if err != nil {
		return nil, err
	}
	return p.TextOf(ctx, c)
}

// AvailableColors listed on the page
func (p *ThePage) AvailableColors(ctx context.Context) ([]string, error) {
	return p.Texts(ctx, AvailableColorsSelector)
}

// UnavailableColors listed on the page
func (p *ThePage) UnavailableColors(ctx context.Context) ([]string, error) {
	return p.Texts(ctx, UnavailableColorsSelector)
}

// NthAvailableColor 1-based
func (p *ThePage) NthAvailableColor(ctx context.Context, index int) (string, error) {
	return p.Nth(ctx, AvailableColorSpans, index)
}

// NthUnavailableColor 1-based
func (p *ThePage) NthUnavailableColor(ctx context.Context, index int) (string, error) {
	return p.Nth(ctx, UnavailableColorSpans, index)
}

// Expectations is the answer key for the page
func Expectations() []locatork.Expectation {
	return []locatork.Expectation{
		{Name: "locate firstName by id", Field: FirstNameField, Attribute: "placeholder", Equals: ExpectedFirstNamePlaceholder},
		{Name: "locate surname by id", Field: SurnameField, Attribute: "placeholder", Equals: ExpectedSurnamePlaceholder},
		{Name: "locate postage cost", Field: Postage, Equals: ExpectedPostage},
		{Name: "locate sales tax", Field: SalesTax, Equals: ExpectedSalesTax},
		{Name: "locate email field by name", Field: EmailField, Attribute: "placeholder", Equals: ExpectedEmailPlaceholder},
		{Name: "locate password field by name", Field: PasswordField, Attribute: "placeholder", Equals: ExpectedPasswordPlaceholder},
		{Name: "locate order details title", Field: OrderDetailsTitle, Equals: ExpectedOrderDetailsTitle},
		{Name: "locate total price", Field: TotalPrice, Equals: ExpectedTotalPrice},
		{Name: "locate all countries", Field: Countries, All: true, Contains: ExpectedCountries},
		{Name: "locate available colors", Selector: AvailableColorsSelector, All: true, Contains: ExpectedAvailableColors},
		{Name: "locate unavailable colors", Selector: UnavailableColorsSelector, All: true, Contains: ExpectedUnavailableColors},
		{Name: "locate 2nd available color", Selector: AvailableColorSpans, Nth: locatork.NthOf(2), Equals: "Red"},
		{Name: "locate 2nd unavailable color", Selector: UnavailableColorSpans, Nth: locatork.NthOf(2), Equals: "Grey"},
		{Name: "locate street by partial attribute", Field: Street, Attribute: "placeholder", Equals: ExpectedStreetPlaceholder},
		{Name: "locate city by partial attribute", Field: City, Attribute: "placeholder", Equals: ExpectedCityPlaceholder},
	}
}
