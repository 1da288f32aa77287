package rodpage_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/locatork/browser"
	"gitlab.com/locatork/browser/rodpage"
	"gitlab.com/locatork/locatork"
	"gitlab.com/locatork/mock"
	"gitlab.com/locatork/tutorial"
)

func openTutorial(t *testing.T, stealth bool) (context.Context, *rodpage.Page, func()) {
	if testing.Short() {
		t.Skip("browser tests are skipped in short mode")
	}
	if !browser.ChromeAvailable() {
		t.Skip("chrome not found, set " + browser.ChromeEnv)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.StaticFS("/site", tutorial.SiteBox)
	srv := httptest.NewServer(router)

	ctx := mock.Context(context.Background())
	b, err := rodpage.Launch(ctx, rodpage.Options{Headless: true, Stealth: stealth, NavTimeout: 20 * time.Second})
	if err != nil {
		srv.Close()
		t.Fatalf("launch: %s", err)
	}
	page, err := b.Open(ctx, srv.URL+"/site/"+tutorial.IndexPage)
	if err != nil {
		b.Close()
		srv.Close()
		t.Fatalf("open: %s", err)
	}
	return ctx, page, func() {
		page.Close()
		b.Close()
		srv.Close()
	}
}

func TestPageAnswerKey(t *testing.T) {
	ctx, page, done := openTutorial(t, false)
	defer done()

	onThePage := tutorial.Open(page)
	for _, result := range locatork.CheckAll(ctx, onThePage.Locator, tutorial.Expectations()) {
		assert.True(t, result.Passed, "%s: %s", result.Name, result.Reason)
	}
}

func TestStealthPage(t *testing.T) {
	ctx, page, done := openTutorial(t, true)
	defer done()

	onThePage := tutorial.Open(page)
	colors, err := onThePage.AvailableColors(ctx)
	require.NoError(t, err)
	assert.Equal(t, tutorial.ExpectedAvailableColors, colors)

	ele, err := onThePage.Field(ctx, tutorial.City)
	require.NoError(t, err)
	_, ok, err := ele.Attribute(ctx, "data-missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, found, err := page.Query(ctx, "#does-not-exist")
	require.NoError(t, err)
	assert.False(t, found)
}
