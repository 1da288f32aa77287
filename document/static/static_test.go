package static_test

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/locatork/document/static"
	"gitlab.com/locatork/locatork"
	"gitlab.com/locatork/mock"
)

func TestQuery(t *testing.T) {
	doc, err := static.FromString(`<ul><li class="a">one</li><li class="a" title="Two">two</li></ul>`)
	require.NoError(t, err)
	ctx := context.Background()

	node, found, err := doc.Query(ctx, ".a")
	require.NoError(t, err)
	require.True(t, found)
	text, _ := node.Text()
	assert.Equal(t, "one", text)

	_, found, err = doc.Query(ctx, ".b")
	require.NoError(t, err)
	assert.False(t, found)

	nodes, err := doc.QueryAll(ctx, "li")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	val, ok, err := nodes[1].Attribute("TITLE")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Two", val)
	assert.Equal(t, "li", nodes[1].(*static.Node).Tag())

	_, err = doc.QueryAll(ctx, "li[")
	var invalid *locatork.InvalidSelectorErr
	assert.True(t, errors.As(err, &invalid))
}

func TestOpenRereadsFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "static")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "page.html")
	require.NoError(t, ioutil.WriteFile(path, []byte(`<p class="price">5</p>`), 0644))

	doc, err := static.Open(path)
	require.NoError(t, err)
	ctx := mock.Context(context.Background())
	l := locatork.New(doc, nil)

	ele, err := l.Resolve(ctx, locatork.MustBinding("price", ".price"))
	require.NoError(t, err)
	text, err := ele.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5", text)

	require.NoError(t, ioutil.WriteFile(path, []byte(`<p class="price">7</p>`), 0644))
	text, err = ele.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7", text)

	require.NoError(t, os.Remove(path))
	_, err = ele.Text(ctx)
	assert.Error(t, err)
	assert.False(t, locatork.IsNotFound(err))

	_, err = static.Open(filepath.Join(dir, "missing.html"))
	assert.Error(t, err)
}

func TestOpenTestdata(t *testing.T) {
	doc, err := static.Open("testdata/colors.html")
	require.NoError(t, err)
	l := locatork.New(doc, nil)

	got, err := l.Nth(context.Background(), "#available-colors span", 2)
	require.NoError(t, err)
	assert.Equal(t, "Red", got)
	assert.Equal(t, "testdata/colors.html", doc.Source())
}

func TestFetch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	price := "5"
	router := gin.New()
	router.GET("/page", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html", []byte(`<span id="total">`+price+`</span>`))
	})
	router.GET("/broken", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "down")
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx := context.Background()
	doc := static.Fetch(srv.URL+"/page", nil)
	l := locatork.New(doc, nil)

	ele, err := l.Resolve(ctx, locatork.MustBinding("total", "#total"))
	require.NoError(t, err)
	text, err := ele.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5", text)

	price = "125"
	text, err = ele.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "125", text)

	broken := static.Fetch(srv.URL+"/broken", srv.Client())
	_, _, err = broken.Query(ctx, "#total")
	assert.Error(t, err)
}

func TestSetContentTurnsLiveIntoSnapshot(t *testing.T) {
	calls := 0
	doc := static.NewLive("counter", func(ctx context.Context) (io.ReadCloser, error) {
		calls++
		return ioutil.NopCloser(strings.NewReader(`<b>live</b>`)), nil
	})
	ctx := context.Background()

	_, found, err := doc.Query(ctx, "b")
	require.NoError(t, err)
	assert.True(t, found)
	_, err = doc.QueryAll(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	require.NoError(t, doc.SetContent(`<i>fixed</i>`))
	_, found, err = doc.Query(ctx, "b")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 2, calls)

	html, err := doc.HTML(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, "<i>fixed</i>")
}

func TestFragmentNode(t *testing.T) {
	var tests = []struct {
		html  string
		text  string
		attr  string
		value string
	}{
		{`<input id="firstNameField" placeholder="Enter first name">`, "", "placeholder", "Enter first name"},
		{`<td class="cell" data-col="1">one</td>`, "one", "data-col", "1"},
		{`<option value="fr">France</option>`, "France", "value", "fr"},
		{`<tr id="row"><td>a</td><td>b</td></tr>`, "ab", "id", "row"},
		{`<body class="checkout"><p>hi</p></body>`, "hi", "class", "checkout"},
		{`<span   class="color">  Blue </span>`, "  Blue ", "class", "color"},
	}

	for _, tt := range tests {
		node, err := static.FragmentNode(tt.html)
		require.NoError(t, err, tt.html)

		text, err := node.Text()
		require.NoError(t, err)
		assert.Equal(t, tt.text, text, tt.html)

		val, ok, err := node.Attribute(tt.attr)
		require.NoError(t, err)
		assert.True(t, ok, tt.html)
		assert.Equal(t, tt.value, val, tt.html)

		_, ok, _ = node.Attribute("data-missing")
		assert.False(t, ok)
	}

	_, err := static.FragmentNode("just text")
	assert.Error(t, err)
}
