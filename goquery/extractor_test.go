package goquery_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/fwojciec/dealie"
	"github.com/fwojciec/dealie/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor() *goquery.Extractor {
	e := goquery.NewExtractor()
	e.Now = func() time.Time { return time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC) }
	return e
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts deal card with title and price", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<div class="deal-card">
	<h3 class="card-title">Weekend Special</h3>
	<span>$19.99</span>
</div>
</body>
</html>`

		result, err := newTestExtractor().Extract(html, "https://shop.test/")

		require.NoError(t, err)
		require.Len(t, result.Promotions, 1)
		p := result.Promotions[0]
		assert.Equal(t, "Weekend Special", p.Title)
		assert.Equal(t, "$19.99", p.Price)
		assert.Equal(t, "", p.Description)
		assert.Equal(t, "", p.Image)
		assert.Equal(t, "https://shop.test/", p.Source)
		assert.Equal(t, "2024-03-05", p.Date)
		assert.Empty(t, result.Skipped)
	})

	t.Run("blanks titles containing noise tokens", func(t *testing.T) {
		t.Parallel()

		html := `<div class="promo-box"><h2 class="promo-title">Hot Deal</h2><p>Two pizzas for one</p><span>$12.50</span></div>`

		result, err := newTestExtractor().Extract(html, "https://shop.test/")

		require.NoError(t, err)
		require.Len(t, result.Promotions, 1)
		assert.Equal(t, "", result.Promotions[0].Title)
		assert.Equal(t, "Two pizzas for one", result.Promotions[0].Description)
		assert.Equal(t, "$12.50", result.Promotions[0].Price)
	})

	t.Run("keeps title and description without price", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li class="menu-item"><span class="item-name">Garden Salad</span><p>Fresh greens</p></li></ul>`

		result, err := newTestExtractor().Extract(html, "https://shop.test/menu")

		require.NoError(t, err)
		require.Len(t, result.Promotions, 1)
		assert.Equal(t, "Garden Salad", result.Promotions[0].Title)
		assert.Equal(t, "Fresh greens", result.Promotions[0].Description)
		assert.Equal(t, "", result.Promotions[0].Price)
	})

	t.Run("drops candidates with neither price nor title and description", func(t *testing.T) {
		t.Parallel()

		html := `<div class="banner"><h1 class="title">Welcome</h1></div>`

		result, err := newTestExtractor().Extract(html, "https://shop.test/")

		require.NoError(t, err)
		assert.Empty(t, result.Promotions)
	})

	t.Run("drops candidates whose title is whitespace only", func(t *testing.T) {
		t.Parallel()

		html := `<div class="offer"><h2 class="title">   </h2><p>Free dessert</p></div>`

		result, err := newTestExtractor().Extract(html, "https://shop.test/")

		require.NoError(t, err)
		assert.Empty(t, result.Promotions)
	})

	t.Run("description skips noise paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<div class="special"><h3 class="name">Taco Tuesday</h3><p>Great deal inside</p><p>Three tacos</p></div>`

		result, err := newTestExtractor().Extract(html, "https://shop.test/")

		require.NoError(t, err)
		require.Len(t, result.Promotions, 1)
		assert.Equal(t, "Taco Tuesday", result.Promotions[0].Title)
		assert.Equal(t, "Three tacos", result.Promotions[0].Description)
	})

	t.Run("matches attribute patterns case-insensitively", func(t *testing.T) {
		t.Parallel()

		html := `<div class="DEAL-Card"><span>$4</span></div>`

		result, err := newTestExtractor().Extract(html, "https://shop.test/")

		require.NoError(t, err)
		require.Len(t, result.Promotions, 1)
		assert.Equal(t, "$4", result.Promotions[0].Price)
	})

	t.Run("emits one record per matching rule in rule order", func(t *testing.T) {
		t.Parallel()

		html := `<article class="card"><h3 class="card-title">Burger</h3><div class="price">$9</div></article>`

		result, err := newTestExtractor().Extract(html, "https://shop.test/")

		require.NoError(t, err)
		require.Len(t, result.Promotions, 2)
		// div rule comes first and sees no title inside the price div
		assert.Equal(t, "", result.Promotions[0].Title)
		assert.Equal(t, "$9", result.Promotions[0].Price)
		assert.Equal(t, "Burger", result.Promotions[1].Title)
		assert.Equal(t, "$9", result.Promotions[1].Price)
	})

	t.Run("matches anchors by href pattern", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/deals/summer"><span class="name">Summer Sale</span> 30% off</a>`

		result, err := newTestExtractor().Extract(html, "https://shop.test/")

		require.NoError(t, err)
		require.Len(t, result.Promotions, 1)
		assert.Equal(t, "Summer Sale", result.Promotions[0].Title)
		assert.Equal(t, "30%", result.Promotions[0].Price)
	})

	t.Run("matches sections by id and rows by class", func(t *testing.T) {
		t.Parallel()

		html := `<section id="weekly-specials"><p>$3 coffee</p></section>
<table><tr class="offer-row"><td>$7.25</td></tr></table>`

		result, err := newTestExtractor().Extract(html, "https://shop.test/")

		require.NoError(t, err)
		require.Len(t, result.Promotions, 2)
		assert.Equal(t, "$3", result.Promotions[0].Price)
		assert.Equal(t, "$7.25", result.Promotions[1].Price)
	})

	t.Run("ignores elements without the rule attribute", func(t *testing.T) {
		t.Parallel()

		html := `<div><span>$19.99</span></div><li>$5</li>`

		result, err := newTestExtractor().Extract(html, "https://shop.test/")

		require.NoError(t, err)
		assert.Empty(t, result.Promotions)
	})

	t.Run("keeps the record when the image reference is unusable", func(t *testing.T) {
		t.Parallel()

		html := `<div class="deal"><img src="http://[::1"><span>$3</span></div>
<div class="deal"><span>$4</span></div>`

		result, err := newTestExtractor().Extract(html, "https://shop.test/")

		require.NoError(t, err)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, dealie.EEXTRACT, dealie.ErrorCode(result.Skipped[0]))
		require.Len(t, result.Promotions, 2)
		assert.Equal(t, "$3", result.Promotions[0].Price)
		assert.Empty(t, result.Promotions[0].Image)
		assert.Equal(t, "$4", result.Promotions[1].Price)
	})

	t.Run("returns error for invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := newTestExtractor().Extract(`<div class="deal">$1</div>`, ":bad")

		require.Error(t, err)
		assert.Equal(t, dealie.EINVALID, dealie.ErrorCode(err))
	})

	t.Run("returns nothing for empty document", func(t *testing.T) {
		t.Parallel()

		result, err := newTestExtractor().Extract("", "https://shop.test/")

		require.NoError(t, err)
		assert.Empty(t, result.Promotions)
	})

	t.Run("is deterministic for the same input", func(t *testing.T) {
		t.Parallel()

		html := `<div class="deal"><h2 class="title">Lunch</h2><p>Soup</p><img src="a.png"><span>$8</span></div>
<li class="product"><span class="name">Bread</span><p>Sourdough loaf</p></li>`
		e := newTestExtractor()

		first, err := e.Extract(html, "https://shop.test/menu/")
		require.NoError(t, err)
		second, err := e.Extract(html, "https://shop.test/menu/")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, first.Promotions, 2)
	})

	t.Run("uses custom rules", func(t *testing.T) {
		t.Parallel()

		e := newTestExtractor()
		e.Rules = []goquery.Rule{
			{Tag: "p", Attr: "data-kind", Pattern: regexp.MustCompile(`(?i)discount`)},
		}
		html := `<p data-kind="discount">Save 10 today</p><div class="deal">$1</div>`

		result, err := e.Extract(html, "https://shop.test/")

		require.NoError(t, err)
		require.Len(t, result.Promotions, 1)
		assert.Equal(t, "Save 10", result.Promotions[0].Price)
	})

	t.Run("every emitted record satisfies the filter", func(t *testing.T) {
		t.Parallel()

		html := `<div class="deal"><h2 class="title">A</h2></div>
<div class="deal"><p>only description</p></div>
<div class="deal"><h2 class="title">B</h2><p>with description</p></div>
<div class="deal">20% today</div>`

		result, err := newTestExtractor().Extract(html, "https://shop.test/")

		require.NoError(t, err)
		require.Len(t, result.Promotions, 2)
		for _, p := range result.Promotions {
			assert.True(t, p.Valid())
		}
	})
}

func TestExtractor_Price(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		text string
		want string
	}{
		{text: "Now only $1,299.00!", want: "$1,299.00"},
		{text: "Was $20 now $15", want: "$20"},
		{text: "Get 15 % back", want: "15 %"},
		{text: "Take off $15 now", want: "off $15"},
		{text: "SAVE $3 today", want: "SAVE $3"},
		{text: "From $5-10", want: "$5"},
	} {
		t.Run(tc.text, func(t *testing.T) {
			t.Parallel()

			html := `<div class="price-box">` + tc.text + `</div>`

			result, err := newTestExtractor().Extract(html, "https://shop.test/")

			require.NoError(t, err)
			require.Len(t, result.Promotions, 1)
			assert.Equal(t, tc.want, result.Promotions[0].Price)
		})
	}
}

func TestExtractor_Image(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		img  string
		want string
	}{
		{name: "root-relative src", img: `<img src="/img/a.png">`, want: "https://shop.test/img/a.png"},
		{name: "path-relative src", img: `<img src="img/a.png">`, want: "https://shop.test/deals/img/a.png"},
		{name: "absolute src kept", img: `<img src="https://cdn.test/a.png">`, want: "https://cdn.test/a.png"},
		{name: "protocol-relative src kept", img: `<img src="//cdn.test/a.png">`, want: "//cdn.test/a.png"},
		{name: "data-src used when src missing", img: `<img data-src="lazy.png">`, want: "https://shop.test/deals/lazy.png"},
		{name: "data-original used last", img: `<img data-original="/orig.png">`, want: "https://shop.test/orig.png"},
		{name: "src wins over data-src", img: `<img data-src="lazy.png" src="real.png">`, want: "https://shop.test/deals/real.png"},
		{name: "no source attributes", img: `<img alt="x">`, want: ""},
		{name: "literal percent in src", img: `<img src="banner-50%off.png">`, want: "https://shop.test/deals/banner-50%25off.png"},
		{name: "src wrapped in whitespace", img: "<img src=\"\n  /img/deal.png \">", want: "https://shop.test/img/deal.png"},
		{name: "newline inside src", img: "<img src=\"/img/de\nal.png\">", want: "https://shop.test/img/deal.png"},
		{name: "valid escape kept", img: `<img src="/img/a%20b.png">`, want: "https://shop.test/img/a%20b.png"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			html := `<div class="deal">` + tc.img + `<span>$2</span></div>`

			result, err := newTestExtractor().Extract(html, "https://shop.test/deals/")

			require.NoError(t, err)
			assert.Empty(t, result.Skipped)
			require.Len(t, result.Promotions, 1)
			assert.Equal(t, tc.want, result.Promotions[0].Image)
		})
	}
}
