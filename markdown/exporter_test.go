package markdown_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fwojciec/dealie"
	"github.com/fwojciec/dealie/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes summary and promotions tables", func(t *testing.T) {
		t.Parallel()

		crawl := &dealie.Crawl{
			ID:       "abc-123",
			SeedURL:  "https://shop.test/",
			MaxDepth: 2,
			Pages:    4,
			Failed:   1,
			Promotions: []*dealie.Promotion{
				{Title: "Weekend Special", Price: "$19.99", Source: "https://shop.test/", Date: "2024-03-05"},
				{Title: "Soup", Description: "Tomato | basil\nfresh", Source: "https://shop.test/menu", Date: "2024-03-05"},
			},
		}

		var buf bytes.Buffer
		err := markdown.NewExporter().Export(&buf, crawl)

		require.NoError(t, err)
		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "# Promotions for https://shop.test/"))
		assert.Contains(t, out, "abc-123")
		assert.Contains(t, out, "## Promotions")
		assert.Contains(t, out, "Weekend Special")
		assert.Contains(t, out, "$19.99")
		assert.Contains(t, out, "basil fresh")
		assert.Less(t, strings.Index(out, "Weekend Special"), strings.Index(out, "Soup"))
	})

	t.Run("notes when there are no promotions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := markdown.NewExporter().Export(&buf, &dealie.Crawl{SeedURL: "https://shop.test/"})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "No promotions found.")
	})

	t.Run("drops duplicates when unique", func(t *testing.T) {
		t.Parallel()

		p := &dealie.Promotion{Title: "Lunch", Price: "$8", Source: "https://shop.test/", Date: "2024-03-05"}
		dup := *p
		crawl := &dealie.Crawl{SeedURL: "https://shop.test/", Promotions: []*dealie.Promotion{p, &dup}}

		var buf bytes.Buffer
		err := (&markdown.Exporter{Unique: true}).Export(&buf, crawl)

		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(buf.String(), "Lunch"))
	})
}
