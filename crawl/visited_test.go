package crawl_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/dealie/crawl"
	"github.com/stretchr/testify/assert"
)

func TestVisitedSet(t *testing.T) {
	t.Parallel()

	t.Run("visit reports first insertion only", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()

		assert.True(t, s.Visit("https://a.test/"))
		assert.False(t, s.Visit("https://a.test/"))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("has reflects visited URLs", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()
		s.Visit("https://a.test/deals")

		assert.True(t, s.Has("https://a.test/deals"))
		assert.False(t, s.Has("https://a.test/offers"))
	})

	t.Run("distinguishes URLs differing only by fragment", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()
		s.Visit("https://a.test/menu")

		assert.False(t, s.Has("https://a.test/menu#lunch"))
		assert.True(t, s.Visit("https://a.test/menu#lunch"))
	})

	t.Run("lists URLs in visit order", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()
		s.Visit("https://a.test/c")
		s.Visit("https://a.test/a")
		s.Visit("https://a.test/c")
		s.Visit("https://a.test/b")

		assert.Equal(t, []string{"https://a.test/c", "https://a.test/a", "https://a.test/b"}, s.URLs())
	})

	t.Run("URLs returns a copy", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()
		s.Visit("https://a.test/")

		urls := s.URLs()
		urls[0] = "mutated"

		assert.Equal(t, []string{"https://a.test/"}, s.URLs())
	})

	t.Run("stays exact beyond the filter sizing", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewVisitedSet()
		for i := range 20000 {
			assert.True(t, s.Visit(fmt.Sprintf("https://a.test/p/%d", i)))
		}
		for i := 20000; i < 21000; i++ {
			assert.False(t, s.Has(fmt.Sprintf("https://a.test/p/%d", i)))
		}
		assert.Equal(t, 20000, s.Len())
	})
}
