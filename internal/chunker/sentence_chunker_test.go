package chunker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdpbot/internal/chunker"
	"cdpbot/internal/domain"
)

func TestSentenceChunker_Chunk(t *testing.T) {
	t.Parallel()

	t.Run("groups sentences with overlap", func(t *testing.T) {
		t.Parallel()

		c := chunker.NewSentenceChunker(2, 1)
		frags, err := c.Chunk(domain.Document{Path: "docs/a.md", Content: "One. Two! Three? Four."})

		require.NoError(t, err)
		require.Len(t, frags, 3)
		assert.Equal(t, "One. Two!", frags[0].Content)
		assert.Equal(t, "Two! Three?", frags[1].Content)
		assert.Equal(t, "Three? Four.", frags[2].Content)
		assert.Equal(t, "docs/a.md", frags[0].Source)
	})

	t.Run("keeps trailing text without punctuation", func(t *testing.T) {
		t.Parallel()

		c := chunker.NewSentenceChunker(5, 0)
		frags, err := c.Chunk(domain.Document{Content: "Create a source.\n  Then connect a destination"})

		require.NoError(t, err)
		require.Len(t, frags, 1)
		assert.Equal(t, "Create a source. Then connect a destination", frags[0].Content)
	})

	t.Run("empty document yields no fragments", func(t *testing.T) {
		t.Parallel()

		c := chunker.NewSentenceChunker(3, 1)
		frags, err := c.Chunk(domain.Document{Content: "   \n\t"})

		require.NoError(t, err)
		assert.Empty(t, frags)
	})

	t.Run("invalid overlap is reset", func(t *testing.T) {
		t.Parallel()

		c := chunker.NewSentenceChunker(1, 4)
		frags, err := c.Chunk(domain.Document{Content: "A. B. C."})

		require.NoError(t, err)
		require.Len(t, frags, 3)
		assert.Equal(t, "C.", frags[2].Content)
	})
}
