package nlp

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapseText(t *testing.T) {
	long := strings.Repeat("job description ", 10) // > MinTextLen

	t.Run("collapses whitespace runs", func(t *testing.T) {
		in := "  Senior\t\tGo   Engineer\n\n\nat Acme  " + long
		out, ok := CollapseText(in)
		require.True(t, ok)
		assert.NotContains(t, out, "\n")
		assert.NotContains(t, out, "  ")
		assert.True(t, strings.HasPrefix(out, "Senior Go Engineer at Acme"))
	})

	t.Run("collapses non-breaking spaces", func(t *testing.T) {
		out, ok := CollapseText("Go\u00a0\u00a0Engineer " + long)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(out, "Go Engineer"))
	})

	t.Run("rejects short text as a probable block", func(t *testing.T) {
		_, ok := CollapseText("Access denied")
		assert.False(t, ok)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, ok := CollapseText("   \n\t ")
		assert.False(t, ok)
	})

	t.Run("keeps text at exactly the minimum", func(t *testing.T) {
		in := strings.Repeat("a", MinTextLen)
		out, ok := CollapseText(in)
		require.True(t, ok)
		assert.Equal(t, in, out)
	})

	t.Run("truncates oversized text with a marker", func(t *testing.T) {
		in := strings.Repeat("b", MaxTextLen+5000)
		out, ok := CollapseText(in)
		require.True(t, ok)
		assert.Len(t, out, MaxTextLen+len(truncationMarker))
		assert.True(t, strings.HasSuffix(out, truncationMarker))
	})

	t.Run("truncates multi-byte text on rune boundaries", func(t *testing.T) {
		// One ASCII byte shifts every two-byte Hebrew rune off the byte
		// grid, so a byte-indexed cut would land mid rune.
		in := "x" + strings.Repeat("א", MaxTextLen)
		out, ok := CollapseText(in)
		require.True(t, ok)
		assert.True(t, utf8.ValidString(out))
		assert.True(t, strings.HasSuffix(out, truncationMarker))
		kept := strings.TrimSuffix(out, truncationMarker)
		assert.Equal(t, MaxTextLen, utf8.RuneCountInString(kept))
	})

	t.Run("minimum length counts runes not bytes", func(t *testing.T) {
		// 17 Hebrew runes are 34 bytes; still a blocked-page stub.
		_, ok := CollapseText(strings.Repeat("א", 17))
		assert.False(t, ok)

		out, ok := CollapseText(strings.Repeat("א", MinTextLen))
		require.True(t, ok)
		assert.Equal(t, MinTextLen, utf8.RuneCountInString(out))
	})

	t.Run("leaves text at the cap untouched", func(t *testing.T) {
		in := strings.Repeat("c", MaxTextLen)
		out, ok := CollapseText(in)
		require.True(t, ok)
		assert.Len(t, out, MaxTextLen)
		assert.False(t, strings.HasSuffix(out, truncationMarker))
	})
}
