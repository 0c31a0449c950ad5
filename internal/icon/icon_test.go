package icon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want Glyph
	}{
		{"known icon", "film", Glyph{Kind: KindSVG, Icon: Film}},
		{"empty falls back", "", Glyph{Kind: KindSVG, Icon: Folder, Fallback: true}},
		{"unknown falls back", "rocket", Glyph{Kind: KindSVG, Icon: Folder, Fallback: true}},
		{"case sensitive", "Film", Glyph{Kind: KindSVG, Icon: Folder, Fallback: true}},
		{"emoji passes through", "🎬", Glyph{Kind: KindEmoji, Emoji: "🎬"}},
		{"misc symbol emoji", "☀", Glyph{Kind: KindEmoji, Emoji: "☀"}},
		{"long emoji string is not emoji", "🎬🎬🎬", Glyph{Kind: KindSVG, Icon: Folder, Fallback: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.ref))
		})
	}
}

func TestAll_EveryIconHasRenderer(t *testing.T) {
	for _, ic := range All() {
		_, ok := Parse(string(ic))
		assert.True(t, ok, "icon %s should parse", ic)

		var b strings.Builder
		require.NoError(t, ic.Renderer()(&b))
		assert.True(t, strings.HasPrefix(b.String(), "<svg"), "icon %s should render svg", ic)
	}
}

func TestGlyph_Render(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Resolve("🎮").Render(&b))
	assert.Equal(t, "🎮", b.String())

	b.Reset()
	require.NoError(t, Resolve("nope").Render(&b))
	assert.Contains(t, b.String(), "<svg")
}

func TestGlyph_Markup(t *testing.T) {
	assert.Equal(t, "⭐", Resolve("⭐").Markup())

	var folder strings.Builder
	require.NoError(t, Folder.Renderer()(&folder))
	assert.Equal(t, folder.String(), Resolve("unknown-icon").Markup())
}
