// Package icon maps category icon references to renderable glyphs.
//
// Icons form a closed set. Unknown references resolve to Folder explicitly, and
// short emoji strings stored by older categories pass through untouched.
package icon

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
)

// Icon identifies one of the known category icons.
type Icon string

// Known icons.
const (
	Folder  Icon = "folder"
	Film    Icon = "film"
	TV      Icon = "tv"
	Gamepad Icon = "gamepad"
	Anime   Icon = "anime"
	Music   Icon = "music"
	Book    Icon = "book"
	Star    Icon = "star"
	Heart   Icon = "heart"
	Globe   Icon = "globe"
)

// Default is the icon used for unknown references.
const Default = Folder

// Renderer writes the SVG markup of an icon.
type Renderer func(w io.Writer) error

// All returns the known icons in display order.
func All() []Icon {
	return []Icon{Folder, Film, TV, Gamepad, Anime, Music, Book, Star, Heart, Globe}
}

// Parse returns the icon named by id and whether it is known.
func Parse(id string) (Icon, bool) {
	ic := Icon(id)
	_, ok := renderers[ic]
	return ic, ok
}

// Renderer returns the renderer for the icon; unknown icons get the default renderer.
func (ic Icon) Renderer() Renderer {
	if r, ok := renderers[ic]; ok {
		return r
	}
	return renderers[Default]
}

// Kind distinguishes glyph sources.
type Kind string

// Glyph kinds.
const (
	KindSVG   Kind = "svg"
	KindEmoji Kind = "emoji"
)

// Glyph is a resolved category icon.
type Glyph struct {
	Kind  Kind   `json:"kind"`
	Icon  Icon   `json:"icon,omitempty"`
	Emoji string `json:"emoji,omitempty"`
	// Fallback is set when the reference was not a known icon.
	Fallback bool `json:"fallback,omitempty"`
}

// Resolve turns a stored icon reference into a glyph.
func Resolve(ref string) Glyph {
	if isEmoji(ref) {
		return Glyph{Kind: KindEmoji, Emoji: ref}
	}
	if ic, ok := Parse(ref); ok {
		return Glyph{Kind: KindSVG, Icon: ic}
	}
	return Glyph{Kind: KindSVG, Icon: Default, Fallback: true}
}

// Render writes the glyph: emoji verbatim, icons as SVG.
func (g Glyph) Render(w io.Writer) error {
	if g.Kind == KindEmoji {
		_, err := io.WriteString(w, g.Emoji)
		return err
	}
	return g.Icon.Renderer()(w)
}

// Markup returns the rendered glyph as a string.
func (g Glyph) Markup() string {
	var b strings.Builder
	_ = g.Render(&b)
	return b.String()
}

// isEmoji reports whether ref is a short emoji reference.
// Length is counted in UTF-16 code units.
func isEmoji(ref string) bool {
	if ref == "" || len(utf16.Encode([]rune(ref))) > 4 {
		return false
	}
	for _, r := range ref {
		switch {
		case r >= 0x1F000 && r <= 0x1F6FF,
			r >= 0x2600 && r <= 0x26FF,
			r >= 0x1F900 && r <= 0x1F9FF:
			return true
		}
	}
	return false
}

func svg(body string) Renderer {
	return func(w io.Writer) error {
		_, err := fmt.Fprintf(w, `<svg fill="currentColor" viewBox="0 0 24 24">%s</svg>`, body)
		return err
	}
}

var renderers = map[Icon]Renderer{
	Folder:  svg(`<path d="M10 4H4c-1.11 0-2 .89-2 2v12c0 1.11.89 2 2 2h16c1.11 0 2-.89 2-2V8c0-1.11-.89-2-2-2h-8l-2-2z"/>`),
	Film:    svg(`<path d="M18 4l2 4h-3l-2-4h-2l2 4h-3l-2-4H8l2 4H7L5 4H4c-1.1 0-1.99.9-1.99 2L2 18c0 1.1.9 2 2 2h16c1.1 0 2-.9 2-2V4h-4z"/>`),
	TV:      svg(`<path d="M21 3H3c-1.1 0-2 .9-2 2v12c0 1.1.9 2 2 2h5l-1 1v2h8v-2l-1-1h5c1.1 0 2-.9 2-2V5c0-1.1-.9-2-2-2zm0 12H3V5h18v10z"/>`),
	Gamepad: svg(`<path d="M7.5 2C4.46 2 2 4.46 2 7.5v9C2 19.54 4.46 22 7.5 22h9c3.04 0 5.5-2.46 5.5-5.5v-9C22 4.46 19.54 2 16.5 2h-9z"/>`),
	Anime:   svg(`<circle cx="12" cy="12" r="10" fill="none" stroke="currentColor" stroke-width="2"/><circle cx="9" cy="10" r="1.5"/><circle cx="15" cy="10" r="1.5"/>`),
	Music:   svg(`<path d="M12 3v10.55c-.59-.34-1.27-.55-2-.55-2.21 0-4 1.79-4 4s1.79 4 4 4 4-1.79 4-4V7h4V3h-6z"/>`),
	Book:    svg(`<path d="M18 2H6c-1.1 0-2 .9-2 2v16c0 1.1.9 2 2 2h12c1.1 0 2-.9 2-2V4c0-1.1-.9-2-2-2zM6 4h5v8l-2.5-1.5L6 12V4z"/>`),
	Star:    svg(`<path d="M12 2l3.09 6.26L22 9.27l-5 4.87 1.18 6.88L12 17.77l-6.18 3.25L7 14.14 2 9.27l6.91-1.01L12 2z"/>`),
	Heart:   svg(`<path d="M12 21.35l-1.45-1.32C5.4 15.36 2 12.28 2 8.5 2 5.42 4.42 3 7.5 3c1.74 0 3.41.81 4.5 2.09C13.09 3.81 14.76 3 16.5 3 19.58 3 22 5.42 22 8.5c0 3.78-3.4 6.86-8.55 11.54L12 21.35z"/>`),
	Globe:   svg(`<path d="M11.99 2C6.47 2 2 6.48 2 12s4.47 10 9.99 10C17.52 22 22 17.52 22 12S17.52 2 11.99 2z"/>`),
}
