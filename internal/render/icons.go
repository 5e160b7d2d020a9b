package render

import "github.com/connexo-app/backend/internal/types"

// glyphs is the fixed icon set offered by the link editor. Resolution
// is a static table lookup, never a dynamic one, and always falls back
// to the link glyph so a link button is never rendered without an icon.
var glyphs = map[string]string{
	"instagram": "\U0001F4F7",
	"globe":     "\U0001F310",
	"mail":      "✉",
	"phone":     "☎",
	"map":       "\U0001F4CD",
	"linkedin":  "\U0001F4BC",
	"twitter":   "\U0001F426",
	"facebook":  "\U0001F465",
	"youtube":   "\U0001F3AC",
	"github":    "\U0001F419",
	"music":     "\U0001F3B5",
	"camera":    "\U0001F4F8",
	"shop":      "\U0001F6CD",
	"heart":     "❤",
	"link":      "\U0001F517",
}

// Glyph resolves an icon name to its renderable glyph. Unrecognized
// names resolve to the link glyph.
func Glyph(name string) string {
	if g, ok := glyphs[name]; ok {
		return g
	}
	return glyphs[types.DefaultIcon]
}

// IconNames returns the names of the fixed icon set, for the editor's
// icon picker.
func IconNames() []string {
	return []string{
		"instagram", "globe", "mail", "phone", "map",
		"linkedin", "twitter", "facebook", "youtube", "github",
		"music", "camera", "shop", "heart", "link",
	}
}
