package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connexo-app/backend/internal/types"
)

func TestProjectFiltersHiddenLinks(t *testing.T) {
	doc := types.DefaultDocument()
	doc.Links = []types.Link{
		{ID: "1", Title: "A", URL: "x", Icon: "globe", IsActive: true},
		{ID: "2", Title: "", URL: "y", Icon: "globe", IsActive: true},
		{ID: "3", Title: "B", URL: "z", Icon: "globe", IsActive: false},
		{ID: "4", Title: "C", URL: "", Icon: "globe", IsActive: true},
	}

	page := Project(doc)

	require.Len(t, page.Links, 1)
	assert.Equal(t, "A", page.Links[0].Title)
	assert.Equal(t, "1", page.Links[0].ID)
}

func TestProjectPreservesDocumentOrder(t *testing.T) {
	doc := types.DefaultDocument()
	doc.Links = []types.Link{
		{ID: "z", Title: "Z", URL: "u1", IsActive: true},
		{ID: "a", Title: "A", URL: "u2", IsActive: true},
		{ID: "m", Title: "M", URL: "u3", IsActive: true},
	}

	page := Project(doc)

	ids := []string{}
	for _, l := range page.Links {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"z", "a", "m"}, ids)
}

func TestGlyphFallback(t *testing.T) {
	assert.Equal(t, glyphs["instagram"], Glyph("instagram"))
	assert.Equal(t, glyphs["link"], Glyph("no-such-icon"))
	assert.Equal(t, glyphs["link"], Glyph(""))
	assert.NotEmpty(t, Glyph("anything"))
}

func TestIconNamesAllResolve(t *testing.T) {
	for _, name := range IconNames() {
		g, ok := glyphs[name]
		assert.True(t, ok, name)
		assert.NotEmpty(t, g, name)
	}
}

func TestButtonRadiusMapping(t *testing.T) {
	doc := types.DefaultDocument()

	doc.Appearance.ButtonStyle = types.ButtonRectangular
	assert.Equal(t, "0", Project(doc).Button.Radius)

	doc.Appearance.ButtonStyle = types.ButtonPill
	assert.Equal(t, "9999px", Project(doc).Button.Radius)

	doc.Appearance.ButtonStyle = types.ButtonRounded
	assert.Equal(t, "0.5rem", Project(doc).Button.Radius)

	// Unknown styles get the rounded default.
	doc.Appearance.ButtonStyle = "wavy"
	assert.Equal(t, "0.5rem", Project(doc).Button.Radius)
}

func TestBackgroundFallsBackToColor(t *testing.T) {
	doc := types.DefaultDocument()
	doc.Appearance.BgType = types.BackgroundImage
	doc.Appearance.BgImage = ""
	doc.Appearance.BgColor = "#210900"

	bg := Project(doc).Background
	assert.Equal(t, types.BackgroundColor, bg.Kind)
	assert.Equal(t, "#210900", bg.Value)
}

func TestHasContact(t *testing.T) {
	doc := types.DefaultDocument()
	doc.ContactData = types.ContactInfo{}
	assert.False(t, Project(doc).HasContact)

	doc.ContactData.Location = "Caracas"
	assert.True(t, Project(doc).HasContact)
}

func TestWriteHTML(t *testing.T) {
	doc := types.DefaultDocument()
	doc.Appearance.Title = "Jane Doe"
	doc.ContactData.Email = "jane@x.com"
	doc.Links = []types.Link{
		{ID: "1", Title: "Blog", URL: "https://blog.example.com", Icon: "globe", IsActive: true},
		{ID: "2", Title: "Hidden", URL: "https://nope.example.com", Icon: "globe", IsActive: false},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, Project(doc), true))
	html := buf.String()

	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "https://blog.example.com")
	assert.NotContains(t, html, "nope.example.com")
	assert.Contains(t, html, "mailto:jane@x.com")
	assert.Contains(t, html, `href="/dashboard"`)

	// Anonymous viewers get no dashboard affordance.
	buf.Reset()
	require.NoError(t, WriteHTML(&buf, Project(doc), false))
	assert.False(t, strings.Contains(buf.String(), `href="/dashboard"`))
}
