package render

import (
	"github.com/connexo-app/backend/internal/types"
)

// Background is the resolved page background: a solid color or a cover
// image reference.
type Background struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Button carries the resolved button styling shared by all links.
type Button struct {
	Radius    string `json:"radius"`
	BgColor   string `json:"bgColor"`
	TextColor string `json:"textColor"`
	Shadow    bool   `json:"shadow"`
}

// PageLink is a link as shown on the public page, icon already resolved
// to a glyph.
type PageLink struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Glyph string `json:"glyph"`
}

// Contact mirrors the optional contact affordances.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Page is the read-only projection of a ProfileDocument. The dashboard
// preview and the public page are both produced by Project, so the two
// can never apply different rendering rules.
type Page struct {
	Username     string     `json:"username"`
	Title        string     `json:"title"`
	Role         string     `json:"role,omitempty"`
	Company      string     `json:"company,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	ProfileImage string     `json:"profileImage,omitempty"`
	CoverImage   string     `json:"coverImage,omitempty"`
	Background   Background `json:"background"`
	Button       Button     `json:"button"`
	FontFamily   string     `json:"fontFamily"`
	TextColor    string     `json:"textColor"`
	Contact      Contact    `json:"contact"`
	HasContact   bool       `json:"hasContact"`
	Links        []PageLink `json:"links"`
}

// Project builds the public projection of a document: theme resolved,
// links filtered to active entries with both a title and a URL, in
// document order.
func Project(doc types.ProfileDocument) Page {
	a := doc.Appearance

	page := Page{
		Username:     doc.Username,
		Title:        a.Title,
		Role:         a.Role,
		Company:      a.Company,
		Bio:          a.Bio,
		ProfileImage: a.ProfileImage,
		CoverImage:   a.CoverImage,
		Background:   background(a),
		Button: Button{
			Radius:    buttonRadius(a.ButtonStyle),
			BgColor:   a.ButtonBgColor,
			TextColor: a.ButtonTextColor,
			Shadow:    a.ButtonShadow,
		},
		FontFamily: a.FontFamily,
		TextColor:  a.TextColor,
		Contact: Contact{
			Email:    doc.ContactData.Email,
			Phone:    doc.ContactData.Phone,
			Location: doc.ContactData.Location,
		},
		Links: []PageLink{},
	}
	page.HasContact = page.Contact.Email != "" || page.Contact.Phone != "" || page.Contact.Location != ""

	for _, link := range doc.Links {
		if !link.IsActive || link.Title == "" || link.URL == "" {
			continue
		}
		page.Links = append(page.Links, PageLink{
			ID:    link.ID,
			Title: link.Title,
			URL:   link.URL,
			Icon:  link.Icon,
			Glyph: Glyph(link.Icon),
		})
	}
	return page
}

func background(a types.AppearanceTheme) Background {
	if a.BgType == types.BackgroundImage && a.BgImage != "" {
		return Background{Kind: types.BackgroundImage, Value: a.BgImage}
	}
	return Background{Kind: types.BackgroundColor, Value: a.BgColor}
}

func buttonRadius(style string) string {
	switch style {
	case types.ButtonRectangular:
		return "0"
	case types.ButtonPill:
		return "9999px"
	default:
		return "0.5rem"
	}
}
