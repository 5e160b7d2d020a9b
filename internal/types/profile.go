package types

// Background modes and button styles supported by AppearanceTheme.
const (
	BackgroundColor = "color"
	BackgroundImage = "image"

	ButtonRectangular = "rectangular"
	ButtonRounded     = "rounded"
	ButtonPill        = "pill"
)

// DefaultIcon is the icon assigned to newly created links and used as
// the fallback for unknown icon names.
const DefaultIcon = "link"

// Link is a single entry on a profile page. The ID is assigned by the
// editor when the link is created and never changes afterwards, so link
// identity survives edits and reordering. Inactive links stay in the
// document but are hidden from the public page.
type Link struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
	IsActive bool   `json:"isActive"`
}

// ContactInfo holds the optional contact fields shown on the public
// page and exported as a vCard.
type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// AppearanceTheme describes the visual theme of a profile page.
type AppearanceTheme struct {
	ProfileImage    string `json:"profileImage"`
	CoverImage      string `json:"coverImage"`
	Title           string `json:"title"`
	Role            string `json:"role"`
	Company         string `json:"company"`
	Bio             string `json:"bio"`
	BgType          string `json:"bgType"`
	BgColor         string `json:"bgColor"`
	BgImage         string `json:"bgImage"`
	ButtonStyle     string `json:"buttonStyle"`
	ButtonBgColor   string `json:"buttonBgColor"`
	ButtonTextColor string `json:"buttonTextColor"`
	ButtonShadow    bool   `json:"buttonShadow"`
	FontFamily      string `json:"fontFamily"`
	TextColor       string `json:"textColor"`
}

// ProfileDocument is the single editable state unit for one user:
// username, ordered links, contact fields and appearance theme. The
// dashboard and the public page always render from the same document.
type ProfileDocument struct {
	Username    string          `json:"username"`
	Links       []Link          `json:"links"`
	ContactData ContactInfo     `json:"contactData"`
	Appearance  AppearanceTheme `json:"appearance"`
}

// DefaultDocument returns the document installed when no persisted copy
// exists or the persisted copy cannot be parsed.
func DefaultDocument() ProfileDocument {
	return ProfileDocument{
		Username: "yourname",
		Links: []Link{
			{ID: "1", Title: "Instagram", URL: "https://instagram.com", Icon: "instagram", IsActive: true},
			{ID: "2", Title: "Website", URL: "https://example.com", Icon: "globe", IsActive: true},
		},
		ContactData: ContactInfo{},
		Appearance: AppearanceTheme{
			Title:           "Your Name",
			Bio:             "Creative professional and digital enthusiast",
			BgType:          BackgroundColor,
			BgColor:         "#210900",
			ButtonStyle:     ButtonRounded,
			ButtonBgColor:   "#ff6600",
			ButtonTextColor: "#ffffff",
			ButtonShadow:    true,
			FontFamily:      "Space Grotesk",
			TextColor:       "#ffffff",
		},
	}
}

// Clone returns a deep copy of the document. The links slice is the
// only reference-typed field.
func (d ProfileDocument) Clone() ProfileDocument {
	out := d
	out.Links = make([]Link, len(d.Links))
	copy(out.Links, d.Links)
	return out
}

// Normalize fills in defaults for fields a partially persisted document
// may be missing, so a loaded document is always fully populated.
func (d *ProfileDocument) Normalize() {
	def := DefaultDocument()
	if d.Username == "" {
		d.Username = def.Username
	}
	if d.Links == nil {
		d.Links = []Link{}
	}
	for i := range d.Links {
		if d.Links[i].Icon == "" {
			d.Links[i].Icon = DefaultIcon
		}
	}
	if d.Appearance.BgType != BackgroundColor && d.Appearance.BgType != BackgroundImage {
		d.Appearance.BgType = BackgroundColor
	}
	switch d.Appearance.ButtonStyle {
	case ButtonRectangular, ButtonRounded, ButtonPill:
	default:
		d.Appearance.ButtonStyle = ButtonRounded
	}
	if d.Appearance.FontFamily == "" {
		d.Appearance.FontFamily = def.Appearance.FontFamily
	}
}
