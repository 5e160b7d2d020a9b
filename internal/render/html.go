package render

import (
	"html/template"
	"io"
)

// pageData is the template payload for the HTML public page.
type pageData struct {
	Page       Page
	OwnProfile bool
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .Page.Bio}}{{.Page.Title}} - {{.Page.Bio}}{{else}}{{.Page.Title}}{{end}}</title>
<style>
body {
  margin: 0;
  min-height: 100vh;
  display: flex;
  flex-direction: column;
  align-items: center;
  font-family: '{{.Page.FontFamily}}', sans-serif;
  color: {{.Page.TextColor}};
  {{if eq .Page.Background.Kind "image"}}background: url('{{.Page.Background.Value}}') center / cover;{{else}}background-color: {{.Page.Background.Value}};{{end}}
}
.page { width: 100%; max-width: 40rem; padding: 1.5rem; box-sizing: border-box; }
.cover img { width: 100%; height: 10rem; object-fit: cover; border-radius: 0.75rem; }
.avatar img { width: 6rem; height: 6rem; border-radius: 50%; object-fit: cover; border: 4px solid #fff; margin-top: -3rem; }
.head { text-align: center; }
.contact { display: flex; flex-wrap: wrap; justify-content: center; gap: 0.75rem; margin: 1rem 0; }
.contact a, .contact span { color: inherit; background: rgba(255,255,255,.1); padding: .5rem .75rem; border-radius: .5rem; text-decoration: none; }
.links a {
  display: flex; justify-content: space-between; align-items: center;
  margin: .75rem 0; padding: .9rem 1.25rem; text-decoration: none;
  background-color: {{.Page.Button.BgColor}};
  color: {{.Page.Button.TextColor}};
  border-radius: {{.Page.Button.Radius}};
  {{if .Page.Button.Shadow}}box-shadow: 0 4px 6px -1px rgba(0,0,0,.1), 0 2px 4px -1px rgba(0,0,0,.06);{{end}}
}
.back { align-self: flex-start; margin: 1rem; }
.back a { color: inherit; }
</style>
</head>
<body>
{{if .OwnProfile}}<div class="back"><a href="/dashboard">&larr; Dashboard</a></div>{{end}}
<div class="page">
{{if .Page.CoverImage}}<div class="cover"><img src="{{.Page.CoverImage}}" alt="Cover"></div>{{end}}
{{if .Page.ProfileImage}}<div class="head avatar"><img src="{{.Page.ProfileImage}}" alt="Profile"></div>{{end}}
<div class="head">
<h1>{{.Page.Title}}</h1>
{{if .Page.Role}}<p>{{.Page.Role}}{{if .Page.Company}} at {{.Page.Company}}{{end}}</p>{{end}}
{{if .Page.Bio}}<p>{{.Page.Bio}}</p>{{end}}
</div>
{{if .Page.HasContact}}<div class="contact">
{{if .Page.Contact.Email}}<a href="mailto:{{.Page.Contact.Email}}">{{.Page.Contact.Email}}</a>{{end}}
{{if .Page.Contact.Phone}}<a href="tel:{{.Page.Contact.Phone}}">{{.Page.Contact.Phone}}</a>{{end}}
{{if .Page.Contact.Location}}<span>{{.Page.Contact.Location}}</span>{{end}}
</div>{{end}}
<div class="links">
{{range .Page.Links}}<a href="{{.URL}}" target="_blank" rel="noopener noreferrer"><span>{{.Glyph}} {{.Title}}</span><span>&nearr;</span></a>
{{end}}</div>
</div>
</body>
</html>
`))

// WriteHTML renders the projection as a standalone HTML page.
// ownProfile adds the navigation affordance back to the dashboard.
func WriteHTML(w io.Writer, page Page, ownProfile bool) error {
	return pageTemplate.Execute(w, pageData{Page: page, OwnProfile: ownProfile})
}
