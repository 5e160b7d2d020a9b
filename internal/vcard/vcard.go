// Package vcard builds the downloadable contact card offered on the
// links tab, in vCard 3.0 text form.
package vcard

import (
	"regexp"
	"strings"

	"github.com/connexo-app/backend/internal/types"
)

// ContentType is the MIME type for the download response.
const ContentType = "text/vcard"

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Encode renders a vCard 3.0 payload for the profile. Title becomes the
// formatted name; email, phone and location are interpolated into their
// lines unconditionally, so an unset field yields a bare line. Only the
// NOTE line is optional, carried by a non-empty bio.
func Encode(title string, contact types.ContactInfo, bio string) string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:" + title,
		"EMAIL:" + contact.Email,
		"TEL:" + contact.Phone,
		"ADR:;;" + contact.Location + ";;;;",
	}
	if bio != "" {
		lines = append(lines, "NOTE:"+bio)
	}
	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\n")
}

// Filename derives the download name from the profile title:
// non-alphanumeric runs collapse to underscores, suffixed _contact.vcf.
func Filename(title string) string {
	name := strings.Trim(nonAlnum.ReplaceAllString(title, "_"), "_")
	if name == "" {
		return "contact.vcf"
	}
	return name + "_contact.vcf"
}
