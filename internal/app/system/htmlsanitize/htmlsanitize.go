// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips dangerous markup from user-supplied rich
// text (group and job descriptions, messages) before it is stored.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	// ugc allows the limited formatting the portal's editors produce.
	ugc = bluemonday.UGCPolicy()

	// strict strips all markup; used for single-line fields.
	strict = bluemonday.StrictPolicy()
)

// UGC sanitizes multi-line rich text, keeping basic formatting tags.
func UGC(s string) string {
	return ugc.Sanitize(s)
}

// Strict removes every tag, leaving plain text.
func Strict(s string) string {
	return strict.Sanitize(s)
}
