// Package markup decodes the inline encoding used in content text.
//
// Two forms are recognized: ~text~ marks a small-font span, and
// [surface]{type: description} attaches a note to a run of surface text.
package markup

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Both are lazy and leftmost: a span runs to the first closing delimiter,
	// and empty spans are still spans.
	smallRE      = regexp.MustCompile(`~(.*?)~`)
	annotationRE = regexp.MustCompile(`\[(.*?)\]\{(.*?)\}`)
)

// Options control display-time decoding. Notes are part of the stored text
// either way.
type Options struct {
	ShowNotes bool
}

// Annotation is one decoded [surface]{type: description} span.
type Annotation struct {
	Surface     string `json:"surface"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

func splitNote(body string) (string, string) {
	body = strings.TrimSpace(body)
	if i := strings.IndexAny(body, ":："); i >= 0 {
		_, size := utf8.DecodeRuneInString(body[i:])
		return strings.TrimSpace(body[:i]), strings.TrimSpace(body[i+size:])
	}
	return "", body
}

// Render converts encoded text to HTML. The input is escaped before any markup
// is produced, so stored text can never inject tags.
func Render(text string, opts Options) string {
	if text == "" {
		return ""
	}
	out := html.EscapeString(text)
	out = smallRE.ReplaceAllString(out, `<small class="small-text">$1</small>`)
	return annotationRE.ReplaceAllStringFunc(out, func(m string) string {
		sub := annotationRE.FindStringSubmatch(m)
		surface := sub[1]
		if !opts.ShowNotes {
			return surface
		}
		// Escaping happened on the whole string, so the parts are already safe.
		noteType, desc := splitNote(sub[2])
		var b strings.Builder
		b.WriteString(`<span class="annotation">`)
		b.WriteString(surface)
		b.WriteString(`<sup>!</sup><span class="note" role="note"`)
		if noteType != "" {
			b.WriteString(` data-note-type="`)
			b.WriteString(noteType)
			b.WriteString(`"`)
		}
		b.WriteString(`>`)
		b.WriteString(desc)
		b.WriteString(`</span></span>`)
		return b.String()
	})
}

// Plain decodes text for contexts without HTML. Notes are appended in
// parentheses when shown.
func Plain(text string, opts Options) string {
	out := smallRE.ReplaceAllString(text, "$1")
	return annotationRE.ReplaceAllStringFunc(out, func(m string) string {
		sub := annotationRE.FindStringSubmatch(m)
		if !opts.ShowNotes {
			return sub[1]
		}
		_, desc := splitNote(sub[2])
		if desc == "" {
			return sub[1]
		}
		return sub[1] + " (" + desc + ")"
	})
}

// Parse extracts every annotation in text, in order of appearance.
func Parse(text string) []Annotation {
	matches := annotationRE.FindAllStringSubmatch(text, -1)
	annotations := make([]Annotation, 0, len(matches))
	for _, m := range matches {
		noteType, desc := splitNote(m[2])
		annotations = append(annotations, Annotation{
			Surface:     smallRE.ReplaceAllString(m[1], "$1"),
			Type:        noteType,
			Description: desc,
		})
	}
	return annotations
}
