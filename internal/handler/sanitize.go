package handler

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	// strictPolicy strips all markup from user-supplied text fields.
	strictPolicy = bluemonday.StrictPolicy()
	// articlePolicy allows the usual formatting tags in rendered news bodies.
	articlePolicy = bluemonday.UGCPolicy()

	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

	slugStrip   = regexp.MustCompile(`[^a-z0-9]+`)
	slugTrimmer = regexp.MustCompile(`^-+|-+$`)
)

// sanitizeText removes any markup from a plain-text field.
func sanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// renderMarkdown converts markdown to sanitized HTML.
func renderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return articlePolicy.Sanitize(buf.String()), nil
}

// slugify derives a URL slug from a title.
func slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugStrip.ReplaceAllString(slug, "-")
	slug = slugTrimmer.ReplaceAllString(slug, "")
	if len(slug) > 200 {
		slug = slug[:200]
	}
	return slug
}
