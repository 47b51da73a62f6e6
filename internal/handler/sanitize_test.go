package handler

import (
	"strings"
	"testing"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<script>alert(1)</script>hello", "hello"},
		{"<b>bold</b> name", "bold name"},
		{"  padded  ", "padded"},
	}

	for _, tt := range tests {
		if got := sanitizeText(tt.in); got != tt.want {
			t.Errorf("sanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	html, err := renderMarkdown("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("renderMarkdown returned error: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("rendered HTML missing expected markup: %q", html)
	}
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	html, err := renderMarkdown("safe\n\n<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("renderMarkdown returned error: %v", err)
	}
	if strings.Contains(html, "<script") {
		t.Errorf("script tag survived sanitization: %q", html)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Alumni Reunion 2025!", "alumni-reunion-2025"},
		{"  Spaces  Everywhere  ", "spaces-everywhere"},
		{"already-slugged", "already-slugged"},
	}

	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := strings.Repeat("abcde ", 60)
	slug := slugify(long)
	if len(slug) > 200 {
		t.Errorf("slug length %d exceeds 200", len(slug))
	}
}
