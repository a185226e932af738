package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func mustHTML(t *testing.T, src string) string {
	t.Helper()
	out, err := ToHTML(src)
	if err != nil {
		t.Fatalf("ToHTML(%q) failed: %v", src, err)
	}
	return out
}

func TestToHTMLInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
		{"`x := 1`", "<code>x := 1</code>"},
	}
	for _, tt := range tests {
		got := mustHTML(t, tt.input)
		if !strings.Contains(got, tt.expected) {
			t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestToHTMLHeadings(t *testing.T) {
	got := mustHTML(t, "## Results\n\nText")
	if !strings.Contains(got, `<h2 id="results">Results</h2>`) {
		t.Errorf("heading not rendered with id: %q", got)
	}
}

func TestToHTMLCodeBlockWithLanguage(t *testing.T) {
	got := mustHTML(t, "```go\nfmt.Println(1)\n```")
	if !strings.Contains(got, `<pre><code class="language-go">`) {
		t.Errorf("code block language class missing: %q", got)
	}
}

func TestToHTMLLists(t *testing.T) {
	got := mustHTML(t, "- one\n- two\n\n1. first\n2. second")
	for _, want := range []string{"<ul>", "<li>one</li>", "<ol>", "<li>second</li>"} {
		if !strings.Contains(got, want) {
			t.Errorf("ToHTML lists missing %q in %q", want, got)
		}
	}
}

func TestToHTMLTable(t *testing.T) {
	got := mustHTML(t, "| a | b |\n|---|---|\n| 1 | 2 |")
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>1</td>") {
		t.Errorf("table not rendered: %q", got)
	}
}

func TestToHTMLKeepsSafeHTMLFragments(t *testing.T) {
	got := mustHTML(t, "<p>Hello <strong>world</strong></p>")
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Errorf("safe HTML dropped: %q", got)
	}
}

func TestToHTMLStripsScripts(t *testing.T) {
	tests := []string{
		"<script>alert(1)</script>",
		`<img src="x" onerror="alert(1)">`,
		"[click](javascript:alert(1))",
		`<a href="javascript:alert(1)">x</a>`,
	}
	for _, input := range tests {
		got := mustHTML(t, input)
		lower := strings.ToLower(got)
		if strings.Contains(lower, "<script") || strings.Contains(lower, "onerror") || strings.Contains(lower, "javascript:") {
			t.Errorf("ToHTML(%q) = %q, unsafe markup survived", input, got)
		}
	}
}

func TestToHTMLExternalLinks(t *testing.T) {
	got := mustHTML(t, "[site](https://example.com)")
	if !strings.Contains(got, `target="_blank"`) || !strings.Contains(got, "nofollow") {
		t.Errorf("external link attributes missing: %q", got)
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("<p>Hello   <b>world</b> &amp; friends</p>\n<p>again</p>")
	if got != "Hello world & friends again" {
		t.Errorf("PlainText = %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("# Title").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<h1") {
		t.Errorf("component output = %q", buf.String())
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com/a", "https://example.com/a"},
		{"/public/uploads/a.jpg", "/public/uploads/a.jpg"},
		{"#top", "#top"},
		{"mailto:hi@example.com", "mailto:hi@example.com"},
		{"javascript:alert(1)", ""},
		{"example.com", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.expected {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
