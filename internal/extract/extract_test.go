package extract

import (
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"name in sentence", "Contact John Smith today", "John Smith"},
		{"single capitalized word", "reported by Anupam yesterday", "Anupam"},
		{"stopword-only run skipped", "Contact Phone Number listed here", ""},
		{"no capitalized run", "all lowercase text 12345", ""},
		{"short words ignored", "My ID is Ab Cd", ""},
		{"empty text", "", ""},
		{"first match wins", "Maya Reddy and Ravi Kumar", "Maya Reddy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.text); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestPageMetaOpenGraph(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="Ravi Kumar | Profile">
		<meta property="og:image" content="https://cdn.example.com/ravi.jpg">
	</head><body><p>Ravi Kumar lives in Pune.</p></body></html>`

	meta, err := PageMeta(strings.NewReader(html), 800)
	if err != nil {
		t.Fatalf("PageMeta returned error: %v", err)
	}
	if meta.Title != "Ravi Kumar | Profile" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Image != "https://cdn.example.com/ravi.jpg" {
		t.Errorf("Image = %q", meta.Image)
	}
	if !strings.Contains(meta.Text, "Ravi Kumar lives in Pune.") {
		t.Errorf("Text = %q, missing body text", meta.Text)
	}
}

func TestPageMetaFallbacks(t *testing.T) {
	html := `<html><head>
		<meta name="title" content="Spam report 919876543210">
	</head><body><img src="/static/avatar.png"><span>text</span></body></html>`

	meta, err := PageMeta(strings.NewReader(html), 800)
	if err != nil {
		t.Fatalf("PageMeta returned error: %v", err)
	}
	if meta.Title != "Spam report 919876543210" {
		t.Errorf("Title = %q, want meta[name=title] fallback", meta.Title)
	}
	if meta.Image != "/static/avatar.png" {
		t.Errorf("Image = %q, want first <img> fallback", meta.Image)
	}
}

func TestPageMetaTextCap(t *testing.T) {
	html := "<html><body>" + strings.Repeat("word ", 400) + "</body></html>"

	meta, err := PageMeta(strings.NewReader(html), 100)
	if err != nil {
		t.Fatalf("PageMeta returned error: %v", err)
	}
	if got := len([]rune(meta.Text)); got > 100 {
		t.Errorf("Text length = %d runes, want <= 100", got)
	}
}

func TestSearchHits(t *testing.T) {
	html := `<html><body>
		<div><a href="https://a.example.com">First Result</a> snippet about John Smith</div>
		<div><a href="https://b.example.com">Second Result</a> another snippet</div>
		<div><a href="">Empty Href</a></div>
		<div><a href="https://c.example.com"></a></div>
		<div><a href="https://d.example.com">Third Result</a></div>
	</body></html>`

	hits, err := SearchHits(strings.NewReader(html), 8, 300)
	if err != nil {
		t.Fatalf("SearchHits returned error: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("len(hits) = %d, want 3 (anchors without href or text skipped)", len(hits))
	}
	if hits[0].Href != "https://a.example.com" || hits[0].Title != "First Result" {
		t.Errorf("hits[0] = %+v", hits[0])
	}
	if !strings.Contains(hits[0].Snippet, "John Smith") {
		t.Errorf("hits[0].Snippet = %q, want parent text", hits[0].Snippet)
	}
	if strings.Contains(hits[0].Snippet, "First Result") {
		t.Errorf("hits[0].Snippet = %q, title should be removed", hits[0].Snippet)
	}
}

func TestSearchHitsLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 20; i++ {
		b.WriteString(`<div><a href="https://example.com/page">Result Link</a></div>`)
	}
	b.WriteString("</body></html>")

	hits, err := SearchHits(strings.NewReader(b.String()), 8, 300)
	if err != nil {
		t.Fatalf("SearchHits returned error: %v", err)
	}
	if len(hits) != 8 {
		t.Errorf("len(hits) = %d, want limit 8", len(hits))
	}
}
