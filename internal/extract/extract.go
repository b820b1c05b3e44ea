// Package extract holds the heuristic HTML and text scanners shared by the
// lookup pipeline: a capitalized-name guesser, Open-Graph page metadata,
// and search-result anchors.
package extract

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/number-lookup-go/internal/util"
)

// A run of one to four capitalized words, each at least three letters.
// First match wins; no ranking.
var nameRe = regexp.MustCompile(`([A-Z][a-z]{2,}(?:\s[A-Z][a-z]{2,}){0,3})`)

// Capitalized page furniture that keeps showing up next to actual names in
// search snippets. Trimmed from the edges of a matched run.
var nameStopwords = map[string]bool{
	"About":   true,
	"Call":    true,
	"Caller":  true,
	"Contact": true,
	"Home":    true,
	"Login":   true,
	"Number":  true,
	"Phone":   true,
	"Privacy": true,
	"Report":  true,
	"Search":  true,
	"Spam":    true,
	"Terms":   true,
	"The":     true,
	"This":    true,
}

// Name scans text for the first capitalized-word sequence resembling a
// person's name, trimming leading and trailing stopwords from the matched
// run. Returns "" when nothing usable matches.
func Name(text string) string {
	if text == "" {
		return ""
	}
	for _, m := range nameRe.FindAllString(text, -1) {
		words := strings.Split(m, " ")
		for len(words) > 0 && nameStopwords[words[0]] {
			words = words[1:]
		}
		for len(words) > 0 && nameStopwords[words[len(words)-1]] {
			words = words[:len(words)-1]
		}
		if len(words) > 0 {
			return strings.Join(words, " ")
		}
	}
	return ""
}

// Meta is what a direct page fetch yields: Open-Graph title and image plus
// a plain-text snippet of the document body.
type Meta struct {
	Title string
	Image string
	Text  string
}

// PageMeta parses an HTML document for og:title/og:image, falling back to
// meta[name=title] and the first <img>. Text is the whitespace-collapsed
// document text capped at textMax runes.
func PageMeta(r io.Reader, textMax int) (*Meta, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	meta := &Meta{}

	if content, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && content != "" {
		meta.Title = content
	} else if content, ok := doc.Find(`meta[name="title"]`).First().Attr("content"); ok {
		meta.Title = content
	}

	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && content != "" {
		meta.Image = content
	} else if src, ok := doc.Find("img").First().Attr("src"); ok {
		meta.Image = src
	}

	meta.Text = util.CapRunes(util.CollapseSpace(doc.Text()), textMax)

	return meta, nil
}

// Hit is one search-engine result anchor.
type Hit struct {
	Title   string
	Href    string
	Snippet string
}

// SearchHits walks every anchor in a search results page and collects
// {title, href, snippet} triples, where the snippet is the anchor's parent
// text with the title removed, capped at snippetMax runes. Collection stops
// at limit hits.
func SearchHits(r io.Reader, limit, snippetMax int) ([]Hit, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, limit)
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		title := util.CollapseSpace(a.Text())
		if !ok || href == "" || title == "" {
			return true
		}

		snippet := ""
		if parent := a.Parent(); parent.Length() > 0 {
			parentText := util.CollapseSpace(parent.Text())
			snippet = util.CapRunes(strings.TrimSpace(strings.ReplaceAll(parentText, title, "")), snippetMax)
		}

		hits = append(hits, Hit{Title: title, Href: href, Snippet: snippet})
		return len(hits) < limit
	})

	return hits, nil
}
