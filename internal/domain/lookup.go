package domain

import "fmt"

// PlatformKind selects how a platform is queried.
type PlatformKind string

const (
	// KindSearch runs the platform's query through the search engine's
	// HTML endpoint and scans the result snippets.
	KindSearch PlatformKind = "search"
	// KindDirect fetches a profile page URL built from the number.
	KindDirect PlatformKind = "direct"
)

// Platform is a static descriptor driving one lookup source. Template is a
// search query (KindSearch) or a page URL (KindDirect); %s receives the
// normalized number.
type Platform struct {
	Name     string
	Kind     PlatformKind
	Template string
}

// Render substitutes the normalized number into the template.
func (p Platform) Render(number string) string {
	return fmt.Sprintf(p.Template, number)
}

// Query pairs the raw client input with its digit-only normalized form.
type Query struct {
	Raw        string `json:"queried"`
	Normalized string `json:"normalized"`
}

// LookupResult is the per-platform outcome. Name and Photo stay empty when
// nothing was extracted; Notes carries a source URL or an error message.
type LookupResult struct {
	Platform string `json:"platform"`
	Name     string `json:"name,omitempty"`
	Photo    string `json:"photo,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Report is the aggregated response for one lookup request.
type Report struct {
	Queried    string         `json:"queried"`
	Normalized string         `json:"normalized"`
	Results    []LookupResult `json:"results"`
}

// QuickLink is the POST variant's output: a constructed profile URL,
// returned without any fetching.
type QuickLink struct {
	Platform string `json:"platform"`
	Result   string `json:"result"`
}
