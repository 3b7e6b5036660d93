package wiki

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// externalLinksID marks the "External links" heading on anonymously
// fetched pages. The API-rendered HTML may not carry it, in which case
// extraction simply scans the whole document.
const externalLinksID = "External_links"

// ExtractOptions controls which hyperlinks count as article links.
type ExtractOptions struct {
	// LinkPrefix is the href prefix identifying internal article links
	// ("/wiki/" for anonymous pages, "./" for API-rendered HTML).
	LinkPrefix string
	// HomePage is the front-page identifier to exclude.
	HomePage string
	// IncludeExternal keeps scanning past the "External links" heading.
	IncludeExternal bool
}

// Links parses a fetched document and returns the candidate article
// identifiers it references, in document order. Fragments are stripped,
// the home page and namespaced pages (Talk:, Special:, ...) are
// excluded. Duplicates are kept; deduplication is the registry's job.
func Links(body string, opts ExtractOptions) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	var links []string

	doc.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !opts.IncludeExternal {
			if id, ok := sel.Attr("id"); ok && id == externalLinksID {
				return false
			}
		}

		if goquery.NodeName(sel) != "a" {
			return true
		}

		href, ok := sel.Attr("href")
		if !ok {
			return true
		}

		name, ok := strings.CutPrefix(href, opts.LinkPrefix)
		if !ok {
			return true
		}

		// Remove #fragments
		if i := strings.IndexByte(name, '#'); i >= 0 {
			name = name[:i]
		}

		// Exclude the home page and namespaced pages (Talk:, Special:, ...)
		if name == "" || name == opts.HomePage || strings.Contains(name, ":") {
			return true
		}

		links = append(links, name)
		return true
	})

	return links, nil
}
