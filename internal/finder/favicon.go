package finder

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/logoscout/logoscout/internal/document"
)

// iconRels is the preference order for favicon link relations.
var iconRels = []string{
	"icon",
	"shortcut icon",
	"apple-touch-icon",
}

// FindFavicon looks up the standard icon link relations and returns the
// best icon href, or "" when the page declares none.
//
// Favicon extraction is deliberately not a Finder: it does not participate
// in the logo priority chain, never suppresses a logo result, and is
// excluded from quality metrics. It is a parallel, advisory lookup.
func FindFavicon(doc *document.Document) string {
	best := ""
	bestRank := len(iconRels)

	doc.Find("link").Each(func(_ int, s *goquery.Selection) {
		rel := strings.ToLower(strings.TrimSpace(s.AttrOr("rel", "")))
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		for rank, want := range iconRels {
			if relMatches(rel, want) && rank < bestRank {
				best = href
				bestRank = rank
				return
			}
		}
	})

	return best
}

// relMatches compares a rel attribute against a wanted relation. The rel
// attribute is an unordered token list ("shortcut icon" and "icon
// shortcut" are equivalent), so multi-token relations match as subsets.
func relMatches(rel, want string) bool {
	relTokens := strings.Fields(rel)
	wantTokens := strings.Fields(want)
	if len(relTokens) != len(wantTokens) {
		return false
	}
	for _, w := range wantTokens {
		found := false
		for _, r := range relTokens {
			if r == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
