package finder

import (
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/logoscout/logoscout/internal/document"
	"github.com/logoscout/logoscout/internal/model"
)

// logoToken is the literal token all heuristics key on. Sites label their
// brand asset "logo" with remarkable consistency; everything else (icon,
// brand mark, wordmark) is noise more often than signal.
const logoToken = "logo"

// brandToken extends the anchor-class heuristic: navbar markup frequently
// uses "navbar-brand" style classes around the logo image.
const brandToken = "brand"

// Finder locates one category of logo signal in a parsed document.
//
// Implementations are pure functions of their input: they never block,
// never error, and skip elements with missing attributes or malformed
// URLs instead of aborting. Candidates are returned in document order so
// rank ties resolve to the first occurrence.
type Finder interface {
	// Find scans the document and returns ranked candidates, possibly none.
	// base is the page's final URL; finders may use it for validation but
	// must return candidate URLs unresolved (the chain resolves them).
	Find(doc *document.Document, base *url.URL) []model.LogoCandidate

	// Name returns the finder's name for logging purposes.
	Name() string
}

// Chain returns the finders in priority order. Explicit logo markup is the
// most reliable signal; meta-tag images are frequently generic social
// preview banners rather than brand logos, and inline SVG detection is the
// weakest heuristic, so the order is fixed as explicit, meta, svg.
//
// Design decision: a closed, ordered slice rather than a registry keeps
// the priority order statically auditable.
func Chain() []Finder {
	return []Finder{
		NewExplicitLogoFinder(),
		NewMetaTagFinder(),
		NewSvgLogoFinder(),
	}
}

// hasLogoToken reports whether v contains "logo", case-insensitively.
func hasLogoToken(v string) bool {
	return strings.Contains(strings.ToLower(v), logoToken)
}

// hasBrandToken reports whether v contains "logo" or "brand",
// case-insensitively.
func hasBrandToken(v string) bool {
	lower := strings.ToLower(v)
	return strings.Contains(lower, logoToken) || strings.Contains(lower, brandToken)
}

// fileName extracts the file name portion of a (possibly relative) URL, so
// "/static/img/Logo-dark.svg?v=2" matches the logo token via its name.
func fileName(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	return path.Base(rawURL)
}

// imageSource returns the effective source of an image element. Lazy
// loading setups park the real URL in data-src, so it wins over src.
func imageSource(s *goquery.Selection) string {
	if v, ok := s.Attr("data-src"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	v, _ := s.Attr("src")
	return strings.TrimSpace(v)
}

// sortByRank orders candidates by rank, preserving document order within
// equal ranks.
func sortByRank(cands []model.LogoCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Rank < cands[j].Rank
	})
}
