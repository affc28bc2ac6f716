package finder

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/logoscout/logoscout/internal/document"
	"github.com/logoscout/logoscout/internal/model"
)

// metaProperties is the fixed preference order for logo-bearing metadata
// properties: the official social-preview image first, its secure variant,
// then the Twitter card image. Richer, more curated sources rank first.
var metaProperties = []string{
	"og:image",
	"og:image:secure_url",
	"twitter:image",
}

// touchIconRank places the high-resolution touch icon after all meta
// properties in the preference order.
var touchIconRank = len(metaProperties)

// MetaTagFinder scans head-level metadata for recognized logo-bearing
// properties. Sites without explicit logo markup often still publish a
// social preview image, which is frequently the brand logo — but just as
// frequently a generic banner, hence this finder's position below the
// explicit one.
type MetaTagFinder struct{}

// NewMetaTagFinder creates a MetaTagFinder.
func NewMetaTagFinder() *MetaTagFinder {
	return &MetaTagFinder{}
}

// Name returns the finder name.
func (f *MetaTagFinder) Name() string {
	return "meta"
}

// Find returns metadata-based candidates ranked by the fixed property
// preference order. Candidates that would not resolve to an http(s) URL
// are excluded; social preview content is occasionally a data blob or an
// app deep link, neither of which is a usable logo reference.
func (f *MetaTagFinder) Find(doc *document.Document, base *url.URL) []model.LogoCandidate {
	var cands []model.LogoCandidate
	seen := make(map[string]bool)

	add := func(content string, rank int) {
		content = strings.TrimSpace(content)
		if content == "" || seen[content] || !resolvesToHTTP(base, content) {
			return
		}
		seen[content] = true
		cands = append(cands, model.LogoCandidate{
			URL:    content,
			Source: model.StrategyMeta,
			Rank:   rank,
		})
	}

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		// OpenGraph uses property, Twitter cards use name.
		prop, ok := s.Attr("property")
		if !ok {
			prop, _ = s.Attr("name")
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		for rank, want := range metaProperties {
			if prop == want {
				content, _ := s.Attr("content")
				add(content, rank)
				return
			}
		}
	})

	doc.Find("link").Each(func(_ int, s *goquery.Selection) {
		rel, _ := s.Attr("rel")
		if !strings.Contains(strings.ToLower(rel), "apple-touch-icon") {
			return
		}
		href, _ := s.Attr("href")
		add(href, touchIconRank)
	})

	sortByRank(cands)
	return cands
}

// resolvesToHTTP reports whether the candidate would resolve to an http or
// https URL against the page base.
func resolvesToHTTP(base *url.URL, candidate string) bool {
	u, err := url.Parse(candidate)
	if err != nil {
		return false
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	return u.Scheme == "http" || u.Scheme == "https" || (u.Scheme == "" && u.Host != "")
}
