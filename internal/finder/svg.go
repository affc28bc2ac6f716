package finder

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/logoscout/logoscout/internal/document"
	"github.com/logoscout/logoscout/internal/model"
)

// svgDataURIPrefix is the scheme prefix for inlined SVG candidates.
const svgDataURIPrefix = "data:image/svg+xml,"

// SvgLogoFinder scans inline vector-graphic blocks for the same logo token
// heuristic as the explicit finder: an <svg> whose own class or id matches,
// or one sitting inside an <a> or <div> container with a logo class.
//
// Inline SVGs have no source URL to report. When the svg embeds an
// external <image> reference that URL is the candidate; otherwise the
// serialized markup itself becomes a data URI, which downstream consumers
// can store or render directly.
type SvgLogoFinder struct{}

// NewSvgLogoFinder creates a SvgLogoFinder.
func NewSvgLogoFinder() *SvgLogoFinder {
	return &SvgLogoFinder{}
}

// Name returns the finder name.
func (f *SvgLogoFinder) Name() string {
	return "svg"
}

// Find returns inline SVG candidates. SVGs labelled on the element itself
// outrank ones matched only through their container.
func (f *SvgLogoFinder) Find(doc *document.Document, _ *url.URL) []model.LogoCandidate {
	var cands []model.LogoCandidate

	doc.Find("svg").Each(func(_ int, s *goquery.Selection) {
		rank, ok := rankSvg(s)
		if !ok {
			return
		}

		candidateURL := externalImageRef(s)
		if candidateURL == "" {
			markup, err := document.Render(s)
			if err != nil || markup == "" {
				return
			}
			// Collapse whitespace before encoding; pretty-printed SVG
			// markup is mostly indentation.
			collapsed := strings.Join(strings.Fields(markup), " ")
			candidateURL = svgDataURIPrefix + url.PathEscape(collapsed)
		}

		cands = append(cands, model.LogoCandidate{
			URL:    candidateURL,
			Source: model.StrategySVG,
			Rank:   rank,
		})
	})

	sortByRank(cands)
	return cands
}

// rankSvg decides whether an inline svg is a logo candidate. The svg's own
// class/id wins over a logo-classed <a> or <div> ancestor.
func rankSvg(s *goquery.Selection) (int, bool) {
	class, _ := s.Attr("class")
	id, _ := s.Attr("id")
	if hasLogoToken(class) || hasLogoToken(id) {
		return 0, true
	}

	container := s.ParentsFiltered("a, div").FilterFunction(func(_ int, p *goquery.Selection) bool {
		pc, _ := p.Attr("class")
		pid, _ := p.Attr("id")
		return hasLogoToken(pc) || hasLogoToken(pid)
	})
	if container.Length() > 0 {
		return 1, true
	}

	return 0, false
}

// externalImageRef returns the href of an embedded <image> element, if the
// svg references its artwork externally instead of inlining paths.
func externalImageRef(s *goquery.Selection) string {
	img := s.Find("image").First()
	if img.Length() == 0 {
		return ""
	}
	// The HTML parser normalizes xlink:href to a namespaced "href" key, so
	// a plain attribute lookup covers both spellings.
	href, _ := img.Attr("href")
	if strings.TrimSpace(href) == "" {
		href, _ = img.Attr("xlink:href")
	}
	return strings.TrimSpace(href)
}
