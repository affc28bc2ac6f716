package finder

import (
	"net/url"
	"sort"

	"github.com/PuerkitoBio/goquery"

	"github.com/logoscout/logoscout/internal/document"
	"github.com/logoscout/logoscout/internal/model"
)

// Explicit finder ranks. Exact "logo" class/id tokens are the strongest
// signal on the page; substring and wrapper matches are progressively
// weaker.
const (
	rankExactToken = iota
	rankSubstring
	rankBrandWrapper
)

// ExplicitLogoFinder scans image elements and logo-classed anchors for
// markup that explicitly labels an asset as the logo: an id, class, alt
// text, or file name containing the token "logo".
//
// Highest-priority finder: when a site says "this is the logo", believe it.
type ExplicitLogoFinder struct{}

// NewExplicitLogoFinder creates an ExplicitLogoFinder.
func NewExplicitLogoFinder() *ExplicitLogoFinder {
	return &ExplicitLogoFinder{}
}

// Name returns the finder name.
func (f *ExplicitLogoFinder) Name() string {
	return "explicit"
}

// Find returns explicitly labelled logo candidates, strongest label first,
// document order within equal ranks.
func (f *ExplicitLogoFinder) Find(doc *document.Document, _ *url.URL) []model.LogoCandidate {
	type scored struct {
		cand model.LogoCandidate
		pos  int
	}
	var cands []scored
	index := make(map[string]int)

	add := func(src string, rank, pos int) {
		if src == "" {
			return
		}
		// The same asset is often referenced both by a labelled anchor and
		// by the image it wraps; keep one candidate at the earliest position
		// with the strongest label.
		if i, ok := index[src]; ok {
			if rank < cands[i].cand.Rank {
				cands[i].cand.Rank = rank
			}
			return
		}
		index[src] = len(cands)
		cands = append(cands, scored{
			cand: model.LogoCandidate{
				URL:    src,
				Source: model.StrategyExplicit,
				Rank:   rank,
			},
			pos: pos,
		})
	}

	// Images and brand anchors are scanned in one pass so equal-rank ties
	// resolve by position in the page, never by element kind.
	doc.Find("img, a").Each(func(pos int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "img":
			src := imageSource(s)
			if src == "" {
				return
			}
			if rank, ok := rankImage(s, src); ok {
				add(src, rank, pos)
			}
		case "a":
			// Navbar-brand pattern: the wrapping anchor carries the
			// logo/brand class and the image itself only says "logo" in its
			// alt text, or not at all. Weakest explicit signal unless the
			// anchor's class or id is exactly "logo".
			class, _ := s.Attr("class")
			id, _ := s.Attr("id")
			if !hasBrandToken(class) && !hasBrandToken(id) {
				return
			}
			img := s.Find("img").First()
			if img.Length() == 0 {
				return
			}
			rank := rankBrandWrapper
			if document.AttrHasExactToken(s, "class", logoToken) || document.AttrHasExactToken(s, "id", logoToken) {
				rank = rankExactToken
			}
			add(imageSource(img), rank, pos)
		}
	})

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].cand.Rank != cands[j].cand.Rank {
			return cands[i].cand.Rank < cands[j].cand.Rank
		}
		return cands[i].pos < cands[j].pos
	})

	out := make([]model.LogoCandidate, len(cands))
	for i, sc := range cands {
		out[i] = sc.cand
	}
	return out
}

// rankImage decides whether an image element is explicitly labelled as a
// logo and how specific the label is. An element whose class or id is
// exactly "logo" outranks one where "logo" is merely a substring of a
// longer token.
func rankImage(s *goquery.Selection, src string) (int, bool) {
	if document.AttrHasExactToken(s, "class", logoToken) || document.AttrHasExactToken(s, "id", logoToken) {
		return rankExactToken, true
	}

	class, _ := s.Attr("class")
	id, _ := s.Attr("id")
	alt, _ := s.Attr("alt")
	if hasLogoToken(class) || hasLogoToken(id) || hasLogoToken(alt) || hasLogoToken(fileName(src)) {
		return rankSubstring, true
	}

	return 0, false
}
