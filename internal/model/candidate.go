package model

import (
	"errors"
	"strings"
)

// ErrUnknownStrategy is returned when a strategy string cannot be parsed.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy identifies which finder produced a logo candidate.
//
// The set is deliberately closed: finders are a fixed-priority chain, not
// an open plugin system, so the priority order stays statically auditable.
type Strategy int

const (
	// StrategyNone means no finder produced a result.
	StrategyNone Strategy = iota
	// StrategyExplicit is the explicit "logo"-labelled element finder.
	StrategyExplicit
	// StrategyMeta is the head metadata (social preview / touch icon) finder.
	StrategyMeta
	// StrategySVG is the inline SVG logo finder.
	StrategySVG
)

// String returns the string representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyExplicit:
		return "explicit"
	case StrategyMeta:
		return "meta"
	case StrategySVG:
		return "svg"
	default:
		return "none"
	}
}

// ParseStrategy converts a string back into a Strategy.
// Used when loading persisted results from the history database.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "explicit":
		return StrategyExplicit, nil
	case "meta":
		return StrategyMeta, nil
	case "svg":
		return StrategySVG, nil
	case "none", "":
		return StrategyNone, nil
	default:
		return StrategyNone, ErrUnknownStrategy
	}
}

// LogoCandidate is a provisional logo URL with a confidence rank, prior to
// final selection by the strategy chain. Lower rank means higher
// confidence; ties are broken by document order, so finders must emit
// candidates in the order they appear in the document.
type LogoCandidate struct {
	// URL is the candidate asset reference. It may be relative,
	// protocol-relative, absolute, or a data: URI (inline SVG).
	URL string

	// Source is the finder that produced the candidate.
	Source Strategy

	// Rank orders candidates within one finder. Lower wins.
	Rank int
}
