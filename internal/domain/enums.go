// Package domain holds the types shared by the storage and service layers:
// swipe polarity, match lifecycle, badge definitions and the error taxonomy.
package domain

import "strings"

// Polarity is the direction of a swipe.
type Polarity string

const (
	PolarityLike Polarity = "like"
	PolarityPass Polarity = "pass"
)

// ParsePolarity accepts "like"/"pass" and the deck gestures "right"/"left".
func ParsePolarity(s string) (Polarity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "like", "right":
		return PolarityLike, true
	case "pass", "left":
		return PolarityPass, true
	}
	return "", false
}

func (p Polarity) IsLike() bool { return p == PolarityLike }

// MatchStatus is the lifecycle state of a match. active -> ended is the only
// transition; ended is terminal.
type MatchStatus string

const (
	MatchActive MatchStatus = "active"
	MatchEnded  MatchStatus = "ended"
)

// End reasons offered by the client. Any non-empty reason is accepted.
const (
	ReasonFoundSomeoneElse = "Found Someone Else"
	ReasonNotCompatible    = "Not Compatible"
	ReasonOther            = "Other"
)

// PairKey orders two account ids so that (a, b) and (b, a) map to the same
// match row.
func PairKey(a, b uint64) (low, high uint64) {
	if a > b {
		return b, a
	}
	return a, b
}
