package display

import (
	"fmt"
	"unicode/utf8"
)

// Tier is one of eight display size classes chosen by text length.
// Tier 0 is the largest.
type Tier int

const (
	Tier0 Tier = iota
	Tier1
	Tier2
	Tier3
	Tier4
	Tier5
	Tier6
	Tier7
)

// tierLimits holds the inclusive maximum length for Tier0..Tier6.
// Anything longer is Tier7.
var tierLimits = [...]int{8, 10, 12, 16, 20, 25, 30}

var tierClasses = [...]string{
	"text-6xl",
	"text-5xl",
	"text-4xl",
	"text-3xl",
	"text-2xl",
	"text-xl",
	"text-lg",
	"text-base",
}

// TierFor returns the size tier for text, first matching limit wins
func TierFor(text string) Tier {
	n := utf8.RuneCountInString(text)
	for i, limit := range tierLimits {
		if n <= limit {
			return Tier(i)
		}
	}
	return Tier7
}

// Class returns the style class name for the tier
func (t Tier) Class() string {
	if t < Tier0 || t > Tier7 {
		return tierClasses[Tier7]
	}
	return tierClasses[t]
}

// String implements fmt.Stringer
func (t Tier) String() string {
	return fmt.Sprintf("tier%d", int(t))
}
