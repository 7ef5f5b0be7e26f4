package strutil

import (
	"fmt"
	"strings"
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// Comparison selects the rules used to decide whether a string contains another.
type Comparison int

const (
	// Ordinal compares strings byte by byte.
	Ordinal Comparison = iota
	// OrdinalIgnoreCase compares strings byte by byte after mapping every rune to upper case.
	// The mapping is one rune to one rune: "ß" doesn't match "SS".
	OrdinalIgnoreCase
	// CurrentCulture uses the collation rules of the current culture, see SetCurrentCulture.
	CurrentCulture
	CurrentCultureIgnoreCase
	// InvariantCulture uses the root collation rules, whatever the current culture is.
	InvariantCulture
	InvariantCultureIgnoreCase
)

var comparisonNames = map[Comparison]string{
	Ordinal:                    "ordinal",
	OrdinalIgnoreCase:          "ordinal-ignore-case",
	CurrentCulture:             "current-culture",
	CurrentCultureIgnoreCase:   "current-culture-ignore-case",
	InvariantCulture:           "invariant-culture",
	InvariantCultureIgnoreCase: "invariant-culture-ignore-case",
}

var currentCulture atomic.Value

func init() {
	currentCulture.Store(language.Und)
}

// SetCurrentCulture sets the language used by CurrentCulture and CurrentCultureIgnoreCase.
func SetCurrentCulture(tag language.Tag) {
	currentCulture.Store(tag)
}

// GetCurrentCulture returns the language used by CurrentCulture and CurrentCultureIgnoreCase.
func GetCurrentCulture() language.Tag {
	tag, ok := currentCulture.Load().(language.Tag)
	if !ok {
		panic("invalid current culture")
	}
	return tag
}

// ParseComparison returns the Comparison matching name. Names are matched case-insensitively,
// and "_" or "-" separators are optional: "OrdinalIgnoreCase", "ordinal_ignore_case" and
// "ordinal-ignore-case" are all valid.
func ParseComparison(name string) (Comparison, error) {
	normalized := normalizeComparisonName(name)
	for c, n := range comparisonNames {
		if normalizeComparisonName(n) == normalized {
			return c, nil
		}
	}

	return Ordinal, fmt.Errorf("%q is not a valid comparison", name)
}

func normalizeComparisonName(name string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
}

func (c Comparison) String() string {
	if name, ok := comparisonNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Comparison(%d)", int(c))
}

// Contains reports whether part is within s according to the comparison rules.
// It panics if c is not one of the declared comparisons.
func (c Comparison) Contains(s, part string) bool {
	switch c {
	case Ordinal:
		return strings.Contains(s, part)
	case OrdinalIgnoreCase:
		return strings.Contains(strings.ToUpper(s), strings.ToUpper(part))
	case CurrentCulture:
		return collatedContains(GetCurrentCulture(), s, part)
	case CurrentCultureIgnoreCase:
		return collatedContains(GetCurrentCulture(), s, part, search.IgnoreCase)
	case InvariantCulture:
		return collatedContains(language.Und, s, part)
	case InvariantCultureIgnoreCase:
		return collatedContains(language.Und, s, part, search.IgnoreCase)
	default:
		panic(fmt.Sprintf("unsupported comparison: %s", c))
	}
}

func collatedContains(tag language.Tag, s, part string, opts ...search.Option) bool {
	if part == "" {
		return true
	}

	start, _ := search.New(tag, opts...).IndexString(s, part)
	return start >= 0
}
