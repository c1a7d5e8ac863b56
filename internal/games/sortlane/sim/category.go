// Package sim implements the lane sorting simulation: lane geometry and
// placement rules, moving items with their retry state machine, collision
// and classification resolution, and the level controller.
//
// The package is UI-agnostic and deterministic for a given seed and
// sequence of Update calls. It performs no I/O and does not log.
package sim

import (
	"strings"
)

// Category is the closed set of item kinds a classifier can accept.
type Category uint8

const (
	CategoryPaper Category = iota
	CategoryPlastic
	CategoryGlass
	CategoryMetal
	CategoryOrganic
	CategoryElectronic
	CategoryCount // Sentinel value for iteration
)

// String returns the lowercase name of the category.
func (c Category) String() string {
	switch c {
	case CategoryPaper:
		return "paper"
	case CategoryPlastic:
		return "plastic"
	case CategoryGlass:
		return "glass"
	case CategoryMetal:
		return "metal"
	case CategoryOrganic:
		return "organic"
	case CategoryElectronic:
		return "electronic"
	default:
		return "unknown"
	}
}

// Char returns a single character representation for ASCII rendering.
func (c Category) Char() rune {
	switch c {
	case CategoryPaper:
		return 'P'
	case CategoryPlastic:
		return 'L'
	case CategoryGlass:
		return 'G'
	case CategoryMetal:
		return 'M'
	case CategoryOrganic:
		return 'O'
	case CategoryElectronic:
		return 'E'
	default:
		return '?'
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c < CategoryCount
}

// ParseCategory converts a name or single-letter code to a Category.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paper", "p":
		return CategoryPaper, true
	case "plastic", "l":
		return CategoryPlastic, true
	case "glass", "g":
		return CategoryGlass, true
	case "metal", "m":
		return CategoryMetal, true
	case "organic", "o":
		return CategoryOrganic, true
	case "electronic", "e":
		return CategoryElectronic, true
	default:
		return CategoryPaper, false
	}
}

// AllCategories returns every defined category in declaration order.
func AllCategories() []Category {
	out := make([]Category, 0, CategoryCount)
	for c := Category(0); c < CategoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// CategorySet is an immutable set of categories.
type CategorySet uint16

// NewCategorySet builds a set from the given categories, ignoring invalid ones.
func NewCategorySet(cats ...Category) CategorySet {
	var s CategorySet
	for _, c := range cats {
		if c.Valid() {
			s |= 1 << c
		}
	}
	return s
}

// Has reports whether c is a member of the set.
func (s CategorySet) Has(c Category) bool {
	return c.Valid() && s&(1<<c) != 0
}

// Len returns the number of categories in the set.
func (s CategorySet) Len() int {
	n := 0
	for c := Category(0); c < CategoryCount; c++ {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Empty reports whether the set has no members.
func (s CategorySet) Empty() bool {
	return s == 0
}

// Slice returns the members in declaration order.
func (s CategorySet) Slice() []Category {
	out := make([]Category, 0, s.Len())
	for c := Category(0); c < CategoryCount; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String returns the members joined with "+".
func (s CategorySet) String() string {
	names := make([]string, 0, s.Len())
	for _, c := range s.Slice() {
		names = append(names, c.String())
	}
	return strings.Join(names, "+")
}
