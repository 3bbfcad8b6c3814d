package theme

import (
	"fmt"
	"strings"
)

// Variant is a contextual derivation of a role colour.
type Variant int

// Variants, in emission order.
const (
	Base Variant = iota
	Text
	BgSubtle
	TextEmphasis
	BorderSubtle
	HoverBg
	ActiveBg
	HoverText
	ActiveText
	Striped
	ButtonBg
	ButtonText
	ButtonHoverBg
	ButtonHoverText
	OutlineText
	OutlineBorder
	BadgeBg
	BadgeText

	numVariants
)

var variantNames = [numVariants]string{
	Base:            "base",
	Text:            "text",
	BgSubtle:        "bg-subtle",
	TextEmphasis:    "text-emphasis",
	BorderSubtle:    "border-subtle",
	HoverBg:         "hover-bg",
	ActiveBg:        "active-bg",
	HoverText:       "hover-text",
	ActiveText:      "active-text",
	Striped:         "striped",
	ButtonBg:        "btn-bg",
	ButtonText:      "btn-text",
	ButtonHoverBg:   "btn-hover-bg",
	ButtonHoverText: "btn-hover-text",
	OutlineText:     "outline-text",
	OutlineBorder:   "outline-border",
	BadgeBg:         "badge-bg",
	BadgeText:       "badge-text",
}

// String returns the kebab-case variant name.
func (v Variant) String() string {
	if v < 0 || v >= numVariants {
		return fmt.Sprintf("variant(%d)", int(v))
	}
	return variantNames[v]
}

// ParseVariant looks a variant up by name.
func ParseVariant(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for v := Variant(0); v < numVariants; v++ {
		if variantNames[v] == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown variant %q", name)
}

// Variants returns every variant in emission order.
func Variants() []Variant {
	out := make([]Variant, 0, numVariants)
	for v := Variant(0); v < numVariants; v++ {
		out = append(out, v)
	}
	return out
}
