package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered collection of colours extracted from an image.
// Order carries no meaning beyond insertion order; Weights, when present,
// holds the relative cluster size of each colour.
type Palette struct {
	Colors  []RGB
	Weights []float64
}

// NewPalette creates a new Palette with the given colours.
func NewPalette(colors []RGB) *Palette {
	return &Palette{
		Colors: colors,
	}
}

// NewPaletteWithWeights creates a Palette whose colours carry cluster weights.
func NewPaletteWithWeights(colors []RGB, weights []float64) *Palette {
	return &Palette{
		Colors:  colors,
		Weights: weights,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Colors)
}

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Triple returns the bare channel list used by alpha-composable CSS
// variables, e.g. "13, 110, 253".
func (rgb RGB) Triple() string {
	return fmt.Sprintf("%d, %d, %d", rgb.R, rgb.G, rgb.B)
}

// RGBA returns an rgba() literal with the given alpha in [0,1].
func (rgb RGB) RGBA(alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", rgb.R, rgb.G, rgb.B, formatAlpha(clamp(alpha, 0, 1)))
}

func formatAlpha(a float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.3f", a), "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return "0"
	}
	return s
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255].
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ParseHex parses "#rrggbb", "rrggbb", "#rgb" or "rgb".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGB{}, fmt.Errorf("empty colour")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: want #rgb or #rrggbb", s)
	}
	if strings.IndexFunc(s[1:], func(r rune) bool { return !isHexDigit(r) }) >= 0 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: non-hex digit", s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func isHexDigit(r rune) bool {
	return '0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

// MustParseHex is ParseHex for compile-time constants; it panics on bad input.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHexList parses a comma or whitespace separated list of hex colours
// into a palette, keeping the given order.
func ParseHexList(list string) (*Palette, error) {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	colors := make([]RGB, 0, len(fields))
	for _, f := range fields {
		c, err := ParseHex(f)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return NewPalette(colors), nil
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = c.Hex()
	}
	return hexColors
}

// ColorJSON represents a colour in JSON output format.
type ColorJSON struct {
	Hex    string  `json:"hex"`
	RGB    RGB     `json:"rgb"`
	Weight float64 `json:"weight,omitempty"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Colors []ColorJSON `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = ColorJSON{
			Hex: c.Hex(),
			RGB: c,
		}
		if i < len(p.Weights) {
			colors[i].Weight = p.Weights[i]
		}
	}

	paletteJSON := PaletteJSON{
		Count:  len(p.Colors),
		Colors: colors,
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

// LoadPaletteJSON decodes a palette written by ToJSON. A bare JSON array of
// hex strings is accepted too.
func LoadPaletteJSON(data []byte) (*Palette, error) {
	var hexes []string
	if err := json.Unmarshal(data, &hexes); err == nil {
		return ParseHexList(strings.Join(hexes, ","))
	}

	var pj PaletteJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, fmt.Errorf("failed to parse palette JSON: %w", err)
	}

	p := &Palette{Colors: make([]RGB, 0, len(pj.Colors))}
	weighted := false
	for _, cj := range pj.Colors {
		c := cj.RGB
		if cj.Hex != "" {
			parsed, err := ParseHex(cj.Hex)
			if err != nil {
				return nil, err
			}
			c = parsed
		}
		p.Colors = append(p.Colors, c)
		p.Weights = append(p.Weights, cj.Weight)
		weighted = weighted || cj.Weight > 0
	}
	if !weighted {
		p.Weights = nil
	}
	return p, nil
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colors:\n", len(p.Colors))
	for i, c := range p.Colors {
		fmt.Fprintf(&sb, "  %2d: %s (%s)\n", i+1, c.Hex(), c.String())
	}
	return sb.String()
}

// Get returns the colour at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (RGB, error) {
	if index < 0 || index >= len(p.Colors) {
		return RGB{}, fmt.Errorf("index out of bounds: %d (palette has %d colors)", index, len(p.Colors))
	}
	return p.Colors[index], nil
}

// All returns an iterator over all colours in the palette.
func (p *Palette) All() func(func(int, RGB) bool) {
	return func(yield func(int, RGB) bool) {
		for i, c := range p.Colors {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Distinct returns the number of distinct colours in the palette.
func (p *Palette) Distinct() int {
	seen := make(map[RGB]struct{}, len(p.Colors))
	for _, c := range p.Colors {
		seen[c] = struct{}{}
	}
	return len(seen)
}
