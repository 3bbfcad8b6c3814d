package roles

import (
	"github.com/jmylchreest/ctbs/internal/colour"
)

const (
	// LightMinLuminance is the lowest luminance accepted for the Light role.
	LightMinLuminance = 0.85
	// DarkMaxLuminance is the highest luminance accepted for the Dark role.
	DarkMaxLuminance = 0.10
)

// Categorical describes a role picked by hue bucket.
type Categorical struct {
	Role   Role
	Hue    float64
	Bucket colour.Category
}

// Defaults carries the fallback colours and canonical hues used when a
// palette has nothing suitable for a role.
type Defaults struct {
	Primary colour.RGB
	Light   colour.RGB
	Dark    colour.RGB
	Gray    colour.RGB

	// Categorical lists the hue-bucket roles in assignment order.
	Categorical []Categorical

	// HueShift is the fraction of the way a matched colour's hue is
	// rotated toward its canonical hue.
	HueShift float64
}

// DefaultDefaults returns Bootstrap 5.3's stock values.
func DefaultDefaults() Defaults {
	return Defaults{
		Primary: colour.RGB{R: 13, G: 110, B: 253},
		Light:   colour.RGB{R: 248, G: 249, B: 250},
		Dark:    colour.RGB{R: 33, G: 37, B: 41},
		Gray:    colour.RGB{R: 108, G: 117, B: 125},
		Categorical: []Categorical{
			{Role: Success, Hue: 120, Bucket: colour.CategoryGreen},
			{Role: Warning, Hue: 45, Bucket: colour.CategoryYellow},
			{Role: Danger, Hue: 0, Bucket: colour.CategoryRed},
			{Role: Info, Hue: 195, Bucket: colour.CategoryCyan},
			{Role: Indigo, Hue: 264, Bucket: colour.CategoryBlue},
			{Role: Purple, Hue: 282, Bucket: colour.CategoryPurple},
			{Role: Pink, Hue: 330, Bucket: colour.CategoryPink},
			{Role: Orange, Hue: 30, Bucket: colour.CategoryOrange},
			{Role: Teal, Hue: 160, Bucket: colour.CategoryGreen},
		},
		HueShift: 0.3,
	}
}

// CanonicalHue returns the canonical hue for a categorical role.
func (d Defaults) CanonicalHue(r Role) (float64, bool) {
	r = r.Canonical()
	for _, c := range d.Categorical {
		if c.Role == r {
			return c.Hue, true
		}
	}
	return 0, false
}
