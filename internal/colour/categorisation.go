package colour

// Category is a coarse hue bucket used to match palette colours to roles.
type Category string

// Hue buckets. The wheel is split at 15/45/75/150/195/255/285/345 degrees.
const (
	CategoryNeutral Category = "neutral"
	CategoryRed     Category = "red"
	CategoryOrange  Category = "orange"
	CategoryYellow  Category = "yellow"
	CategoryGreen   Category = "green"
	CategoryCyan    Category = "cyan"
	CategoryBlue    Category = "blue"
	CategoryPurple  Category = "purple"
	CategoryPink    Category = "pink"
)

// NeutralSaturation is the saturation (percent) below which a colour has no
// usable hue.
const NeutralSaturation = 15

// Categorize places a colour into its hue bucket.
//
// Design Theory:
// - Greys carry no hue signal, so anything below 15% saturation is neutral.
// - Red wraps round 0 degrees, spanning 345-15.
// - Green gets the widest band, 75-150.
func Categorize(c RGB) Category {
	hsl := c.HSL()
	if hsl.S < NeutralSaturation {
		return CategoryNeutral
	}

	h := hsl.H
	switch {
	case h < 15 || h >= 345:
		return CategoryRed
	case h < 45:
		return CategoryOrange
	case h < 75:
		return CategoryYellow
	case h < 150:
		return CategoryGreen
	case h < 195:
		return CategoryCyan
	case h < 255:
		return CategoryBlue
	case h < 285:
		return CategoryPurple
	default:
		return CategoryPink
	}
}

// FilterByCategory returns the palette colours in the given bucket, keeping
// palette order.
func FilterByCategory(colours []RGB, category Category) []RGB {
	var matches []RGB
	for _, c := range colours {
		if Categorize(c) == category {
			matches = append(matches, c)
		}
	}
	return matches
}
