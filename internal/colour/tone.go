package colour

// Darken lowers HSL lightness by amount percentage points, clamped at 0.
func Darken(c RGB, amount float64) RGB {
	hsl := c.HSL()
	hsl.L = clamp(hsl.L-amount, 0, 100)
	return hsl.RGB()
}

// Lighten raises HSL lightness by amount percentage points, clamped at 100.
func Lighten(c RGB, amount float64) RGB {
	hsl := c.HSL()
	hsl.L = clamp(hsl.L+amount, 0, 100)
	return hsl.RGB()
}

// Saturate shifts HSL saturation by amount percentage points. A negative
// amount desaturates. The result is clamped to [0,100].
func Saturate(c RGB, amount float64) RGB {
	hsl := c.HSL()
	hsl.S = clamp(hsl.S+amount, 0, 100)
	return hsl.RGB()
}

// WithLightness returns c at the given lightness, keeping its hue and saturation.
func WithLightness(c RGB, lightness float64) RGB {
	hsl := c.HSL()
	hsl.L = clamp(lightness, 0, 100)
	return hsl.RGB()
}

// Shift moves lightness toward the dark end when towardDark is set and
// toward the light end otherwise.
func Shift(c RGB, amount float64, towardDark bool) RGB {
	if towardDark {
		return Darken(c, amount)
	}
	return Lighten(c, amount)
}
