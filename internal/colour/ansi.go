package colour

import (
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const defaultWidth = 8

// PreviewMode selects when colour swatches are rendered.
type PreviewMode string

const (
	PreviewAuto   PreviewMode = "auto"
	PreviewAlways PreviewMode = "always"
	PreviewNever  PreviewMode = "never"
)

// Previewer renders terminal colour swatches for a detected colour profile.
type Previewer struct {
	profile termenv.Profile
}

// NewPreviewer creates a Previewer for an explicit colour profile.
func NewPreviewer(profile termenv.Profile) *Previewer {
	return &Previewer{profile: profile}
}

// DetectPreviewer picks a colour profile for the given output file.
// Auto mode only colours real terminals.
func DetectPreviewer(out *os.File, mode PreviewMode) *Previewer {
	switch mode {
	case PreviewAlways:
		return NewPreviewer(termenv.TrueColor)
	case PreviewNever:
		return NewPreviewer(termenv.Ascii)
	}
	if out == nil || !term.IsTerminal(int(out.Fd())) {
		return NewPreviewer(termenv.Ascii)
	}
	return NewPreviewer(termenv.ColorProfile())
}

// Enabled reports whether swatches will carry colour.
func (p *Previewer) Enabled() bool {
	return p.profile != termenv.Ascii
}

// Swatch returns a solid block of the given colour.
// Width specifies how many characters wide the block should be.
func (p *Previewer) Swatch(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	block := strings.Repeat(" ", width)
	if !p.Enabled() {
		return block
	}
	return termenv.String(block).Background(p.profile.Color(c.Hex())).String()
}

// SwatchWithText returns a swatch with text drawn in black or white,
// whichever reads better on the swatch.
func (p *Previewer) SwatchWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}
	if !p.Enabled() {
		return displayText
	}

	fg := Black
	if ContrastRatio(White, c) > ContrastRatio(Black, c) {
		fg = White
	}
	return termenv.String(displayText).
		Foreground(p.profile.Color(fg.Hex())).
		Background(p.profile.Color(c.Hex())).
		String()
}

// FormatWithPreview formats a colour with its swatch and hex code.
func (p *Previewer) FormatWithPreview(c RGB, width int) string {
	return fmt.Sprintf("%s %s", p.Swatch(c, width), c.Hex())
}

// FormatWithLabel formats a colour with a label and swatch.
func (p *Previewer) FormatWithLabel(c RGB, label string, width int) string {
	return fmt.Sprintf("%s  %-20s %s", p.Swatch(c, width), label, c.Hex())
}
