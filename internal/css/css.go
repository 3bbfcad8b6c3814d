// Package css renders composed themes as Bootstrap 5.3 CSS custom properties.
package css

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/jmylchreest/ctbs/internal/theme"
)

//go:embed *.tmpl
var templates embed.FS

const (
	lightSelector = ":root,\n[data-bs-theme=light]"
	darkSelector  = "[data-bs-theme=dark]"
)

var prefixPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Options controls rendering.
type Options struct {
	// Prefix replaces the "bs" in "--bs-" when set.
	Prefix string
	// Source is written as a comment naming where the palette came from.
	Source string
	// Version is written into the header comment.
	Version string
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.Prefix != "" && !prefixPattern.MatchString(o.Prefix) {
		return fmt.Errorf("invalid prefix %q: use lower-case letters, digits and hyphens", o.Prefix)
	}
	return nil
}

// Declaration is one rendered custom property.
type Declaration struct {
	Name  string
	Value string
}

// Block is a selector with its declarations.
type Block struct {
	Selector     string
	Declarations []Declaration
}

// templateData holds data for the CSS template.
type templateData struct {
	Version string
	Source  string
	Blocks  []Block
}

// Blocks evaluates the variable table against every context in t.
func Blocks(t theme.Theme, opts Options) []Block {
	table := Table()
	var blocks []Block
	for _, ctx := range t.Contexts() {
		selector := lightSelector
		if ctx.Polarity() == theme.PolarityDark {
			selector = darkSelector
		}
		b := Block{
			Selector:     selector,
			Declarations: make([]Declaration, 0, len(table)),
		}
		for _, v := range table {
			b.Declarations = append(b.Declarations, Declaration{
				Name:  rename(v.Name, opts.Prefix),
				Value: v.Value(ctx),
			})
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func rename(name, prefix string) string {
	if prefix == "" {
		return name
	}
	if rest, ok := strings.CutPrefix(name, "--bs-"); ok {
		return "--" + prefix + "-" + rest
	}
	return name
}

// Render writes t as CSS to w.
func Render(w io.Writer, t theme.Theme, opts Options) error {
	if t.Light == nil {
		return fmt.Errorf("theme has no light context")
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	tmplContent, err := templates.ReadFile("bootstrap.css.tmpl")
	if err != nil {
		return fmt.Errorf("failed to read CSS template: %w", err)
	}

	tmpl, err := template.New("bootstrap.css").Parse(string(tmplContent))
	if err != nil {
		return fmt.Errorf("failed to parse CSS template: %w", err)
	}

	data := templateData{
		Version: opts.Version,
		Source:  opts.Source,
		Blocks:  Blocks(t, opts),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute CSS template: %w", err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write CSS: %w", err)
	}
	return nil
}
