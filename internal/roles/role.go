// Package roles maps an extracted palette onto Bootstrap's semantic colour
// roles.
package roles

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/ctbs/internal/colour"
)

// Role is a semantic colour name a theme binds UI meaning to.
type Role int

// Canonical roles.
const (
	Primary Role = iota
	Secondary
	Success
	Info
	Warning
	Danger
	Light
	Dark
	Gray
	Indigo
	Purple
	Pink
	Orange
	Teal

	numCanonical
)

// Hue aliases. Each resolves to a canonical role on every read and write.
const (
	Blue Role = numCanonical + iota
	Green
	Red
	Yellow
	Cyan

	numRoles
)

var roleNames = [numRoles]string{
	Primary:   "primary",
	Secondary: "secondary",
	Success:   "success",
	Info:      "info",
	Warning:   "warning",
	Danger:    "danger",
	Light:     "light",
	Dark:      "dark",
	Gray:      "gray",
	Indigo:    "indigo",
	Purple:    "purple",
	Pink:      "pink",
	Orange:    "orange",
	Teal:      "teal",
	Blue:      "blue",
	Green:     "green",
	Red:       "red",
	Yellow:    "yellow",
	Cyan:      "cyan",
}

var aliasOf = map[Role]Role{
	Blue:   Primary,
	Green:  Success,
	Red:    Danger,
	Yellow: Warning,
	Cyan:   Info,
}

// String returns the lower-case role name.
func (r Role) String() string {
	if r < 0 || r >= numRoles {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// Valid reports whether r names a known role or alias.
func (r Role) Valid() bool {
	return r >= 0 && r < numRoles
}

// IsAlias reports whether r is a hue alias.
func (r Role) IsAlias() bool {
	_, ok := aliasOf[r]
	return ok
}

// Canonical resolves an alias to its canonical role.
func (r Role) Canonical() Role {
	if c, ok := aliasOf[r]; ok {
		return c
	}
	return r
}

// IsNeutral reports whether r is a surface role (Light or Dark) that is
// not harmonized against the body background.
func (r Role) IsNeutral() bool {
	c := r.Canonical()
	return c == Light || c == Dark
}

// ParseRole looks a role up by name, case-insensitively.
func ParseRole(name string) (Role, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for r := Role(0); r < numRoles; r++ {
		if roleNames[r] == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", name)
}

// Canonicals returns the canonical roles in declaration order.
func Canonicals() []Role {
	out := make([]Role, 0, numCanonical)
	for r := Role(0); r < numCanonical; r++ {
		out = append(out, r)
	}
	return out
}

// Aliases returns the hue aliases in declaration order.
func Aliases() []Role {
	return []Role{Blue, Green, Red, Yellow, Cyan}
}

// All returns every role followed by every alias.
func All() []Role {
	return append(Canonicals(), Aliases()...)
}

// RoleMap is a total mapping from role to colour. Every canonical role
// always holds a value; aliases read and write through to their canonical
// role. RoleMap is a value type, so copies are independent.
type RoleMap struct {
	colours [numCanonical]colour.RGB
}

// Get returns the colour bound to r, or the zero colour for an invalid
// role.
func (m RoleMap) Get(r Role) colour.RGB {
	if !r.Valid() {
		return colour.RGB{}
	}
	return m.colours[r.Canonical()]
}

// Set binds c to r. Setting an alias updates its canonical role; invalid
// roles are ignored.
func (m *RoleMap) Set(r Role, c colour.RGB) {
	if !r.Valid() {
		return
	}
	m.colours[r.Canonical()] = c
}

// Each calls fn for every canonical role in declaration order.
func (m RoleMap) Each(fn func(Role, colour.RGB)) {
	for r := Role(0); r < numCanonical; r++ {
		fn(r, m.colours[r])
	}
}

// Hex returns the map as role name to hex string, aliases included.
func (m RoleMap) Hex() map[string]string {
	out := make(map[string]string, numRoles)
	for _, r := range All() {
		out[r.String()] = m.Get(r).Hex()
	}
	return out
}
