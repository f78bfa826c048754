package theme

import "strings"

const (
	Light = "light"
	Dark  = "dark"
	Blue  = "blue"
)

// Known lists the themes the stylesheets ship.
var Known = []string{Light, Dark, Blue}

// Preference is the reader's theme choice. Stored is an explicit choice and
// wins over the system color scheme.
type Preference struct {
	Stored     string
	SystemDark bool
}

// Resolve returns the theme to apply.
func (p Preference) Resolve() string {
	if s := strings.ToLower(strings.TrimSpace(p.Stored)); s != "" {
		return s
	}
	if p.SystemDark {
		return Dark
	}
	return Light
}

// Toggle flips between light and dark; any other theme becomes dark.
func Toggle(current string) string {
	if current == Dark {
		return Light
	}
	return Dark
}

// Valid reports whether name is empty (automatic) or a known theme.
func Valid(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return true
	}
	for _, k := range Known {
		if k == name {
			return true
		}
	}
	return false
}

// GlamourStyle maps a theme to a glamour standard style for terminal previews.
func GlamourStyle(name string) string {
	switch name {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return "dracula"
	}
}
