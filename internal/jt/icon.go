package jt

import "strings"

// Icon is a renderable glyph.
type Icon string

// DefaultIcon is shown for stages whose icon cannot be resolved.
const DefaultIcon Icon = "•"

// IconResolver maps a stage's stored icon name to something renderable.
// Unknown or empty names resolve to a default icon, never an error.
type IconResolver interface {
	Resolve(name string) Icon
}

// NamedLookup resolves symbolic names through a fixed table. Lookup is
// case-insensitive.
type NamedLookup struct {
	icons    map[string]Icon
	fallback Icon
}

// NewNamedLookup builds a NamedLookup. An empty fallback means DefaultIcon.
func NewNamedLookup(icons map[string]Icon, fallback Icon) *NamedLookup {
	if fallback == "" {
		fallback = DefaultIcon
	}
	table := make(map[string]Icon, len(icons))
	for name, icon := range icons {
		table[strings.ToLower(name)] = icon
	}
	return &NamedLookup{icons: table, fallback: fallback}
}

// DefaultIcons is the built-in table for the names used by the stage
// catalog.
func DefaultIcons() *NamedLookup {
	return NewNamedLookup(map[string]Icon{
		"send":      "➤",
		"phone":     "☎",
		"code":      "⌨",
		"users":     "☺",
		"mail":      "✉",
		"trophy":    "★",
		"x":         "✗",
		"check":     "✓",
		"calendar":  "▦",
		"briefcase": "▣",
	}, DefaultIcon)
}

func (l *NamedLookup) Resolve(name string) Icon {
	if icon, ok := l.icons[strings.ToLower(strings.TrimSpace(name))]; ok {
		return icon
	}
	return l.fallback
}

// DirectReference treats the stored value as the glyph itself.
type DirectReference struct {
	Fallback Icon
}

func (d DirectReference) Resolve(name string) Icon {
	if strings.TrimSpace(name) != "" {
		return Icon(name)
	}
	if d.Fallback != "" {
		return d.Fallback
	}
	return DefaultIcon
}
