// Package icon provides a multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, or plain ASCII depending on user preference.
package icon

import (
	"github.com/simgunz/cinedual/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji string
	nerd  string
	plain string
}

// Get retrieves the visual representation for the receiver based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

// Icon identifies a symbol in the global registry.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Warn
	Clock
	Movie
	Speaker
)

var icons = map[Icon]*iconDef{
	Success: {emoji: "✅", nerd: "", plain: "[ok]"},
	Fail:    {emoji: "❌", nerd: "", plain: "[fail]"},
	Warn:    {emoji: "⚠️", nerd: "", plain: "[warn]"},
	Clock:   {emoji: "⏱️", nerd: "", plain: "[delay]"},
	Movie:   {emoji: "🎬", nerd: "", plain: "[video]"},
	Speaker: {emoji: "🔊", nerd: "", plain: "[audio]"},
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	return icons[i].Get()
}
