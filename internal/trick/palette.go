package trick

import "fmt"

// Symbol is an opaque, printable token shown in the table (an emoji by default).
type Symbol string

// Palette is the set of symbols a table can be built from. All entries must be distinct.
type Palette []Symbol

// MinPaletteSize is one magic symbol plus at least one distractor.
const MinPaletteSize = 2

// DefaultPalette is the 40 symbols used by the presentation.
var DefaultPalette = Palette{
	"🌟", "🌙", "☀️", "❤️", "🔥", "💎", "🚀", "🎉", "💡", "🔑",
	"👑", "🎩", "🔮", "✨", "🍀", "🎯", "⚓", "🎁", "🎈", "🎲",
	"🧩", "🎨", "🎸", "🏆", "🥇", "🌍", "🧭", "⏳", "⚡", "💯",
	"🦋", "🌺", "🎭", "🎪", "🎵", "🎹", "🎺", "🎻", "🌈", "⭐",
}

// InvalidPaletteError is returned when a palette can't be used to build a table.
type InvalidPaletteError struct {
	Size   int
	Reason string
}

func (e *InvalidPaletteError) Error() string {
	return fmt.Sprintf("invalid palette of %d symbols: %s", e.Size, e.Reason)
}

// Validate checks the palette has at least MinPaletteSize distinct, non-empty symbols.
func (p Palette) Validate() error {
	if len(p) < MinPaletteSize {
		return &InvalidPaletteError{Size: len(p), Reason: fmt.Sprintf("need at least %d symbols", MinPaletteSize)}
	}
	seen := make(map[Symbol]bool, len(p))
	for i, s := range p {
		if s == "" {
			return &InvalidPaletteError{Size: len(p), Reason: fmt.Sprintf("symbol #%d is empty", i)}
		}
		if seen[s] {
			return &InvalidPaletteError{Size: len(p), Reason: fmt.Sprintf("symbol %q is repeated", s)}
		}
		seen[s] = true
	}
	return nil
}

// Contains reports whether s is part of the palette.
func (p Palette) Contains(s Symbol) bool {
	for _, ps := range p {
		if ps == s {
			return true
		}
	}
	return false
}

// NewPalette converts plain strings into a Palette. It doesn't validate it.
func NewPalette(symbols []string) Palette {
	p := make(Palette, 0, len(symbols))
	for _, s := range symbols {
		p = append(p, Symbol(s))
	}
	return p
}

// Strings returns the palette as plain strings, e.g. for serialization.
func (p Palette) Strings() []string {
	out := make([]string, 0, len(p))
	for _, s := range p {
		out = append(out, string(s))
	}
	return out
}

// shuffled returns a random permutation of the palette (Fisher–Yates), leaving p untouched.
func (p Palette) shuffled(rng RandomSource) Palette {
	out := make(Palette, len(p))
	copy(out, p)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
