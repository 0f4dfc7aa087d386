package trick

import (
	"errors"
	"slices"
)

// RandomSource is the source of uniform randomness used to build a table.
// *math/rand/v2.Rand implements it.
type RandomSource interface {
	// IntN returns a uniform random number in [0, n). It may panic if n <= 0.
	IntN(n int) int
}

// Entry is one number of the table with its symbol.
type Entry struct {
	Number int
	Symbol Symbol
}

// SymbolTable maps every result from 0 to 99 to a symbol. All multiples of 9 (and the decoys)
// map to the same magic symbol.
//
// A SymbolTable is immutable once generated.
type SymbolTable struct {
	magic       Symbol
	pool        Palette
	entries     [TableSize]Symbol
	decoys      [TableSize]bool
	includeZero bool
}

// Generate builds a new SymbolTable:
//
//  1. The palette is shuffled, and the first symbol becomes the magic symbol.
//  2. The remaining symbols form the distraction pool.
//  3. Multiples of 9 (0 included only if policy.IncludeZero) and the decoys chosen
//     according to policy.Decoys get the magic symbol.
//  4. Every other number gets a symbol drawn uniformly, with replacement, from the pool.
//
// It returns an *InvalidPaletteError or an *InvalidPolicyError if the inputs can't
// produce a valid table.
func Generate(palette Palette, rng RandomSource, policy Policy) (*SymbolTable, error) {
	if err := palette.Validate(); err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("trick.Generate: nil random source")
	}

	shuffled := palette.shuffled(rng)
	t := &SymbolTable{
		magic:       shuffled[0],
		pool:        shuffled[1:],
		includeZero: policy.IncludeZero,
	}
	if len(t.pool) == 0 {
		// Unreachable after Validate, kept so a table is never built without distractors.
		return nil, &InvalidPaletteError{Size: len(palette), Reason: "empty distraction pool"}
	}

	for _, n := range policy.Decoys.chooseDecoys(rng, policy.IncludeZero) {
		t.decoys[n] = true
	}
	for n := range TableSize {
		if isMagicPosition(n, t.includeZero) || t.decoys[n] {
			t.entries[n] = t.magic
		} else {
			t.entries[n] = t.pool[rng.IntN(len(t.pool))]
		}
	}
	return t, nil
}

// Magic returns the symbol all multiples of 9 map to.
func (t *SymbolTable) Magic() Symbol { return t.magic }

// Len is the number of entries, always TableSize.
func (t *SymbolTable) Len() int { return TableSize }

// Lookup returns the symbol for n, and false if n is outside [0, TableSize).
func (t *SymbolTable) Lookup(n int) (Symbol, bool) {
	if n < 0 || n >= TableSize {
		return "", false
	}
	return t.entries[n], true
}

// IsDecoy reports whether n is a non-multiple of 9 deliberately given the magic symbol.
func (t *SymbolTable) IsDecoy(n int) bool {
	return n >= 0 && n < TableSize && t.decoys[n]
}

// Decoys returns the decoy positions in increasing order.
func (t *SymbolTable) Decoys() []int {
	var out []int
	for n, isDecoy := range t.decoys {
		if isDecoy {
			out = append(out, n)
		}
	}
	return out
}

// IsMagicPosition reports whether n is one of the multiples of 9 in this table, that is,
// the numbers the trick guarantees will show the magic symbol.
func (t *SymbolTable) IsMagicPosition(n int) bool {
	return n >= 0 && n < TableSize && isMagicPosition(n, t.includeZero)
}

// IncludesZero reports whether 0 was treated as a multiple of 9.
func (t *SymbolTable) IncludesZero() bool { return t.includeZero }

// DistractionPool returns a copy of the symbols used for the non-magic numbers.
func (t *SymbolTable) DistractionPool() Palette { return slices.Clone(t.pool) }

// NumPages returns how many pages of pageSize numbers are needed to show the table.
func (t *SymbolTable) NumPages(pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (TableSize + pageSize - 1) / pageSize
}

// Page returns the entries of the given 0-based page. It returns nil for pages out of range.
func (t *SymbolTable) Page(page, pageSize int) []Entry {
	if pageSize <= 0 || page < 0 || page >= t.NumPages(pageSize) {
		return nil
	}
	first := page * pageSize
	last := min(first+pageSize, TableSize)
	entries := make([]Entry, 0, last-first)
	for n := first; n < last; n++ {
		entries = append(entries, Entry{Number: n, Symbol: t.entries[n]})
	}
	return entries
}

// Map returns a copy of the table as a map from number to symbol.
func (t *SymbolTable) Map() map[int]Symbol {
	m := make(map[int]Symbol, TableSize)
	for n, s := range t.entries {
		m[n] = s
	}
	return m
}
