// Package trick holds the logic of the "mind reading" presentation: the symbol table
// where every multiple of 9 shares the same magic symbol, and the session that walks the
// user through the five steps of the trick.
//
// The package has no UI dependencies, so it can be used both by the WASM frontend and by
// native tools such as the auditor.
package trick

// Version of the presentation.
// Bumping this number will eventually make clients reload the WASM.
//
// If you set this to an empty string, a random version number will be
// used, and force the reload of the WASM on every restart.
// This is useful during development.
var Version = "v0.1.0"

const (
	// TableSize is the number of results shown in the table: 0 to 99.
	TableSize = 100

	// Modulus whose multiples all map to the magic symbol.
	Modulus = 9

	// DecoyPageSize is the block of consecutive numbers over which decoys are spread.
	DecoyPageSize = 10

	// DisplayPageSize is how many numbers the lookup step shows at a time.
	DisplayPageSize = 20
)
