package trick

import "fmt"

// DecoyMode selects how many decoys a table gets and where they go.
type DecoyMode string

const (
	// DecoysPerPage places exactly one decoy in every page of DecoyPageSize numbers.
	DecoysPerPage DecoyMode = "per_page"

	// DecoysFixed places exactly DecoyPolicy.Count decoys.
	DecoysFixed DecoyMode = "fixed"

	// DecoysRange places a uniformly random number of decoys in [DecoyPolicy.Min, DecoyPolicy.Max].
	DecoysRange DecoyMode = "range"
)

// MaxDecoys is the most decoys any policy may ask for. More than that and the magic
// symbol starts to stand out by frequency alone.
const MaxDecoys = 12

// InvalidPolicyError is returned for a Policy outside of the supported bounds.
type InvalidPolicyError struct {
	Reason string
}

func (e *InvalidPolicyError) Error() string {
	return "invalid policy: " + e.Reason
}

// DecoyPolicy configures the decoys: non-multiples of 9 that also show the magic symbol.
type DecoyPolicy struct {
	Mode  DecoyMode `yaml:"mode"            json:"mode"`
	Count int       `yaml:"count,omitempty" json:"count,omitempty"` // Used by DecoysFixed.
	Min   int       `yaml:"min,omitempty"   json:"min,omitempty"`   // Used by DecoysRange.
	Max   int       `yaml:"max,omitempty"   json:"max,omitempty"`   // Used by DecoysRange.
}

// Policy configures the table generation.
type Policy struct {
	// IncludeZero makes 0 a magic position. If false only 9, 18, ..., 99 are.
	IncludeZero bool        `yaml:"include_zero" json:"include_zero"`
	Decoys      DecoyPolicy `yaml:"decoys"       json:"decoys"`
}

// DefaultPolicy includes 0 as a multiple of 9 and places one decoy per page.
func DefaultPolicy() Policy {
	return Policy{
		IncludeZero: true,
		Decoys:      DecoyPolicy{Mode: DecoysPerPage},
	}
}

// Validate checks the policy bounds.
func (p Policy) Validate() error {
	return p.Decoys.Validate()
}

// Validate checks the decoy policy bounds.
func (d DecoyPolicy) Validate() error {
	switch d.Mode {
	case DecoysPerPage:
		return nil
	case DecoysFixed:
		if d.Count < 1 || d.Count > MaxDecoys {
			return &InvalidPolicyError{Reason: fmt.Sprintf("fixed decoy count must be in [1, %d], got %d", MaxDecoys, d.Count)}
		}
		return nil
	case DecoysRange:
		if d.Min < 1 || d.Max > MaxDecoys || d.Min > d.Max {
			return &InvalidPolicyError{Reason: fmt.Sprintf("decoy range must satisfy 1 <= min <= max <= %d, got [%d, %d]", MaxDecoys, d.Min, d.Max)}
		}
		return nil
	case "":
		return &InvalidPolicyError{Reason: "decoy mode not set"}
	default:
		return &InvalidPolicyError{Reason: fmt.Sprintf("unknown decoy mode %q", d.Mode)}
	}
}

// Bounds returns the minimum and maximum number of decoys a table gets under this policy.
// It assumes the policy is valid.
func (d DecoyPolicy) Bounds() (lo, hi int) {
	switch d.Mode {
	case DecoysFixed:
		return d.Count, d.Count
	case DecoysRange:
		return d.Min, d.Max
	default:
		return numDecoyPages, numDecoyPages
	}
}

const numDecoyPages = TableSize / DecoyPageSize

// isMagicPosition reports whether n must always show the magic symbol.
func isMagicPosition(n int, includeZero bool) bool {
	if n == 0 {
		return includeZero
	}
	return n%Modulus == 0
}

// decoyCandidates returns the non-magic positions of the given page.
func decoyCandidates(page int, includeZero bool) []int {
	candidates := make([]int, 0, DecoyPageSize)
	for n := page * DecoyPageSize; n < (page+1)*DecoyPageSize && n < TableSize; n++ {
		if !isMagicPosition(n, includeZero) {
			candidates = append(candidates, n)
		}
	}
	return candidates
}

// chooseDecoys picks the decoy positions. Decoys are spread over distinct pages first,
// and only share a page once every page already has one.
func (d DecoyPolicy) chooseDecoys(rng RandomSource, includeZero bool) []int {
	if d.Mode == DecoysPerPage {
		decoys := make([]int, 0, numDecoyPages)
		for page := range numDecoyPages {
			candidates := decoyCandidates(page, includeZero)
			decoys = append(decoys, candidates[rng.IntN(len(candidates))])
		}
		return decoys
	}

	count := d.Count
	if d.Mode == DecoysRange {
		count = d.Min + rng.IntN(d.Max-d.Min+1)
	}

	pages := make([]int, numDecoyPages)
	for i := range pages {
		pages[i] = i
	}
	for i := len(pages) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		pages[i], pages[j] = pages[j], pages[i]
	}

	taken := make(map[int]bool, count)
	decoys := make([]int, 0, count)
	for k := range count {
		page := pages[k%numDecoyPages]
		candidates := decoyCandidates(page, includeZero)
		free := candidates[:0]
		for _, n := range candidates {
			if !taken[n] {
				free = append(free, n)
			}
		}
		n := free[rng.IntN(len(free))]
		taken[n] = true
		decoys = append(decoys, n)
	}
	return decoys
}
