// Package audit generates many symbol tables and measures how well they hold the trick's
// guarantees: every multiple of 9 shows the magic symbol, decoys stay within the policy
// bounds, and the randomness doesn't give the pattern away.
package audit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/janpfeifer/GoMentalist/internal/trick"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"k8s.io/klog/v2"
)

// MaxTrials limits a single audit run.
const MaxTrials = 10_000_000

// Options of an audit run.
type Options struct {
	Trials  int
	Palette trick.Palette
	Policy  trick.Policy

	// Sources provides one RandomSource per generated table. Defaults to trick.NewRandomSource.
	Sources trick.SourceFactory

	// ShowProgress displays a progress bar on stderr.
	ShowProgress bool
}

// Violations counts broken guarantees. All should be zero.
type Violations struct {
	Missing   int `yaml:"missing"    json:"missing"`    // Numbers without a symbol.
	Multiples int `yaml:"multiples"  json:"multiples"`  // Multiples of 9 not showing the magic symbol.
	PoolLeaks int `yaml:"pool_leaks" json:"pool_leaks"` // Non-magic, non-decoy numbers showing the magic symbol.
	Decoys    int `yaml:"decoys"     json:"decoys"`     // Tables whose decoy count is outside the policy bounds.
}

// Total number of violations.
func (v Violations) Total() int {
	return v.Missing + v.Multiples + v.PoolLeaks + v.Decoys
}

// DecoyStat describes the decoys across all tables.
type DecoyStat struct {
	BoundLo      int         `yaml:"bound_lo"      json:"bound_lo"`
	BoundHi      int         `yaml:"bound_hi"      json:"bound_hi"`
	Min          int         `yaml:"min"           json:"min"`
	Max          int         `yaml:"max"           json:"max"`
	Mean         float64     `yaml:"mean"          json:"mean"`
	Std          float64     `yaml:"std"           json:"std"`
	Histogram    map[int]int `yaml:"histogram"     json:"histogram"`
	PageCoverage float64     `yaml:"page_coverage" json:"page_coverage"` // Mean fraction of pages with at least one decoy.
}

// UniformityStat is a chi-square goodness of fit against the uniform distribution.
type UniformityStat struct {
	Categories int     `yaml:"categories" json:"categories"`
	ChiSquare  float64 `yaml:"chi_square" json:"chi_square"`
	PValue     float64 `yaml:"p_value"    json:"p_value"`
}

// Report of an audit run.
type Report struct {
	Trials      int            `yaml:"trials"       json:"trials"`
	PaletteSize int            `yaml:"palette_size" json:"palette_size"`
	Policy      trick.Policy   `yaml:"policy"       json:"policy"`
	Violations  Violations     `yaml:"violations"   json:"violations"`
	Decoys      DecoyStat      `yaml:"decoys"       json:"decoys"`
	Magic       UniformityStat `yaml:"magic"        json:"magic"`       // Choice of the magic symbol over the palette.
	Distractors UniformityStat `yaml:"distractors"  json:"distractors"` // Symbols drawn for the non-magic numbers.

	// MagicChangeRate is the fraction of consecutive tables with a different magic symbol,
	// what a user restarting the trick would notice.
	MagicChangeRate float64       `yaml:"magic_change_rate" json:"magic_change_rate"`
	Elapsed         time.Duration `yaml:"elapsed"           json:"elapsed"`
}

// OK reports whether no guarantee was broken.
func (r *Report) OK() bool {
	return r.Violations.Total() == 0
}

// Run generates opts.Trials tables and collects the report.
func Run(opts Options) (*Report, error) {
	if opts.Trials < 1 || opts.Trials > MaxTrials {
		return nil, fmt.Errorf("trials must be between 1 and %d, got %d", MaxTrials, opts.Trials)
	}
	if err := opts.Palette.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Policy.Validate(); err != nil {
		return nil, err
	}
	sources := opts.Sources
	if sources == nil {
		sources = trick.NewRandomSource
	}

	lo, hi := opts.Policy.Decoys.Bounds()
	r := &Report{
		Trials:      opts.Trials,
		PaletteSize: len(opts.Palette),
		Policy:      opts.Policy,
		Decoys: DecoyStat{
			BoundLo:   lo,
			BoundHi:   hi,
			Min:       trick.TableSize,
			Histogram: make(map[int]int),
		},
	}
	index := make(map[trick.Symbol]int, len(opts.Palette))
	for i, s := range opts.Palette {
		index[s] = i
	}
	magicCounts := make([]float64, len(opts.Palette))
	distractorCounts := make([]float64, len(opts.Palette))
	decoyCounts := make([]float64, 0, opts.Trials)
	var coverage float64
	var previous trick.Symbol
	changes := 0

	bar := pb.New(opts.Trials)
	if !opts.ShowProgress {
		bar.SetWriter(io.Discard)
	} else {
		bar.SetWriter(os.Stderr)
	}
	bar.Start()
	start := time.Now()
	for trial := range opts.Trials {
		table, err := trick.Generate(opts.Palette, sources(), opts.Policy)
		if err != nil {
			bar.Finish()
			return nil, fmt.Errorf("trial %d: %w", trial, err)
		}
		magic := table.Magic()
		magicCounts[index[magic]]++
		if trial > 0 && magic != previous {
			changes++
		}
		previous = magic

		numDecoys := 0
		pages := make(map[int]bool)
		for n := range trick.TableSize {
			s, ok := table.Lookup(n)
			switch {
			case !ok || s == "":
				r.Violations.Missing++
			case table.IsMagicPosition(n):
				if s != magic {
					r.Violations.Multiples++
				}
			case table.IsDecoy(n):
				numDecoys++
				pages[n/trick.DecoyPageSize] = true
			case s == magic:
				r.Violations.PoolLeaks++
			default:
				distractorCounts[index[s]]++
			}
		}
		if numDecoys < lo || numDecoys > hi {
			r.Violations.Decoys++
		}
		r.Decoys.Histogram[numDecoys]++
		r.Decoys.Min = min(r.Decoys.Min, numDecoys)
		r.Decoys.Max = max(r.Decoys.Max, numDecoys)
		decoyCounts = append(decoyCounts, float64(numDecoys))
		coverage += float64(len(pages)) / float64(trick.TableSize/trick.DecoyPageSize)
		bar.Increment()
	}
	r.Elapsed = time.Since(start)
	bar.Finish()

	r.Decoys.Mean, r.Decoys.Std = stat.MeanStdDev(decoyCounts, nil)
	if opts.Trials < 2 {
		r.Decoys.Std = 0
	}
	r.Decoys.PageCoverage = coverage / float64(opts.Trials)
	r.Magic = uniformity(magicCounts)
	r.Distractors = uniformity(distractorCounts)
	if opts.Trials > 1 {
		r.MagicChangeRate = float64(changes) / float64(opts.Trials-1)
	}
	klog.V(1).Infof("audit: %d trials in %s, %d violations", r.Trials, r.Elapsed, r.Violations.Total())
	return r, nil
}

// uniformity runs Pearson's chi-square test of the observed counts against equal expected counts.
func uniformity(observed []float64) UniformityStat {
	var total float64
	for _, c := range observed {
		total += c
	}
	u := UniformityStat{Categories: len(observed), PValue: 1}
	if total == 0 || len(observed) < 2 {
		return u
	}
	expected := make([]float64, len(observed))
	for i := range expected {
		expected[i] = total / float64(len(observed))
	}
	u.ChiSquare = stat.ChiSquare(observed, expected)
	u.PValue = distuv.ChiSquared{K: float64(len(observed) - 1)}.Survival(u.ChiSquare)
	return u
}

// ErrViolations is returned by Check when a report has broken guarantees.
var ErrViolations = errors.New("audit found violations")

// Check returns ErrViolations (wrapped with the counts) if the report is not OK.
func Check(r *Report) error {
	if r.OK() {
		return nil
	}
	v := r.Violations
	return fmt.Errorf("%w: missing=%d multiples=%d pool_leaks=%d decoys=%d", ErrViolations, v.Missing, v.Multiples, v.PoolLeaks, v.Decoys)
}
