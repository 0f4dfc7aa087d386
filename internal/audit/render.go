package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/janpfeifer/GoMentalist/internal/trick"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

var lang = language.English

// Render writes a report in some format.
type Render interface {
	Write(w io.Writer, r *Report) error
}

// NewRender returns the render for the given format: "text", "yaml" or "json".
func NewRender(format string) (Render, error) {
	switch strings.ToLower(format) {
	case "", "text", "txt":
		return &TextRender{}, nil
	case "yaml", "yml":
		return &YAMLRender{}, nil
	case "json":
		return &JSONRender{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// JSONRender writes the report as JSON.
type JSONRender struct{}

func (jr *JSONRender) Write(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// YAMLRender writes the report as YAML.
type YAMLRender struct{}

func (yr *YAMLRender) Write(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(r)
}

// TextRender writes the report as a human-readable table.
type TextRender struct{}

func (tr *TextRender) Write(w io.Writer, r *Report) error {
	p := message.NewPrinter(lang)
	status := "OK"
	if !r.OK() {
		status = "FAILED"
	}
	decoys := r.Policy.Decoys
	policy := string(decoys.Mode)
	switch decoys.Mode {
	case trick.DecoysFixed:
		policy += p.Sprintf(" (%d)", decoys.Count)
	case trick.DecoysRange:
		policy += p.Sprintf(" (%d-%d)", decoys.Min, decoys.Max)
	}

	keys := []string{
		"Status", "Trials", "Palette", "Include Zero", "Decoy Policy",
		"Missing", "Multiples of 9", "Pool Leaks", "Decoy Bounds",
		"Decoys Min/Max", "Decoys Mean", "Page Coverage",
		"Magic χ² (p)", "Distractors χ² (p)", "Magic Change Rate", "Elapsed",
	}
	msg := map[string]string{
		"Status":             status,
		"Trials":             p.Sprintf("%d", r.Trials),
		"Palette":            p.Sprintf("%d symbols", r.PaletteSize),
		"Include Zero":       fmt.Sprint(r.Policy.IncludeZero),
		"Decoy Policy":       policy,
		"Missing":            p.Sprintf("%d", r.Violations.Missing),
		"Multiples of 9":     p.Sprintf("%d", r.Violations.Multiples),
		"Pool Leaks":         p.Sprintf("%d", r.Violations.PoolLeaks),
		"Decoy Bounds":       p.Sprintf("%d out of [%d, %d]", r.Violations.Decoys, r.Decoys.BoundLo, r.Decoys.BoundHi),
		"Decoys Min/Max":     p.Sprintf("%d / %d", r.Decoys.Min, r.Decoys.Max),
		"Decoys Mean":        p.Sprintf("%.3f ± %.3f", r.Decoys.Mean, r.Decoys.Std),
		"Page Coverage":      p.Sprintf("%.1f%%", 100*r.Decoys.PageCoverage),
		"Magic χ² (p)":       p.Sprintf("%.2f (%.4f)", r.Magic.ChiSquare, r.Magic.PValue),
		"Distractors χ² (p)": p.Sprintf("%.2f (%.4f)", r.Distractors.ChiSquare, r.Distractors.PValue),
		"Magic Change Rate":  p.Sprintf("%.2f%%", 100*r.MagicChangeRate),
		"Elapsed":            r.Elapsed.String(),
	}
	if _, err := io.WriteString(w, fmtTable("Symbol Table Audit", keys, msg)); err != nil {
		return err
	}

	hist := slices.Sorted(maps.Keys(r.Decoys.Histogram))
	histKeys := make([]string, 0, len(hist))
	histMsg := make(map[string]string, len(hist))
	for _, n := range hist {
		k := p.Sprintf("%d decoys", n)
		histKeys = append(histKeys, k)
		histMsg[k] = p.Sprintf("%d (%.1f%%)", r.Decoys.Histogram[n], 100*float64(r.Decoys.Histogram[n])/float64(r.Trials))
	}
	_, err := io.WriteString(w, fmtTable("Decoy Histogram", histKeys, histMsg))
	return err
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	maxKeyLen := runewidth.StringWidth(title)
	maxValLen := 0
	for _, k := range keys {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(msg[k]); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	fmt.Fprintf(&sb, "|%s%s%s|\n", blank(left), title, blank(right))
	sb.WriteString(divider)
	for _, k := range keys {
		fmt.Fprintf(&sb, "| %s | %s |\n",
			runewidth.FillRight(k, maxKeyLen-2), runewidth.FillRight(msg[k], maxValLen-2))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}

// WriteTable prints the symbol table in rows of columns numbers, aligned for wide symbols.
// With reveal set, magic positions are marked with "*" and decoys with "+".
func WriteTable(w io.Writer, table *trick.SymbolTable, columns int, reveal bool) error {
	if columns <= 0 {
		return fmt.Errorf("columns must be positive, got %d", columns)
	}
	const cellWidth = 6
	var sb strings.Builder
	for first := 0; first < table.Len(); first += columns {
		var numbers, symbols strings.Builder
		for n := first; n < min(first+columns, table.Len()); n++ {
			s, _ := table.Lookup(n)
			mark := " "
			if reveal {
				switch {
				case table.IsMagicPosition(n):
					mark = "*"
				case table.IsDecoy(n):
					mark = "+"
				}
			}
			numbers.WriteString(runewidth.FillLeft(fmt.Sprintf("%d%s", n, mark), cellWidth))
			symbols.WriteString(runewidth.FillLeft(string(s)+" ", cellWidth))
		}
		sb.WriteString(strings.TrimRight(numbers.String(), " ") + "\n")
		sb.WriteString(strings.TrimRight(symbols.String(), " ") + "\n\n")
	}
	if reveal {
		fmt.Fprintf(&sb, "magic symbol: %s   decoys: %v\n", table.Magic(), table.Decoys())
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
