// audit generates many symbol tables and reports whether they keep the trick's guarantees,
// and how random they look.
//
// Examples:
//
//	go run ./cmd/audit -trials=100000
//	go run ./cmd/audit -config=mentalist.yaml -format=yaml
//	go run ./cmd/audit -show -reveal -seed=7
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/janpfeifer/GoMentalist/internal/audit"
	"github.com/janpfeifer/GoMentalist/internal/config"
	"github.com/janpfeifer/GoMentalist/internal/trick"
	"k8s.io/klog/v2"
)

var (
	flagConfig   = flag.String("config", "", "YAML configuration file with palette and decoy policy")
	flagTrials   = flag.Int("trials", 10_000, "Number of tables to generate")
	flagSeed     = flag.Uint64("seed", 0, "Seed for reproducible runs (0 for random)")
	flagFormat   = flag.String("format", "text", "Report format: text, yaml or json")
	flagProgress = flag.Bool("progress", true, "Show a progress bar")
	flagShow     = flag.Bool("show", false, "Print one table instead of auditing")
	flagReveal   = flag.Bool("reveal", false, "With -show, mark multiples of 9 (*) and decoys (+)")
	flagColumns  = flag.Int("columns", trick.DecoyPageSize, "With -show, numbers per row")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	cfg, err := config.FromEnv(*flagConfig)
	if err != nil {
		klog.Exitf("Failed to load configuration: %v", err)
	}
	sources := trick.NewRandomSource
	if *flagSeed != 0 {
		sources = trick.SeededSourceFactory(*flagSeed)
	}

	if *flagShow {
		table, err := trick.Generate(cfg.SymbolPalette(), sources(), cfg.Policy)
		if err != nil {
			klog.Exitf("Failed to generate table: %v", err)
		}
		if err := audit.WriteTable(os.Stdout, table, *flagColumns, *flagReveal); err != nil {
			klog.Exitf("Failed to print table: %v", err)
		}
		return
	}

	render, err := audit.NewRender(*flagFormat)
	if err != nil {
		klog.Exitf("%v", err)
	}
	report, err := audit.Run(audit.Options{
		Trials:       *flagTrials,
		Palette:      cfg.SymbolPalette(),
		Policy:       cfg.Policy,
		Sources:      sources,
		ShowProgress: *flagProgress,
	})
	if err != nil {
		klog.Exitf("Audit failed: %v", err)
	}
	if err := render.Write(os.Stdout, report); err != nil {
		klog.Exitf("Failed to write report: %v", err)
	}
	if err := audit.Check(report); err != nil {
		if errors.Is(err, audit.ErrViolations) {
			fmt.Fprintln(os.Stderr, err)
			klog.Flush()
			os.Exit(1)
		}
		klog.Exitf("%v", err)
	}
}
