package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mbeaumont/dircomp/internal/platform"
	"github.com/mbeaumont/dircomp/pkg/config"
	"github.com/mbeaumont/dircomp/pkg/engine"
	"github.com/mbeaumont/dircomp/pkg/filter"
	"github.com/mbeaumont/dircomp/pkg/output"
)

// CompareFlags holds comparison flag values
type CompareFlags struct {
	OnlyExt     []string
	IgnoreExt   []string
	IgnoreDirs  []string
	IgnoreFiles []string
	Output      string
	Format      string
	Workers     int
	NoProgress  bool
	MaxFileSize int64
}

var compareFlags CompareFlags

// AddCompareFlags adds the comparison flags to the root command
func AddCompareFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&compareFlags.OnlyExt, "only-ext", nil,
		"only compare these extensions (e.g. .py,.js)")
	cmd.Flags().StringSliceVar(&compareFlags.IgnoreExt, "ignore-ext", nil,
		"file extensions to ignore (e.g. .log,.tmp)")
	cmd.Flags().StringSliceVar(&compareFlags.IgnoreDirs, "ignore-dirs", nil,
		"directory names to ignore (e.g. node_modules,.git)")
	cmd.Flags().StringSliceVar(&compareFlags.IgnoreFiles, "ignore-files", nil,
		"file name patterns to ignore (e.g. *.log,package-lock.json)")
	cmd.Flags().StringVarP(&compareFlags.Output, "output", "o", "",
		"write detailed report to file (default: print to screen)")
	cmd.Flags().StringVar(&compareFlags.Format, "format", "",
		"output format: human, json")
	cmd.Flags().IntVar(&compareFlags.Workers, "workers", 0,
		"number of parallel file comparisons (default: CPU count)")
	cmd.Flags().BoolVar(&compareFlags.NoProgress, "no-progress", false,
		"disable the progress bar")
	cmd.Flags().Int64Var(&compareFlags.MaxFileSize, "max-file-size", 0,
		"largest file to diff line by line, in bytes")
}

// RunCompare executes the comparison between the two root arguments
func RunCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	leftRoot := platform.NormalizePath(args[0])
	rightRoot := platform.NormalizePath(args[1])
	if err := validateRoots(leftRoot, rightRoot); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Filter problems surface here, before any scanning begins
	pathFilter, err := filter.New(cfg.Filter)
	if err != nil {
		return err
	}

	logger, err := newRunLogger(cfg)
	if err != nil {
		return err
	}

	formatter := newFormatter(cfg)

	eng := engine.New(engine.Options{
		RunID:          uuid.New().String(),
		LeftRoot:       leftRoot,
		RightRoot:      rightRoot,
		Filter:         pathFilter,
		Workers:        cfg.Performance.MaxWorkers,
		MaxFileSize:    cfg.Performance.MaxFileSize,
		MaxDiffLines:   cfg.Performance.MaxDiffLines,
		Logger:         logger,
		OnCompareStart: formatter.Start,
		OnProgress:     formatter.FileCompared,
	})

	report, err := eng.Run(ctx)
	if err != nil {
		return err
	}

	// The bar must stop before anything else writes to the terminal
	if pf, ok := formatter.(*output.ProgressFormatter); ok {
		pf.StopBar()
	}

	if compareFlags.Output != "" {
		if err := output.WriteReportFile(report, compareFlags.Output, cfg.Output.Format); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else if cfg.Output.Format == "human" && !globalFlags.Quiet {
		if err := output.WriteReport(report, os.Stdout); err != nil {
			return err
		}
	}

	if err := formatter.Complete(report); err != nil {
		return err
	}

	if compareFlags.Output != "" && !globalFlags.Quiet {
		fmt.Printf("Detailed report: %s\n", compareFlags.Output)
	}

	// Differences are a normal result, not an error
	return nil
}

// newFormatter picks the console formatter for the run
func newFormatter(cfg *config.Config) output.Formatter {
	useColor := cfg.Output.Color &&
		!globalFlags.NoColor &&
		isatty.IsTerminal(os.Stdout.Fd())

	if cfg.Output.Format == "json" {
		return output.NewJSONFormatter(os.Stdout)
	}

	var w io.Writer = os.Stdout
	if globalFlags.Quiet {
		w = io.Discard
	}

	showProgress := cfg.Output.Progress &&
		!compareFlags.NoProgress &&
		!globalFlags.Quiet &&
		isatty.IsTerminal(os.Stdout.Fd())
	if showProgress {
		return output.NewProgressFormatter(w, useColor)
	}
	return output.NewHumanFormatter(w, useColor)
}
