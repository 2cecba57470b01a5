package engine

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mbeaumont/dircomp/pkg/diff"
	"github.com/mbeaumont/dircomp/pkg/filter"
	"github.com/mbeaumont/dircomp/pkg/models"
	"github.com/mbeaumont/dircomp/pkg/scan"
)

// Options configures a comparison run.
type Options struct {
	RunID     string
	LeftRoot  string
	RightRoot string
	Filter    *filter.Filter

	// Workers bounds the per-file comparison pool; <1 means NumCPU
	Workers int

	// Caps forwarded to the differ; zero means defaults
	MaxFileSize  int64
	MaxDiffLines int

	Logger zerolog.Logger

	// OnCompareStart, if set, is called once with the number of common
	// files before the per-file comparisons begin
	OnCompareStart func(totalFiles int)

	// OnProgress, if set, is called after each common-file comparison
	// completes. It may be called from multiple goroutines.
	OnProgress func(completed, total int)
}

// Engine drives a comparison run: scan both roots, reconcile the path
// sets, diff every common pair, and assemble the report.
type Engine struct {
	opts    Options
	scanner *scan.Scanner
	differ  *diff.Differ
}

// New creates an engine for the given options.
func New(opts Options) *Engine {
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}
	return &Engine{
		opts:    opts,
		scanner: scan.New(opts.Filter, opts.Logger),
		differ:  diff.NewDiffer(opts.MaxFileSize, opts.MaxDiffLines, opts.Logger),
	}
}

// Run executes the comparison. A failed root scan is fatal and produces
// no report; per-file problems are absorbed into the report as
// UnreadableBinary results.
func (e *Engine) Run(ctx context.Context) (*models.Report, error) {
	report := &models.Report{
		RunID:     e.opts.RunID,
		LeftRoot:  e.opts.LeftRoot,
		RightRoot: e.opts.RightRoot,
		StartTime: time.Now(),
	}

	e.opts.Logger.Info().
		Str("run_id", e.opts.RunID).
		Str("left", e.opts.LeftRoot).
		Str("right", e.opts.RightRoot).
		Int("workers", e.opts.Workers).
		Msg("starting comparison")

	leftSet, rightSet, err := e.scanBoth(ctx)
	if err != nil {
		return nil, err
	}

	part := Reconcile(leftSet, rightSet)
	e.opts.Logger.Info().
		Int("only_left", len(part.OnlyLeft)).
		Int("only_right", len(part.OnlyRight)).
		Int("common", len(part.Common)).
		Msg("path sets reconciled")

	if e.opts.OnCompareStart != nil {
		e.opts.OnCompareStart(len(part.Common))
	}

	results, err := e.compareCommon(ctx, leftSet, rightSet, part.Common)
	if err != nil {
		return nil, err
	}

	report.OnlyLeft = part.OnlyLeft
	report.OnlyRight = part.OnlyRight
	report.Files = results
	report.Stats = buildStats(leftSet, rightSet, part, results)
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	e.opts.Logger.Info().
		Dur("duration", report.Duration).
		Int("identical", report.Stats.Identical).
		Int("different", report.Stats.Different).
		Int("unreadable", report.Stats.Unreadable).
		Msg("comparison complete")

	return report, nil
}

// scanBoth runs the two independent root scans concurrently.
func (e *Engine) scanBoth(ctx context.Context) (*models.FileSet, *models.FileSet, error) {
	var (
		leftSet, rightSet *models.FileSet
		leftErr, rightErr error
		wg                sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		leftSet, leftErr = e.scanner.Scan(ctx, e.opts.LeftRoot)
	}()
	go func() {
		defer wg.Done()
		rightSet, rightErr = e.scanner.Scan(ctx, e.opts.RightRoot)
	}()
	wg.Wait()

	if leftErr != nil {
		return nil, nil, leftErr
	}
	if rightErr != nil {
		return nil, nil, rightErr
	}
	return leftSet, rightSet, nil
}

// compareCommon fans the per-file comparisons out across the worker
// pool. Each goroutine writes only its own slot of the pre-sized result
// slice, so the ordering is deterministic without a merge step.
func (e *Engine) compareCommon(ctx context.Context, leftSet, rightSet *models.FileSet, common []string) ([]models.FileComparisonResult, error) {
	results := make([]models.FileComparisonResult, len(common))
	semaphore := make(chan struct{}, e.opts.Workers)
	var wg sync.WaitGroup
	var completed atomic.Int32

	total := len(common)
	for i, relPath := range common {
		// Cancellation is cooperative: checked between files, never
		// mid-diff
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int, rel string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			leftPath := filepath.Join(leftSet.Root(), filepath.FromSlash(rel))
			rightPath := filepath.Join(rightSet.Root(), filepath.FromSlash(rel))
			results[idx] = e.differ.CompareFiles(leftPath, rightPath, rel)

			if e.opts.OnProgress != nil {
				e.opts.OnProgress(int(completed.Add(1)), total)
			}
		}(i, relPath)
	}

	wg.Wait()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return results, nil
}

func buildStats(leftSet, rightSet *models.FileSet, part Partition, results []models.FileComparisonResult) models.Statistics {
	stats := models.Statistics{
		LeftFilesScanned:  leftSet.Len(),
		RightFilesScanned: rightSet.Len(),
		OnlyLeft:          len(part.OnlyLeft),
		OnlyRight:         len(part.OnlyRight),
		Common:            len(part.Common),
	}

	for _, res := range results {
		switch res.Status {
		case models.StatusIdentical:
			stats.Identical++
		case models.StatusDifferent:
			stats.Different++
		case models.StatusUnreadableBinary:
			stats.Unreadable++
		}
	}
	return stats
}
