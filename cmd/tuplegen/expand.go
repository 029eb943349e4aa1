package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tuplegen/internal/diag"
	"tuplegen/internal/diagfmt"
	"tuplegen/internal/driver"
	"tuplegen/internal/observ"
	"tuplegen/internal/source"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <file.rs|directory>...",
	Short: "Expand #[impl_for_tuples] attributes",
	Long: `Expand every #[impl_for_tuples(N)] attribute in the given Rust files or in all
*.rs files under the given directories. A single file is printed to stdout
unless --write or --out-dir is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().Bool("stdout", false, "print expanded sources to stdout")
	expandCmd.Flags().String("out-dir", "", "write expanded sources under this directory")
	expandCmd.Flags().Bool("write", false, "rewrite files in place")
	expandCmd.Flags().String("format", "text", "diagnostics format (text|json|short)")
	expandCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	expandCmd.Flags().Bool("cache", false, "reuse expansions from the on-disk cache")
	expandCmd.Flags().Bool("fullpath", false, "emit absolute file paths in diagnostics")
}

type outputMode uint8

const (
	outputStdout outputMode = iota
	outputInPlace
	outputDir
)

// errExpansionFailed is returned after diagnostics were printed.
var errExpansionFailed = errors.New("expansion finished with errors")

func runExpand(cmd *cobra.Command, args []string) error {
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	inPlace, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if format != "text" && format != "json" && format != "short" {
		return fmt.Errorf("unknown format: %s", format)
	}

	mode, err := resolveOutputMode(args, toStdout, inPlace, outDir)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	session, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
		}
	}()
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := driver.Options{
		Config:         cfg,
		MaxDiagnostics: cfg.Diagnostics.Max,
		Jobs:           jobs,
		Logger:         logger,
		Timings:        showTimings,
	}
	if useCache {
		cache, err := driver.OpenDiskCache("tuplegen")
		if err != nil {
			logger.Warnw("disk cache unavailable", "error", err)
		} else {
			opts.Cache = cache
		}
	}

	fileSet, results, err := driver.ExpandPaths(cmd.Context(), args, opts)
	if err != nil {
		return err
	}

	root := ""
	if mode == outputDir && len(args) == 1 {
		if st, err := os.Stat(args[0]); err == nil && st.IsDir() {
			root = args[0]
		}
	}

	var (
		all      = diag.NewBag(0)
		timing   observ.Report
		expanded int
		written  int
	)
	for _, res := range results {
		all.Merge(res.Bag)
		timing.Add(res.Timing)
		for _, inv := range res.Invocations {
			if inv.OK {
				expanded++
			}
		}
		if res.FileID == source.NoFile {
			continue
		}
		switch mode {
		case outputStdout:
			if _, err := cmd.OutOrStdout().Write(res.Output); err != nil {
				return err
			}
		case outputInPlace:
			if !res.Changed {
				continue
			}
			if err := driver.WriteResult(res, res.Path); err != nil {
				return err
			}
			written++
		case outputDir:
			target, err := driver.TargetPath(res.Path, root, outDir)
			if err != nil {
				return err
			}
			if err := driver.WriteResult(res, target); err != nil {
				return err
			}
			written++
		}
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	if err := printDiagnostics(cmd, all, fileSet, format, pathMode, cfg.Diagnostics.Max); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if showTimings {
		fmt.Fprint(stderr, timing.Summary())
	}
	if !isQuiet(cmd) && mode != outputStdout {
		fmt.Fprintf(stderr, "expanded %d invocation(s) in %d file(s), wrote %d\n", expanded, len(results), written)
	}
	if all.HasErrors() {
		return errExpansionFailed
	}
	return nil
}

func resolveOutputMode(args []string, toStdout, inPlace bool, outDir string) (outputMode, error) {
	set := 0
	for _, on := range []bool{toStdout, inPlace, outDir != ""} {
		if on {
			set++
		}
	}
	if set > 1 {
		return 0, errors.New("--stdout, --write and --out-dir are mutually exclusive")
	}
	switch {
	case inPlace:
		return outputInPlace, nil
	case outDir != "":
		return outputDir, nil
	case toStdout:
		return outputStdout, nil
	}
	if len(args) == 1 {
		if st, err := os.Stat(args[0]); err == nil && !st.IsDir() {
			return outputStdout, nil
		}
	}
	return 0, errors.New("several inputs need --write, --out-dir or --stdout")
}

func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, format string, pathMode diagfmt.PathMode, limit int) error {
	if bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	var out io.Writer = cmd.ErrOrStderr()
	switch format {
	case "short":
		_, err := fmt.Fprintln(out, diag.FormatShort(bag.Items(), fs, true))
		return err
	case "json":
		return diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			Max:              limit,
			IncludeNotes:     true,
		})
	default:
		color, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
			Color:     color,
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: true,
			Max:       limit,
		})
		return nil
	}
}
