package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bracelint/internal/checkfmt"
	"bracelint/internal/diag"
	"bracelint/internal/driver"
	"bracelint/internal/observ"
	"bracelint/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file|directory]",
	Short: "Check bracket balance in a file or directory",
	Long: `Check scans a JS/TS file, or every matching file under a directory,
and reports unmatched, mismatched, and unclosed brackets plus odd backtick
counts. The exit code is 1 when any file produced a diagnostic.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("skip-literals", false, "ignore brackets inside strings, comments, and template text")
	checkCmd.Flags().Bool("cache", false, "reuse scan results for unchanged files via the disk cache")
	checkCmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

// runCheck executes the "check" command: it resolves the configuration for
// the target path, scans it, renders the results in the chosen format, and
// exits non-zero when any diagnostic was produced.
func runCheck(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	skipLiterals, err := cmd.Flags().GetBool("skip-literals")
	if err != nil {
		return fmt.Errorf("failed to get skip-literals flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	configStart := target
	if !st.IsDir() {
		configStart = filepath.Dir(target)
	}
	cfg, _, err := loadConfigFor(configStart)
	if err != nil {
		return err
	}
	if skipLiterals {
		cfg.Scan.SkipLiterals = true
	}
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		cfg.Output.MaxDiagnostics = maxDiagnostics
	}

	opts := driver.CheckOptions{
		Config: cfg,
		Jobs:   jobs,
	}
	if useCache {
		cache, cacheErr := driver.OpenDiskCache("bracelint")
		if cacheErr != nil {
			return fmt.Errorf("failed to open disk cache: %w", cacheErr)
		}
		opts.Cache = cache
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}

	uiMode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var (
		fileSet *source.FileSet
		results []driver.CheckResult
	)
	if st.IsDir() {
		useTUI := shouldUseTUI(uiMode) && format == "pretty" && !quiet
		if useTUI {
			fileSet, results, err = runCheckDirWithUI(cmd.Context(), "checking "+target, target, opts)
		} else {
			fileSet, results, err = driver.CheckDir(cmd.Context(), target, opts)
		}
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
	} else {
		var res driver.CheckResult
		fileSet, res = driver.CheckFile(target, opts)
		results = []driver.CheckResult{res}
	}

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	pathMode := checkfmt.PathModeAuto
	if fullPath {
		pathMode = checkfmt.PathModeAbsolute
	}

	var timings *observ.Report
	if timer != nil {
		report := timer.Report()
		timings = &report
	}

	switch format {
	case "pretty":
		if !quiet || driver.TotalDiagnostics(results) > 0 {
			prettyOpts := checkfmt.PrettyOpts{
				Color:        useColor,
				PathMode:     pathMode,
				ContextWidth: cfg.Output.ContextWidth,
				ShowNotes:    withNotes,
				ShowCounts:   !quiet,
			}
			checkfmt.Pretty(os.Stdout, results, fileSet, prettyOpts)
		}
		if timer != nil {
			fmt.Fprint(os.Stderr, timer.Summary())
		}
	case "short":
		merged := driver.MergeBags(results)
		output := diag.FormatShortDiagnostics(merged.Items(), fileSet, withNotes)
		if output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "json":
		jsonOpts := checkfmt.JSONOpts{
			PathMode:     pathMode,
			ContextWidth: cfg.Output.ContextWidth,
			Timings:      timings,
		}
		if err := checkfmt.JSON(os.Stdout, results, fileSet, jsonOpts); err != nil {
			return fmt.Errorf("failed to format results: %w", err)
		}
	case "sarif":
		meta := checkfmt.SarifRunMeta{
			ToolName:       "bracelint",
			ToolVersion:    "0.1.0",
			InvocationArgs: os.Args,
		}
		if err := checkfmt.Sarif(os.Stdout, results, fileSet, meta); err != nil {
			return fmt.Errorf("failed to format results: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if driver.TotalDiagnostics(results) > 0 {
		// Suppress cobra usage output; the findings were already printed.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}
