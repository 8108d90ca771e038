package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hop/internal/buildpipeline"
	"hop/internal/driver"
	"hop/internal/observ"
	"hop/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Compile scripts without running them",
	Long: `Check compiles every .hop file under the given files and directories
and reports all diagnostics. Directories are searched recursively.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", diagFormatUsage)
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the bytecode cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := checkDiagFormat(formatFlag)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	start := "."
	if len(args) > 0 {
		start = dirOf(args[0])
	}
	settings, err := loadSettings(cmd, start)
	if err != nil {
		return err
	}
	targets := args
	if len(targets) == 0 {
		targets = []string{settings.baseDir()}
	}
	files, err := buildpipeline.CollectScripts(targets)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", buildpipeline.ScriptExt)
	}

	cleanup, err := setupTracing(cmd, settings.manifest)
	if err != nil {
		return err
	}
	defer cleanup()

	cache, err := settings.openCache(noCache)
	if err != nil {
		cache = nil
	}
	var timer *observ.Timer
	if settings.timings {
		timer = observ.NewTimer()
	}
	opts := driver.CheckOptions{
		Jobs:           jobs,
		MaxDiagnostics: settings.maxDiagnostics,
		BaseDir:        settings.baseDir(),
		Cache:          cache,
		Timer:          timer,
	}

	var result *driver.CheckResult
	if shouldUseTUI(mode) && !settings.quiet && format != "json" && format != "sarif" {
		displays := buildpipeline.DisplayPaths(files, opts.BaseDir)
		err = ui.RunWithProgress(os.Stdout, "hop check", displays, func(sink buildpipeline.ProgressSink) error {
			o := opts
			o.Progress = sink
			var cerr error
			result, cerr = driver.CheckFiles(cmd.Context(), files, o)
			return cerr
		})
	} else {
		result, err = driver.CheckFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	if perr := printDiagnostics(format, result.Diagnostics(settings.maxDiagnostics), result.FileSet, settings.color); perr != nil {
		return perr
	}
	if settings.timings {
		printTimings(format, driver.NewTimingReport("check", "", timer))
		for _, fc := range result.Files {
			fprintf(os.Stderr, "%s:\n", fc.Display)
			printStageTimings(os.Stderr, fc.Timings, fc.Cached, 0)
		}
	}
	errorsFound := result.ErrorCount()
	if !settings.quiet && format != "json" && format != "sarif" {
		fprintf(os.Stderr, "checked %d files, %d errors\n", len(result.Files), errorsFound)
	}
	if result.Failed() {
		return fmt.Errorf("%d errors: %w", errorsFound, driver.ErrCompile)
	}
	return nil
}
