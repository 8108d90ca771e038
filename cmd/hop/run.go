package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hop/internal/driver"
	"hop/internal/observ"
	"hop/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.hop]",
	Short: "Compile and execute a hop script",
	Long: `Compile a hop script to bytecode and execute it on the VM.
Without a file the [run].main entry of hop.toml is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("vm-trace", false, "print every executed instruction to stderr")
	cmd.Flags().Bool("vm-trace-stack", false, "include frame slots in --vm-trace output")
	cmd.Flags().Bool("no-cache", false, "do not read or write the bytecode cache")
	cmd.Flags().String("format", "short", diagFormatUsage)
}

func runScript(cmd *cobra.Command, args []string) error {
	vmTrace, err := cmd.Flags().GetBool("vm-trace")
	if err != nil {
		return fmt.Errorf("failed to get vm-trace flag: %w", err)
	}
	vmTraceStack, err := cmd.Flags().GetBool("vm-trace-stack")
	if err != nil {
		return fmt.Errorf("failed to get vm-trace-stack flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := checkDiagFormat(formatFlag)
	if err != nil {
		return err
	}

	start := "."
	if len(args) == 1 {
		start = dirOf(args[0])
	}
	settings, err := loadSettings(cmd, start)
	if err != nil {
		return err
	}

	var filePath string
	switch {
	case len(args) == 1:
		filePath = args[0]
	case settings.manifest != nil:
		if filePath, err = settings.manifest.MainPath(); err != nil {
			return err
		}
	default:
		return errors.New("no script given and no hop.toml found")
	}

	cleanup, err := setupTracing(cmd, settings.manifest)
	if err != nil {
		return err
	}
	defer cleanup()

	cache, err := settings.openCache(noCache)
	if err != nil {
		// без кэша тоже можно работать
		if !settings.quiet {
			fprintf(os.Stderr, "hop: bytecode cache disabled: %v\n", err)
		}
		cache = nil
	}

	var timer *observ.Timer
	if settings.timings {
		timer = observ.NewTimer()
	}

	res, err := driver.Compile(cmd.Context(), filePath, driver.CompileOptions{
		MaxDiagnostics: settings.maxDiagnostics,
		BaseDir:        settings.baseDir(),
		Cache:          cache,
		Timer:          timer,
	})
	if res != nil && (err != nil || !settings.quiet) {
		if perr := printDiagnostics(format, res.Bag, res.FileSet, settings.color); perr != nil {
			return perr
		}
	}
	if err != nil {
		return err
	}

	vmOpts := settings.vmOptions()
	if vmTrace || vmTraceStack {
		vmOpts.Trace = vm.NewTracer(os.Stderr, vmTraceStack)
	}
	run, err := driver.Run(cmd.Context(), res.Script, driver.RunOptions{
		VM:        vmOpts,
		Timer:     timer,
		CrashDump: os.Stderr,
	})
	if settings.timings {
		printTimings(format, driver.NewTimingReport("run", res.File.Path, timer))
		printStageTimings(os.Stderr, res.Timings, res.Cached, run.Elapsed)
	}
	return err
}
