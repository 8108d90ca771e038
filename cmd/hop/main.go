package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hop/internal/driver"
	"hop/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "hop [file.hop]",
	Short: "Hop scripting language interpreter",
	Long: `Hop runs scripts written with Vietnamese keywords.
With a file argument it runs the script; without one it starts a REPL.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runREPL(cmd, nil)
		}
		return runScript(cmd, args)
	},
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "write pipeline trace to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson|chrome)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval")

	addProfileFlags(rootCmd)
	addRunFlags(rootCmd)
	rootCmd.PersistentPreRunE = startProfiling

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if perr := profSession.Stop(); perr != nil {
		fmt.Fprintf(os.Stderr, "hop: profile: %v\n", perr)
	}
	if err != nil {
		// diagnostics and runtime errors were already printed in the language's format
		if !errors.Is(err, driver.ErrCompile) && !errors.Is(err, driver.ErrRuntime) {
			fmt.Fprintf(os.Stderr, "hop: %v\n", err)
		}
		os.Exit(driver.ExitCode(err))
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
