package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hop/internal/prof"
)

// profSession is stopped by main after the command returns, so profiles
// are written even when the script fails.
var profSession *prof.Session

func addProfileFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("cpuprofile", "", "write CPU profile to file")
	cmd.PersistentFlags().String("memprofile", "", "write heap profile to file on exit")
	cmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

func startProfiling(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if cfg.Mem, err = flags.GetString("memprofile"); err != nil {
		return fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	profSession, err = prof.Start(cfg)
	if err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	return nil
}
