package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the bytecode cache",
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := loadSettings(cmd, ".")
		if err != nil {
			return err
		}
		cache, err := settings.openCache(false)
		if err != nil {
			return err
		}
		if cache == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "cache disabled by hop.toml")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
		return nil
	},
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := loadSettings(cmd, ".")
		if err != nil {
			return err
		}
		cache, err := settings.openCache(false)
		if err != nil || cache == nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clean %s: %w", cache.Dir(), err)
		}
		if !settings.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", cache.Dir())
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheDirCmd)
	cacheCmd.AddCommand(cacheCleanCmd)
}
