package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hop/internal/driver"
	"hop/internal/project"
	"hop/internal/vm"
)

type commonSettings struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	manifest       *project.Manifest // nil outside a project
}

// loadSettings reads the global flags and the hop.toml nearest to startDir.
func loadSettings(cmd *cobra.Command, startDir string) (*commonSettings, error) {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	enabled, err := useColor(colorFlag, os.Stderr)
	if err != nil {
		return nil, err
	}

	manifest, _, err := project.LoadManifest(startDir)
	if err != nil {
		return nil, err
	}
	return &commonSettings{
		color:          enabled,
		quiet:          quiet,
		timings:        timings,
		maxDiagnostics: maxDiagnostics,
		manifest:       manifest,
	}, nil
}

// vmOptions applies the [vm] table of hop.toml.
func (s *commonSettings) vmOptions() vm.Options {
	opts := vm.Options{Out: os.Stdout, ErrOut: os.Stderr}
	if s.manifest != nil {
		opts.MaxFrames = s.manifest.Config.VM.MaxFrames
		opts.FrameSlots = s.manifest.Config.VM.FrameSlots
	}
	return opts
}

// openCache returns nil when caching is off by flag or by hop.toml.
func (s *commonSettings) openCache(noCache bool) (*driver.DiskCache, error) {
	if noCache {
		return nil, nil
	}
	if s.manifest == nil {
		return driver.OpenDiskCache("hop")
	}
	if !s.manifest.Config.CacheEnabled() {
		return nil, nil
	}
	if dir := s.manifest.CacheDir(); dir != "" {
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache("hop")
}

// baseDir is the directory display paths are relative to.
func (s *commonSettings) baseDir() string {
	if s.manifest != nil {
		return s.manifest.Root
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func dirOf(path string) string {
	if path == "" {
		return "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
