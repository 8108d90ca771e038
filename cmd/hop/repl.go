package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hop/internal/driver"
	"hop/internal/version"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive hop session",
	Args:  cobra.NoArgs,
	RunE:  runREPL,
}

func runREPL(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd, ".")
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, settings.manifest)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := driver.REPLOptions{
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
		VM:     settings.vmOptions(),
	}
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return driver.REPL(cmd.Context(), opts)
	}

	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	// Terminal переводит \n в \r\n, поэтому весь вывод идёт через него
	terminal := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, driver.DefaultPrompt)
	if w, h, err := term.GetSize(fd); err == nil {
		_ = terminal.SetSize(w, h)
	}
	opts.Lines = terminal
	opts.Out = terminal
	opts.ErrOut = terminal
	if !settings.quiet {
		fprintf(terminal, "hop %s (Ctrl-D để thoát)\n", version.Colored(settings.color))
	}
	return driver.REPL(cmd.Context(), opts)
}
