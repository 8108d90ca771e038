package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hop/internal/bytecode"
	"hop/internal/driver"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [flags] file.hop",
	Short: "Print the bytecode of a hop script",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisasm,
}

func init() {
	disasmCmd.Flags().String("format", "short", diagFormatUsage)
}

func runDisasm(cmd *cobra.Command, args []string) error {
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := checkDiagFormat(formatFlag)
	if err != nil {
		return err
	}
	settings, err := loadSettings(cmd, dirOf(args[0]))
	if err != nil {
		return err
	}

	// кэш не нужен, дизассемблер смотрит на свежий байткод
	res, err := driver.Compile(cmd.Context(), args[0], driver.CompileOptions{
		MaxDiagnostics: settings.maxDiagnostics,
		BaseDir:        settings.baseDir(),
	})
	if res != nil {
		if perr := printDiagnostics(format, res.Bag, res.FileSet, settings.color); perr != nil {
			return perr
		}
	}
	if err != nil {
		return err
	}
	return bytecode.Disassemble(os.Stdout, res.Script)
}
