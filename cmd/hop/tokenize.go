package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hop/internal/diagfmt"
	"hop/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.hop",
	Short: "Tokenize a hop script",
	Long:  `Tokenize breaks down a hop script into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	settings, err := loadSettings(cmd, dirOf(filePath))
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, settings.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		if err := printDiagnostics("pretty", result.Bag, result.FileSet, settings.color); err != nil {
			return err
		}
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
