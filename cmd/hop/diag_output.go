package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"hop/internal/diag"
	"hop/internal/diagfmt"
	"hop/internal/source"
	"hop/internal/version"
)

const diagFormatUsage = "diagnostic format (short|pretty|json|sarif)"

func checkDiagFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "short", "pretty", "json", "sarif":
		return format, nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

// printDiagnostics renders bag in the chosen format. short and pretty go to
// stderr; json and sarif are data and go to stdout.
func printDiagnostics(format string, bag *diag.Bag, fs *source.FileSet, colored bool) error {
	if bag == nil || bag.Len() == 0 && (format == "short" || format == "pretty") {
		return nil
	}
	bag.Sort()
	var err error
	switch format {
	case "short":
		err = diagfmt.Short(os.Stderr, bag.Items(), fs)
	case "pretty":
		err = diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:     colored,
			Context:   2,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
		})
	case "json":
		err = diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
	case "sarif":
		err = diagfmt.Sarif(os.Stdout, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "hop",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	default:
		err = fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	return nil
}

func fprintf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
