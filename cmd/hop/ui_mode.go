package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// useColor resolves --color for output going to f and applies it to
// fatih/color globally.
func useColor(value string, f *os.File) (bool, error) {
	var enabled bool
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		enabled = isTerminal(f) && os.Getenv("NO_COLOR") == ""
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
	color.NoColor = !enabled
	return enabled, nil
}
