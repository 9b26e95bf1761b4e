package main

import (
	"fmt"
	"os"
	"strings"
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

// shouldUseTUI decides whether to show the progress UI. Output on stdout
// and single files never get one in auto mode.
func shouldUseTUI(mode uiMode, files int, stdout bool) bool {
	switch mode {
	case uiModeOn:
		return !stdout
	case uiModeOff:
		return false
	default:
		return !stdout && files > 1 && isTerminal(os.Stdout)
	}
}
