// Package detector provides environment detection for log format selection.
package detector

import (
	"io"
	"os"

	"go.trai.ch/restore/internal/ui/output"
)

// LogFormat represents the rendering format of log records.
type LogFormat int

const (
	// FormatAuto detects the appropriate format.
	FormatAuto LogFormat = iota
	// FormatText forces the styled text handler.
	FormatText
	// FormatJSON forces one JSON object per record.
	FormatJSON
)

// DetectFormat returns the recommended log format for w. Logs written to a file, a
// pipe or a CI runner are JSON; an interactive terminal gets text.
func DetectFormat(w io.Writer) LogFormat {
	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !output.IsTerminal(w) || isCI {
		return FormatJSON
	}
	return FormatText
}

// ResolveFormat applies a user override to auto-detection.
// flag should be one of: "auto", "text", "json", or empty.
func ResolveFormat(autoDetected LogFormat, flag string) LogFormat {
	switch flag {
	case "text":
		return FormatText
	case "json":
		return FormatJSON
	default:
		return autoDetected
	}
}
