package detector_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/restore/internal/adapters/detector"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		ciValue string
	}{
		{name: "CI=true", ciValue: "true"},
		{name: "CI=1", ciValue: "1"},
		{name: "CI=false", ciValue: "false"},
		{name: "No CI env var", ciValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ciValue)

			// A buffer is never a terminal.
			assert.Equal(t, detector.FormatJSON, detector.DetectFormat(&bytes.Buffer{}))
		})
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name     string
		auto     detector.LogFormat
		flag     string
		expected detector.LogFormat
	}{
		{"text override", detector.FormatJSON, "text", detector.FormatText},
		{"json override", detector.FormatText, "json", detector.FormatJSON},
		{"auto keeps detection", detector.FormatText, "auto", detector.FormatText},
		{"empty keeps detection", detector.FormatJSON, "", detector.FormatJSON},
		{"unknown keeps detection", detector.FormatText, "fancy", detector.FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveFormat(tt.auto, tt.flag))
		})
	}
}
