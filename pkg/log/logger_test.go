package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetLevel(Notice)

	logger := New("test")

	tests := []struct {
		name    string
		level   Level
		log     func()
		visible bool
	}{
		{"debug hidden at notice", Notice, func() { logger.Debug("debug-line") }, false},
		{"info hidden at notice", Notice, func() { logger.Info("info-line") }, false},
		{"notice shown at notice", Notice, func() { logger.Notice("notice-line") }, true},
		{"info shown at info", Info, func() { logger.Infof("%s-line", "info") }, true},
		{"debug shown at debug", Debug, func() { logger.Debugf("%s-line", "debug") }, true},
		{"warning hidden at error", Error, func() { logger.Warning("warning-line") }, false},
		{"error shown at error", Error, func() { logger.Errorf("%s-line", "error") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			SetLevel(tt.level)
			tt.log()

			got := buf.Len() > 0
			if got != tt.visible {
				t.Errorf("Expected visible=%v, got output %q", tt.visible, buf.String())
			}
			if got && !strings.Contains(buf.String(), "[test]") {
				t.Errorf("Expected module name in output, got %q", buf.String())
			}
		})
	}
}

func TestSetSinkKeepsLevel(t *testing.T) {
	var first, second bytes.Buffer
	SetSink(&first)
	SetLevel(Debug)
	defer SetLevel(Notice)

	SetSink(&second)
	New("sink").Debug("still-visible")

	if !strings.Contains(second.String(), "still-visible") {
		t.Errorf("Expected debug output after switching sink, got %q", second.String())
	}
	if first.Len() != 0 {
		t.Errorf("Old sink should not receive output, got %q", first.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", Debug, false},
		{"INFO", Info, false},
		{"notice", Notice, false},
		{"warning", Warning, false},
		{"error", Error, false},
		{"verbose", Notice, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
