package renderer

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
	if config.Width != 800 || config.Height != 600 {
		t.Errorf("Expected 800x600, got %dx%d", config.Width, config.Height)
	}
	if config.TileWidth != 50 || config.TileHeight != 50 {
		t.Errorf("Expected 50x50 tiles, got %dx%d", config.TileWidth, config.TileHeight)
	}
	if config.SamplesPerPixel != 100 || config.MaxDepth != 50 || config.NumWorkers != 10 {
		t.Errorf("Unexpected sampling defaults: %+v", config)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "width"},
		{"negative height", func(c *Config) { c.Height = -1 }, "height"},
		{"zero tile width", func(c *Config) { c.TileWidth = 0 }, "tile width"},
		{"zero tile height", func(c *Config) { c.TileHeight = 0 }, "tile height"},
		{"zero samples", func(c *Config) { c.SamplesPerPixel = 0 }, "samples per pixel"},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, "max depth"},
		{"zero depth is allowed", func(c *Config) { c.MaxDepth = 0 }, ""},
		{"auto workers is allowed", func(c *Config) { c.NumWorkers = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			err := config.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigWorkerCount(t *testing.T) {
	config := DefaultConfig()
	config.NumWorkers = 0
	if got := config.workerCount(); got != runtime.NumCPU() {
		t.Errorf("Expected %d workers, got %d", runtime.NumCPU(), got)
	}
	config.NumWorkers = 3
	if got := config.workerCount(); got != 3 {
		t.Errorf("Expected 3 workers, got %d", got)
	}
}
