package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// replConfig holds the REPL settings read from ~/.spryrc.yaml. Every field is
// optional; zero values fall back to the defaults below.
type replConfig struct {
	Prompt       string `yaml:"prompt"`
	Placeholder  string `yaml:"placeholder"`
	HistoryLimit int    `yaml:"history_limit"`
	AltScreen    *bool  `yaml:"alt_screen"`
}

const configFileName = ".spryrc.yaml"

func defaultREPLConfig() replConfig {
	altScreen := true
	return replConfig{
		Prompt:       "spry> ",
		Placeholder:  "type an expression...",
		HistoryLimit: 500,
		AltScreen:    &altScreen,
	}
}

// loadREPLConfig reads ~/.spryrc.yaml if it exists. A missing file is not an
// error; a malformed one is.
func loadREPLConfig() (replConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultREPLConfig(), nil
	}
	return loadREPLConfigFrom(filepath.Join(home, configFileName))
}

func loadREPLConfigFrom(path string) (replConfig, error) {
	cfg := defaultREPLConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var file replConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if file.Prompt != "" {
		cfg.Prompt = file.Prompt
	}
	if file.Placeholder != "" {
		cfg.Placeholder = file.Placeholder
	}
	if file.HistoryLimit > 0 {
		cfg.HistoryLimit = file.HistoryLimit
	}
	if file.AltScreen != nil {
		cfg.AltScreen = file.AltScreen
	}
	return cfg, nil
}
