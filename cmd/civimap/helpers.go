package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/karaleary/civimap/internal/config"
	"github.com/karaleary/civimap/internal/dictionary"
	"github.com/karaleary/civimap/internal/engine"
)

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, ".civimap", "config.yaml")
	}
	return config.Load(path)
}

// loadDictionary reads the dictionary at path, or the embedded default
// when path is empty. Warnings go to stderr so stdout stays parseable.
func loadDictionary(path string) (*dictionary.Dictionary, error) {
	if path == "" {
		return dictionary.Default(), nil
	}
	dict, warnings, err := dictionary.LoadFile(path)
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		fmt.Fprintln(os.Stderr, styleDim.Render("warning: "+warning))
	}
	return dict, nil
}

func loadEngine(dictPath string) (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if dictPath == "" {
		dictPath = cfg.Dictionary
	}
	dict, err := loadDictionary(dictPath)
	if err != nil {
		return nil, err
	}
	return engine.New(dict), nil
}
