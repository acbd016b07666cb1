package repl

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = ".scmrc.yml"

// Config holds the optional REPL settings. Batch output never depends on
// it; only the interactive prompt and history location do.
type Config struct {
	Prompt  string `yaml:"prompt"`
	History string `yaml:"history"`
}

// DefaultConfig returns the stock prompt and a history file under the
// user's home directory.
func DefaultConfig() Config {
	cfg := Config{Prompt: "scm> "}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.History = filepath.Join(home, ".scm_history")
	}
	return cfg
}

// LoadConfig looks for .scmrc.yml from the working directory upwards, then
// in the home directory, and merges it over the defaults. A missing file is
// not an error.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path, err := findConfig()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}
	loaded, err := readConfig(path)
	if err != nil {
		return cfg, err
	}
	if loaded.Prompt != "" {
		cfg.Prompt = loaded.Prompt
	}
	if loaded.History != "" {
		cfg.History = loaded.History
	}
	return cfg, nil
}

func findConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, configFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", nil
}

func readConfig(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}
