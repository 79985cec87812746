/*
File    : numera/config/config.go
Project : Numera
*/

// Package config loads the numera.toml configuration. Configuration is
// optional: a missing file yields the defaults, and command-line flags
// override whatever the file sets.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the compiler and pipeline configuration
type Config struct {
	// Optimizer pass toggles; every pass defaults to on
	Optimizer struct {
		ConstantPropagation bool `toml:"constant_propagation"`
		DeadCode            bool `toml:"dead_code"`
		StrengthReduction   bool `toml:"strength_reduction"`
		LoopInvariant       bool `toml:"loop_invariant"`
	} `toml:"optimizer"`

	// Pipeline settings
	Pipeline struct {
		TraceStages bool `toml:"trace_stages"` // announce each stage as it starts
		DumpTokens  bool `toml:"dump_tokens"`  // print the token stream
		DumpAST     bool `toml:"dump_ast"`     // print the parsed AST
		DumpIR      bool `toml:"dump_ir"`      // print generated and optimized IR
	} `toml:"pipeline"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Optimizer.ConstantPropagation = true
	cfg.Optimizer.DeadCode = true
	cfg.Optimizer.StrengthReduction = true
	cfg.Optimizer.LoopInvariant = true

	cfg.Pipeline.TraceStages = false
	cfg.Pipeline.DumpTokens = false
	cfg.Pipeline.DumpAST = false
	cfg.Pipeline.DumpIR = false

	return cfg
}

// GetConfigPath returns the user-level config file path:
// ~/.config/numera/numera.toml, falling back to the working directory
// when the home directory cannot be determined.
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "numera.toml"
	}
	return filepath.Join(homeDir, ".config", "numera", "numera.toml")
}

// LoadConfig loads configuration in priority order: an explicit path if
// given, else ./numera.toml, else the user-level config file. A missing
// file is not an error; a malformed file is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	candidates := []string{path, "numera.toml", GetConfigPath()}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err != nil {
			if path != "" && candidate == path {
				// an explicitly named config file must exist
				return nil, err
			}
			continue
		}
		if _, err := toml.DecodeFile(candidate, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return cfg, nil
}

// Save writes the configuration to the given path, creating parent
// directories as needed.
func (cfg *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(cfg)
}
