package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// fileConfig is the optional lalrgen.toml config layered under CLI flags,
// the way cmd/tqi layers pflag over TOML-defined defaults in the teacher.
type fileConfig struct {
	Out      string `toml:"out"`
	Template string `toml:"template"`
	EmitOut  string `toml:"emit_out"`
}

// loadConfig reads path if it exists; a missing file is not an error, it
// just yields the zero fileConfig.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
