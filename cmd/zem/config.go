package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration of zem. Command line flags take
// precedence over it.
type Config struct {
	Dev         bool     `yaml:"dev"`
	LogLevel    string   `yaml:"log_level"`
	Prelude     []string `yaml:"prelude"`
	ShowResult  bool     `yaml:"show_result"`
	MetricsPort uint     `yaml:"metrics_port"`
}

// LoadConfig reads the configuration at path. Relative prelude paths are
// resolved against the directory of the file. An empty path yields the
// zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i, p := range cfg.Prelude {
		if !filepath.IsAbs(p) {
			cfg.Prelude[i] = filepath.Join(dir, p)
		}
	}
	return cfg, nil
}

func (c Config) Merge(args Args) Config {
	if args.Dev {
		c.Dev = true
	}
	if args.LogLevel != "" {
		c.LogLevel = args.LogLevel
	}
	if args.ShowResult {
		c.ShowResult = true
	}
	if args.MetricsPort != 0 {
		c.MetricsPort = args.MetricsPort
	}
	return c
}
