package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// DefaultFile is the optional config file read from the working directory.
const DefaultFile = "nodegraph.toml"

// EnvPrefix prefixes environment overrides, e.g. NODEGRAPH_FORMAT=yaml.
const EnvPrefix = "NODEGRAPH_"

// Config holds all configuration for the application
type Config struct {
	Input      string `koanf:"input"`
	Output     string `koanf:"output"`
	Format     string `koanf:"format"`
	Attributes bool   `koanf:"attributes"`
	Strategy   string `koanf:"strategy"`
	Watch      bool   `koanf:"watch"`
	Verbosity  string `koanf:"verbosity"`
	VerboseCnt int    `koanf:"verbose"`
	JSONLogs   bool   `koanf:"json-logs"`
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	return LoadFile(f, DefaultFile)
}

// LoadFile is Load with an explicit config file path.
func LoadFile(f *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"input":      "",
		"output":     "",
		"format":     "json",
		"attributes": true,
		"strategy":   "shader",
		"watch":      false,
		"verbosity":  "",
		"verbose":    0,
		"json-logs":  false,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config File (optional)
	// We ignore errors here as the file might not exist
	if path != "" {
		_ = k.Load(file.Provider(path), toml.Parser())
	}

	// 3. Environment Variables
	// NODEGRAPH_JSON_LOGS maps to json-logs
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Flags registers the command line flags understood by Load.
func Flags(name string) *pflag.FlagSet {
	f := pflag.NewFlagSet(name, pflag.ContinueOnError)
	f.StringP("input", "i", "", "Graph description file (toml, yaml or json)")
	f.StringP("output", "o", "", "Write the graph file here instead of stdout")
	f.StringP("format", "f", "json", "Graph file format: json, yaml or toml")
	f.Bool("attributes", true, "Include editor layout attribute tables")
	f.StringP("strategy", "s", "shader", "Connection policy: always, never, tagtype or shader")
	f.BoolP("watch", "w", false, "Re-lower whenever the description changes")
	f.String("verbosity", "", "Log level: trace, debug, info, warn or error")
	f.CountP("verbose", "v", "Increase verbosity (-v debug, -vv trace)")
	f.Bool("json-logs", false, "Emit logs as JSON")
	return f
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
