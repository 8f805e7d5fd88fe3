package main

import (
	"os"

	"github.com/npillmayer/pengo/interp"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// traceKeys are the tracing keys of all pengo packages.
var traceKeys = []string{
	"pengo.lr", "pengo.scanner", "pengo.lang", "pengo.runtime", "pengo.interp", "pengo.cli",
}

// Config is the content of a configuration file, e.g.
//
//     trace:
//       pengo.lr: Debug
//       pengo.interp: Info
//     prompt: "pengo> "
//     seed: 4711
//
type Config struct {
	Trace  map[string]string `yaml:"trace"`
	Prompt string            `yaml:"prompt"`
	Seed   uint64            `yaml:"seed"`
}

func defaultConfig() *Config {
	return &Config{
		Trace:  map[string]string{},
		Prompt: "pengo> ",
	}
}

// loadConfig reads a YAML configuration file. Settings missing from the file
// keep their defaults.
func loadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read configuration")
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	c := defaultConfig()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "malformed configuration")
	}
	if c.Trace == nil {
		c.Trace = map[string]string{}
	}
	for key := range c.Trace {
		if !isTraceKey(key) {
			return nil, errors.Errorf("unknown trace key %q in configuration", key)
		}
	}
	return c, nil
}

func isTraceKey(key string) bool {
	for _, k := range traceKeys {
		if k == key {
			return true
		}
	}
	return false
}

// installTracing routes all traces to a Go logger writing to stderr.
func installTracing() {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
}

// setTraceLevel sets a trace level for all keys.
func (c *Config) setTraceLevel(level string) {
	for _, key := range traceKeys {
		c.Trace[key] = level
	}
}

// apply sets the trace levels. Keys not configured trace errors only.
func (c *Config) apply() {
	for _, key := range traceKeys {
		level := tracing.LevelError
		if l, ok := c.Trace[key]; ok {
			level = tracing.TraceLevelFromString(l)
		}
		tracing.Select(key).SetTraceLevel(level)
	}
}

// interpOptions are the interpreter options derived from the configuration.
func (c *Config) interpOptions() []interp.Option {
	var opts []interp.Option
	if c.Seed != 0 {
		opts = append(opts, interp.WithSeed(c.Seed))
	}
	return opts
}
