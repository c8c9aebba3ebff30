// Package config handles scriptmem.toml engine configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileName is the conventional configuration file name.
const FileName = "scriptmem.toml"

// Config represents a scriptmem.toml file.
type Config struct {
	Stack   Stack   `toml:"stack"`
	Heap    Heap    `toml:"heap"`
	Threads Threads `toml:"threads"`
	Log     Log     `toml:"log"`
}

// Stack configures per-thread call stacks.
type Stack struct {
	DepthLimit int `toml:"depth_limit"`
}

// Heap configures the shared heap.
type Heap struct {
	Budget int64 `toml:"budget"` // bytes, 0 = unlimited
}

// Threads configures how many script threads the probe runs.
type Threads struct {
	Count int `toml:"count"`
}

// Log configures the process logger.
type Log struct {
	Debug   bool `toml:"debug"`
	NoColor bool `toml:"no_color"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Stack:   Stack{DepthLimit: 200},
		Threads: Threads{Count: 4},
	}
}

// Load parses path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse error in %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Stack.DepthLimit < 1 {
		errs = append(errs, fmt.Errorf("stack.depth_limit must be positive, got %d", c.Stack.DepthLimit))
	}
	if c.Heap.Budget < 0 {
		errs = append(errs, fmt.Errorf("heap.budget must not be negative, got %d", c.Heap.Budget))
	}
	if c.Threads.Count < 1 {
		errs = append(errs, fmt.Errorf("threads.count must be positive, got %d", c.Threads.Count))
	}
	return errors.Join(errs...)
}
