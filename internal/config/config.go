// Package config loads the shift configuration file.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"shift/internal/ctxlog"
	"shift/internal/server"
	"shift/internal/shift"

	"github.com/goccy/go-yaml"
)

type Config struct {
	Positions     int           `yaml:"positions"`
	Range         []int         `yaml:"range"`
	IgnoreNumbers bool          `yaml:"ignoreNumbers"`
	IgnoreLetters bool          `yaml:"ignoreLetters"`
	StateFile     string        `yaml:"stateFile"`
	Log           ctxlog.Config `yaml:"log"`
	Server        server.Config `yaml:"server"`
}

func Default() Config {
	return Config{
		Positions: 1,
		StateFile: ".shift/state.db",
		Log:       ctxlog.Config{Level: "warn"},
		Server:    server.DefaultConfig(),
	}
}

// Load reads filename over the defaults. Unknown keys are an error.
// If optional is set, a missing file yields the defaults.
func Load(ctx context.Context, filename string, optional bool) (Config, error) {
	config := Default()

	file, err := os.Open(filename)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return Config{}, fmt.Errorf("open %q: %w", filename, err)
	}
	defer ctxlog.Close(ctx, "config file", file)

	dec := yaml.NewDecoder(file, yaml.Strict())

	err = dec.Decode(&config)
	if err != nil {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}

	if _, err := config.NumericRange(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// NumericRange returns the configured range, or nil if none is configured.
func (c Config) NumericRange() (*shift.Range, error) {
	return shift.NewRange(c.Range)
}

// Options returns the shift options described by c in the given direction.
func (c Config) Options(dir shift.Direction) shift.Options {
	opts := shift.Options{
		Positions: c.Positions,
		Direction: dir,
	}
	if c.IgnoreNumbers {
		opts.Ignore |= shift.IgnoreNumbers
	}
	if c.IgnoreLetters {
		opts.Ignore |= shift.IgnoreLetters
	}
	return opts
}
