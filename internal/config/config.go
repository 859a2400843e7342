package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/params"
	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// envKeys maps environment variables onto config keys.
var envKeys = []struct {
	env string
	key string
}{
	{params.EnvAPIURL, KeyAPIURL},
	{params.EnvTimezone, KeyTimezone},
	{params.EnvLogLevel, KeyLogLevel},
}

// Options controls where Load reads from. Zero values use the defaults.
type Options struct {
	// Path is the config.ini location; defaults to the application directory
	Path string

	// DotEnv is the .env location; defaults to .env in the working directory
	DotEnv string

	// LookupEnv replaces os.LookupEnv, for tests
	LookupEnv func(string) (string, bool)
}

// DefaultPath returns <appdir>/config.ini.
func DefaultPath() (string, error) {
	return params.AppdataFile(params.ConfigFileName)
}

// Load builds the effective configuration. A missing config file or .env
// file is not an error.
func Load(opts Options) (model.Config, error) {
	cfg := model.DefaultConfig()

	path := opts.Path
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}

		path = p
	}

	if err := loadFile(path, &cfg); err != nil {
		return cfg, err
	}

	dotenvPath := opts.DotEnv
	if dotenvPath == "" {
		dotenvPath = params.DotEnvFileName
	}

	dotenv, err := readDotEnv(dotenvPath)
	if err != nil {
		return cfg, err
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for _, e := range envKeys {
		if v, ok := dotenv[e.env]; ok && v != "" {
			if err := Set(&cfg, e.key, v); err != nil {
				return cfg, fmt.Errorf("%s in %s: %w", e.env, dotenvPath, err)
			}
		}

		if v, ok := lookup(e.env); ok && v != "" {
			if err := Set(&cfg, e.key, v); err != nil {
				return cfg, fmt.Errorf("%s: %w", e.env, err)
			}
		}
	}

	return cfg, nil
}

// LoadFile reads only the config file at path over the defaults, ignoring
// .env and the environment. It is what `config set` edits.
func LoadFile(path string) (model.Config, error) {
	cfg := model.DefaultConfig()

	return cfg, loadFile(path, &cfg)
}

func loadFile(path string, cfg *model.Config) error {
	f, err := ini.LooseLoad(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := f.Section(ini.DefaultSection).MapTo(cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return Validate(*cfg)
}

func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return values, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg model.Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f := ini.Empty()
	sec := f.Section(ini.DefaultSection)

	for _, key := range Keys() {
		value, err := Get(cfg, key)
		if err != nil {
			return err
		}

		sec.Key(key).SetValue(value)
	}

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return os.Chmod(path, 0600)
}

// Validate checks every key of cfg.
func Validate(cfg model.Config) error {
	for _, key := range Keys() {
		value, err := Get(cfg, key)
		if err != nil {
			return err
		}

		probe := cfg
		if err := Set(&probe, key, value); err != nil {
			return err
		}
	}

	return nil
}
