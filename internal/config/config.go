// Package config resolves the runtime settings: built-in defaults, then an
// optional YAML file, then INTENTGEN_* environment variables. A .env file in
// the working directory is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/export"
	"github.com/aadhamashraf/intentgen/internal/generation"
	"github.com/aadhamashraf/intentgen/internal/llm"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is read when INTENTGEN_CONFIG is unset. It may be absent.
	DefaultFile = "intentgen.yaml"
	// EnvFile is loaded into the environment when present.
	EnvFile = ".env"
)

type Config struct {
	Seed         uint64 `yaml:"seed"`
	Count        int    `yaml:"count"`
	Format       string `yaml:"format"`
	OutputDir    string `yaml:"output_dir"`
	ProfilesPath string `yaml:"profiles"`
	DBPath       string `yaml:"db_path"`
	Addr         string `yaml:"addr"`
	LogLevel     string `yaml:"log_level"`

	// Augment holds the default augmentation ratios for generate.
	Augment domain.AugmentRatios `yaml:"augment"`

	LLM llm.LLMConfig `yaml:"-"`
}

// llmFile is the subset of LLM settings a config file may carry.
type llmFile struct {
	Enabled    *bool  `yaml:"enabled"`
	Endpoint   string `yaml:"endpoint"`
	Model      string `yaml:"model"`
	SampleSize int    `yaml:"sample_size"`
	MaxRetries *int   `yaml:"max_retries"`
}

type file struct {
	Config `yaml:",inline"`
	LLM    llmFile `yaml:"llm"`
}

func DefaultConfig() Config {
	return Config{
		Seed:      generation.DefaultSeed,
		Count:     generation.DefaultBatchSize,
		Format:    string(export.FormatJSON),
		OutputDir: "output",
		DBPath:    "output/intents.db",
		Addr:      ":8000",
		LogLevel:  "info",
		LLM:       llm.DefaultConfig(),
	}
}

// Load resolves the configuration. A file named by INTENTGEN_CONFIG must
// exist; the default file is optional.
func Load() (Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: loading %s: %v", ErrInvalidConfig, EnvFile, err)
	}

	path, required := os.Getenv("INTENTGEN_CONFIG"), true
	if path == "" {
		path, required = DefaultFile, false
	}
	return LoadFile(path, required)
}

// LoadFile resolves the configuration from path and the environment.
func LoadFile(path string, required bool) (Config, error) {
	f := file{Config: DefaultConfig()}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return Config{}, fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return Config{}, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, path, err)
	}

	cfg := f.Config
	cfg.LLM = llm.ApplyEnv(f.LLM.apply(llm.DefaultConfig()))
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (l llmFile) apply(cfg llm.LLMConfig) llm.LLMConfig {
	if l.Enabled != nil {
		cfg.Enabled = *l.Enabled
	}
	if l.Endpoint != "" {
		cfg.Endpoint = l.Endpoint
	}
	if l.Model != "" {
		cfg.Model = l.Model
	}
	if l.SampleSize > 0 {
		cfg.SampleSize = l.SampleSize
	}
	if l.MaxRetries != nil && *l.MaxRetries >= 0 {
		cfg.MaxRetries = *l.MaxRetries
	}
	return cfg
}

// applyEnv overlays INTENTGEN_* variables. Unparsable values are ignored.
func applyEnv(cfg *Config) {
	if v := os.Getenv("INTENTGEN_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("INTENTGEN_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Count = n
		}
	}
	setString(&cfg.Format, "INTENTGEN_FORMAT")
	setString(&cfg.OutputDir, "INTENTGEN_OUTPUT_DIR")
	setString(&cfg.ProfilesPath, "INTENTGEN_PROFILES")
	setString(&cfg.DBPath, "INTENTGEN_DB_PATH")
	setString(&cfg.Addr, "INTENTGEN_ADDR")
	setString(&cfg.LogLevel, "INTENTGEN_LOG_LEVEL")

	setRatio(&cfg.Augment.Typo, "INTENTGEN_AUGMENT_TYPO")
	setRatio(&cfg.Augment.EntityShuffle, "INTENTGEN_AUGMENT_ENTITY_SHUFFLE")
	setRatio(&cfg.Augment.Adversarial, "INTENTGEN_AUGMENT_ADVERSARIAL")
	setRatio(&cfg.Augment.Paraphrase, "INTENTGEN_AUGMENT_PARAPHRASE")
	setRatio(&cfg.Augment.OutOfScope, "INTENTGEN_AUGMENT_OUT_OF_SCOPE")
	setRatio(&cfg.Augment.Ambiguous, "INTENTGEN_AUGMENT_AMBIGUOUS")
}

// setRatio leaves range checks to Validate.
func setRatio(dst *float64, name string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setString(dst *string, name string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Count < generation.MinBatchSize || c.Count > generation.MaxBatchSize {
		errs = append(errs, fmt.Errorf("count %d out of range %d..%d", c.Count, generation.MinBatchSize, generation.MaxBatchSize))
	}
	if _, err := export.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Augment.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Augment.Paraphrase > 0 && !c.LLM.Enabled {
		errs = append(errs, errors.New("augment.paraphrase needs llm.enabled"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// SlogLevel parses LogLevel (debug, info, warn, error).
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// BatchDefaults feeds the configured knobs into the batch defaults cascade.
func (c Config) BatchDefaults() generation.BatchRequest {
	seed, count, ratios := c.Seed, c.Count, c.Augment
	return generation.BatchRequest{Seed: &seed, Count: &count, Format: c.Format, Augment: &ratios}
}
