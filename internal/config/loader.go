package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path, decodes it over [Default],
// and returns the validated [Config]. Any validation failure aborts the run
// before a single document is read — a half-applied configuration would
// silently produce wrong output.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r over [Default] and validates
// the result. Useful in tests where configs are constructed from string
// literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// An empty document is a valid "all defaults" config.
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: decode yaml: %w", err)
		}
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validRoles lists the accepted role strings for title entries.
var validRoles = map[string]struct{}{
	"legislator": {},
	"official":   {},
	"expert":     {},
	"lobbyist":   {},
	"public":     {},
	"unknown":    {},
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Log.Level != "" && !cfg.Log.Level.IsValid() {
		errs = append(errs, fmt.Errorf("log.level %q is invalid; valid values: debug, info, warn, error", cfg.Log.Level))
	}

	if cfg.Pipeline.Workers < 0 {
		errs = append(errs, fmt.Errorf("pipeline.workers %d must not be negative", cfg.Pipeline.Workers))
	}
	if cfg.Pipeline.ContextWidth < 0 {
		errs = append(errs, fmt.Errorf("pipeline.context_width %d must not be negative", cfg.Pipeline.ContextWidth))
	}

	if !cfg.Sources.Capitalized.Enabled && !cfg.Sources.Titled.Enabled && !cfg.Sources.Introductions.Enabled {
		errs = append(errs, errors.New("sources: at least one candidate source must be enabled"))
	}
	if n := cfg.Sources.Titled.MaxNameTokens; n < 1 || n > 5 {
		errs = append(errs, fmt.Errorf("sources.titled.max_name_tokens %d is out of range [1, 5]", n))
	}
	for i, t := range cfg.Sources.Titled.Titles {
		prefix := fmt.Sprintf("sources.titled.titles[%d]", i)
		if t.Token == "" {
			errs = append(errs, fmt.Errorf("%s.token is required", prefix))
		}
		if t.Role != "" {
			if _, ok := validRoles[t.Role]; !ok {
				errs = append(errs, fmt.Errorf("%s.role %q is invalid; valid values: legislator, official, expert, lobbyist, public, unknown", prefix, t.Role))
			}
		}
	}

	if cfg.Filter.MinLength < 1 {
		errs = append(errs, fmt.Errorf("filter.min_length %d must be at least 1", cfg.Filter.MinLength))
	}
	if cfg.Filter.MaxLength <= cfg.Filter.MinLength {
		errs = append(errs, fmt.Errorf("filter.max_length %d must exceed filter.min_length %d", cfg.Filter.MaxLength, cfg.Filter.MinLength))
	}

	if cfg.Thresholds.MinimumToKeep < 0 {
		errs = append(errs, fmt.Errorf("thresholds.minimum_to_keep %d must not be negative", cfg.Thresholds.MinimumToKeep))
	}
	if cfg.Thresholds.Medium < 1 {
		errs = append(errs, fmt.Errorf("thresholds.medium %d must be at least 1", cfg.Thresholds.Medium))
	}
	if cfg.Thresholds.High <= cfg.Thresholds.Medium {
		errs = append(errs, fmt.Errorf("thresholds.high %d must exceed thresholds.medium %d", cfg.Thresholds.High, cfg.Thresholds.Medium))
	}

	if s := cfg.Clustering.Similarity; s <= 0 || s > 1 {
		errs = append(errs, fmt.Errorf("clustering.similarity %.2f is out of range (0, 1]", s))
	}
	if cfg.Clustering.Independence < 0 {
		errs = append(errs, fmt.Errorf("clustering.independence %d must not be negative", cfg.Clustering.Independence))
	}
	if m := cfg.Clustering.ReviewMargin; m < 0 || m >= cfg.Clustering.Similarity {
		errs = append(errs, fmt.Errorf("clustering.review_margin %.2f is out of range [0, similarity)", m))
	}

	return errors.Join(errs...)
}
