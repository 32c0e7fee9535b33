// Package config provides configuration file support for codescan.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/richhaase/codescan/internal/domain"
)

// ConfigFileName is the name of the per-project config file.
const ConfigFileName = ".codescan.yaml"

// Duration is a custom type that handles YAML duration parsing.
// Supports both Go duration format ("5m", "300s") and numeric seconds.
type Duration time.Duration

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(time.Duration(v) * time.Second)
	case float64:
		*d = Duration(time.Duration(v * float64(time.Second)))
	default:
		return fmt.Errorf("invalid duration type: %T", v)
	}
	return nil
}

// AsDuration returns the underlying time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// Config represents the codescan configuration file.
type Config struct {
	BaseURL      *string      `yaml:"base_url"`
	Timeout      *Duration    `yaml:"timeout"`
	ProbeTimeout *Duration    `yaml:"probe_timeout"`
	Language     *string      `yaml:"language"`
	LogFile      *string      `yaml:"log_file"`
	Filters      FilterConfig `yaml:"filters"`
}

// FilterConfig holds filter-related configuration.
type FilterConfig struct {
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

// LoadResult contains the loaded config and any warnings encountered.
type LoadResult struct {
	Config   *Config
	Warnings []string
	// Path is the file that was loaded, empty if none was found.
	Path string
}

// SearchPaths returns the locations checked for a config file, in order:
// the working directory, then the user config directory.
func SearchPaths() []string {
	var paths []string
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, ConfigFileName))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "codescan", "config.yaml"))
	}
	return paths
}

// LoadWithWarnings reads the first config file found in SearchPaths.
// Returns an empty config (not error) if none exists.
func LoadWithWarnings() (*LoadResult, error) {
	for _, path := range SearchPaths() {
		if _, err := os.Stat(path); err == nil {
			return LoadFromPathWithWarnings(path)
		}
	}
	return &LoadResult{Config: &Config{}}, nil
}

// LoadFromDirWithWarnings reads .codescan.yaml from the specified directory.
func LoadFromDirWithWarnings(dir string) (*LoadResult, error) {
	return LoadFromPathWithWarnings(filepath.Join(dir, ConfigFileName))
}

// LoadFromPathWithWarnings reads a config file and returns warnings for unknown keys.
// Returns an empty config (not error) if the file doesn't exist.
// Returns an error if the file exists but is invalid YAML or fails validation.
func LoadFromPathWithWarnings(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &LoadResult{Config: &Config{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	warnings := checkUnknownKeys(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return &LoadResult{Config: &cfg, Warnings: warnings, Path: path}, nil
}

// Validate checks that all config values are valid.
func (c *Config) Validate() error {
	if c.BaseURL != nil {
		if err := validateBaseURL(*c.BaseURL); err != nil {
			return err
		}
	}
	if c.Timeout != nil && *c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %s", time.Duration(*c.Timeout))
	}
	if c.ProbeTimeout != nil && *c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe_timeout must be > 0, got %s", time.Duration(*c.ProbeTimeout))
	}
	if c.Language != nil {
		if _, ok := domain.LookupLanguage(*c.Language); !ok {
			return fmt.Errorf("language must be one of %v, got %q", domain.LanguageIDs(), *c.Language)
		}
	}
	for _, pattern := range c.Filters.ExcludePatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("base_url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url must include a host, got %q", raw)
	}
	return nil
}

// knownTopLevelKeys are the valid top-level keys in the config file.
var knownTopLevelKeys = []string{"base_url", "timeout", "probe_timeout", "language", "log_file", "filters"}

// knownFilterKeys are the valid keys under the "filters" section.
var knownFilterKeys = []string{"exclude_patterns"}

// checkUnknownKeys checks for unknown keys in the YAML data and returns warnings.
func checkUnknownKeys(data []byte) []string {
	var warnings []string

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil
	}

	for key := range raw {
		if !slices.Contains(knownTopLevelKeys, key) {
			warning := fmt.Sprintf("unknown key %q", key)
			if suggestion := findSimilar(key, knownTopLevelKeys); suggestion != "" {
				warning += fmt.Sprintf(" (did you mean %q?)", suggestion)
			}
			warnings = append(warnings, warning)
		}
	}

	if filters, ok := raw["filters"].(map[string]any); ok {
		for key := range filters {
			if !slices.Contains(knownFilterKeys, key) {
				warning := fmt.Sprintf("unknown key %q in filters section", key)
				if suggestion := findSimilar(key, knownFilterKeys); suggestion != "" {
					warning += fmt.Sprintf(" (did you mean %q?)", suggestion)
				}
				warnings = append(warnings, warning)
			}
		}
	}

	slices.Sort(warnings)
	return warnings
}

// findSimilar finds the most similar string from candidates using Levenshtein distance.
// Returns empty string if no candidate is within 3 edits.
func findSimilar(input string, candidates []string) string {
	const maxDistance = 3
	bestMatch := ""
	bestDistance := maxDistance + 1

	for _, candidate := range candidates {
		if dist := levenshtein(input, candidate); dist < bestDistance {
			bestDistance = dist
			bestMatch = candidate
		}
	}

	if bestDistance <= maxDistance {
		return bestMatch
	}
	return ""
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Merge combines config file patterns with CLI patterns.
// CLI patterns are appended after config patterns (both are applied).
func Merge(cfg *Config, cliPatterns []string) []string {
	if cfg == nil {
		return slices.Clone(cliPatterns)
	}
	return append(slices.Clone(cfg.Filters.ExcludePatterns), cliPatterns...)
}

// Defaults holds the built-in default values.
var Defaults = ResolvedConfig{
	BaseURL:      "http://localhost:8000",
	Timeout:      60 * time.Second,
	ProbeTimeout: 5 * time.Second,
	Language:     domain.DefaultLanguage,
}

// ResolvedConfig holds the final resolved configuration values.
type ResolvedConfig struct {
	BaseURL         string
	Timeout         time.Duration
	ProbeTimeout    time.Duration
	Language        string
	LogFile         string
	ExcludePatterns []string
}

// ValidateAll checks every resolved value and returns one message per problem.
func (r ResolvedConfig) ValidateAll() []string {
	var errs []string
	if err := validateBaseURL(r.BaseURL); err != nil {
		errs = append(errs, err.Error())
	}
	if r.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("timeout must be > 0, got %s", r.Timeout))
	}
	if r.ProbeTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("probe_timeout must be > 0, got %s", r.ProbeTimeout))
	}
	if _, ok := domain.LookupLanguage(r.Language); !ok {
		errs = append(errs, fmt.Sprintf("language must be one of %v, got %q", domain.LanguageIDs(), r.Language))
	}
	for _, pattern := range r.ExcludePatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			errs = append(errs, fmt.Sprintf("invalid regex pattern %q: %v", pattern, err))
		}
	}
	return errs
}

// FlagState tracks whether a flag was explicitly set.
type FlagState struct {
	BaseURLSet      bool
	TimeoutSet      bool
	ProbeTimeoutSet bool
	LanguageSet     bool
	LogFileSet      bool
}

// EnvState captures env var values and whether they were set.
type EnvState struct {
	BaseURL         string
	BaseURLSet      bool
	Timeout         time.Duration
	TimeoutSet      bool
	ProbeTimeout    time.Duration
	ProbeTimeoutSet bool
	Language        string
	LanguageSet     bool
	LogFile         string
	LogFileSet      bool
}

// LoadEnvState reads CODESCAN_* environment variables. Values that cannot be
// parsed are ignored and reported as warnings.
func LoadEnvState() (EnvState, []string) {
	var state EnvState
	var warnings []string

	if v := os.Getenv("CODESCAN_BASE_URL"); v != "" {
		state.BaseURL = v
		state.BaseURLSet = true
	}
	if v := os.Getenv("CODESCAN_TIMEOUT"); v != "" {
		if d, err := parseEnvDuration(v); err == nil {
			state.Timeout = d
			state.TimeoutSet = true
		} else {
			warnings = append(warnings, fmt.Sprintf("CODESCAN_TIMEOUT: %v", err))
		}
	}
	if v := os.Getenv("CODESCAN_PROBE_TIMEOUT"); v != "" {
		if d, err := parseEnvDuration(v); err == nil {
			state.ProbeTimeout = d
			state.ProbeTimeoutSet = true
		} else {
			warnings = append(warnings, fmt.Sprintf("CODESCAN_PROBE_TIMEOUT: %v", err))
		}
	}
	if v := os.Getenv("CODESCAN_LANGUAGE"); v != "" {
		state.Language = v
		state.LanguageSet = true
	}
	if v := os.Getenv("CODESCAN_LOG_FILE"); v != "" {
		state.LogFile = v
		state.LogFileSet = true
	}

	return state, warnings
}

func parseEnvDuration(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return 0, fmt.Errorf("invalid duration %q", v)
}

// Resolve merges config file values with env vars and flags.
// Precedence: flags > env vars > config file > defaults.
// ExcludePatterns are taken from flagValues and appended to the file's.
func Resolve(cfg *Config, envState EnvState, flagState FlagState, flagValues ResolvedConfig) ResolvedConfig {
	result := Defaults

	if cfg != nil {
		if cfg.BaseURL != nil {
			result.BaseURL = *cfg.BaseURL
		}
		if cfg.Timeout != nil {
			result.Timeout = cfg.Timeout.AsDuration()
		}
		if cfg.ProbeTimeout != nil {
			result.ProbeTimeout = cfg.ProbeTimeout.AsDuration()
		}
		if cfg.Language != nil {
			result.Language = *cfg.Language
		}
		if cfg.LogFile != nil {
			result.LogFile = *cfg.LogFile
		}
	}

	if envState.BaseURLSet {
		result.BaseURL = envState.BaseURL
	}
	if envState.TimeoutSet {
		result.Timeout = envState.Timeout
	}
	if envState.ProbeTimeoutSet {
		result.ProbeTimeout = envState.ProbeTimeout
	}
	if envState.LanguageSet {
		result.Language = envState.Language
	}
	if envState.LogFileSet {
		result.LogFile = envState.LogFile
	}

	if flagState.BaseURLSet {
		result.BaseURL = flagValues.BaseURL
	}
	if flagState.TimeoutSet {
		result.Timeout = flagValues.Timeout
	}
	if flagState.ProbeTimeoutSet {
		result.ProbeTimeout = flagValues.ProbeTimeout
	}
	if flagState.LanguageSet {
		result.Language = flagValues.Language
	}
	if flagState.LogFileSet {
		result.LogFile = flagValues.LogFile
	}

	result.ExcludePatterns = Merge(cfg, flagValues.ExcludePatterns)
	return result
}
