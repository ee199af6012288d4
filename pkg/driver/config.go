package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project file searched for from the working directory upwards.
const ConfigFileName = "brewin.yml"

// LogLevelEnv overrides the configured log level.
const LogLevelEnv = "BREWIN_LOG_LEVEL"

var ErrConfigNotFound = errors.New("brewin.yml not found")

var validLogLevels = map[string]struct{}{
	"trace": {},
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Config represents the parsed contents of brewin.yml.
type Config struct {
	Path     string
	Name     string
	Entry    string
	LogLevel string
	Console  ConsoleConfig
}

// ConsoleConfig controls how the CLI reads program input.
type ConsoleConfig struct {
	LineEditing bool
	HistoryFile string
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig is used when no brewin.yml is present.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		Console:  ConsoleConfig{LineEditing: true},
	}
}

type configFile struct {
	Name     string            `yaml:"name"`
	Entry    string            `yaml:"entry"`
	LogLevel string            `yaml:"log_level"`
	Console  consoleConfigYAML `yaml:"console"`
}

type consoleConfigYAML struct {
	LineEditing *bool  `yaml:"line_editing"`
	HistoryFile string `yaml:"history_file"`
}

// LoadConfig parses brewin.yml from disk, returning a validated config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cf configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.Name = strings.TrimSpace(cf.Name)
	cfg.Entry = strings.TrimSpace(cf.Entry)
	if level := strings.TrimSpace(cf.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if cf.Console.LineEditing != nil {
		cfg.Console.LineEditing = *cf.Console.LineEditing
	}
	cfg.Console.HistoryFile = strings.TrimSpace(cf.Console.HistoryFile)
	return cfg
}

func (c *Config) validate() error {
	var errs ValidationError
	if _, ok := validLogLevels[c.LogLevel]; !ok {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q is not one of trace, debug, info, warn, error", c.LogLevel))
	}
	if c.Entry != "" {
		if _, err := FormatFromPath(c.Entry); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("entry %q: %v", c.Entry, err))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ApplyEnv folds environment overrides into the config.
func (c *Config) ApplyEnv() error {
	level := strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv)))
	if level == "" {
		return nil
	}
	if _, ok := validLogLevels[level]; !ok {
		return fmt.Errorf("config: %s=%q is not a valid log level", LogLevelEnv, level)
	}
	c.LogLevel = level
	return nil
}

// EntryPath resolves the entry program relative to the config file.
func (c *Config) EntryPath() string {
	if c == nil || c.Entry == "" {
		return ""
	}
	entry := filepath.FromSlash(c.Entry)
	if filepath.IsAbs(entry) || c.Path == "" {
		return filepath.Clean(entry)
	}
	return filepath.Join(filepath.Dir(c.Path), entry)
}

// HistoryPath resolves the line-editing history file, or "" when disabled.
func (c *Config) HistoryPath() string {
	if c == nil || c.Console.HistoryFile == "" {
		return ""
	}
	path := filepath.FromSlash(c.Console.HistoryFile)
	if strings.HasPrefix(c.Console.HistoryFile, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) || c.Path == "" {
		return path
	}
	return filepath.Join(filepath.Dir(c.Path), path)
}

// FindConfig walks from start towards the filesystem root looking for brewin.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}
