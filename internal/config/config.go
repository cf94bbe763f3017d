package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the svalid CLI tool configuration
type Configuration struct {
	// EngineCmd is the external XSLT processor invocation template.
	// {{XSL}}, {{XML}} and {{OUT}} are replaced with the stylesheet,
	// source document and output file paths.
	EngineCmd string `koanf:"engine_cmd" validate:"required"`

	SchematronDir string `koanf:"schematron_dir" validate:"required"` // rule sources (.sch)
	StylesheetDir string `koanf:"stylesheet_dir" validate:"required"` // ISO pipeline stylesheets
	OutputDir     string `koanf:"output_dir" validate:"required"`     // compiled .xsl artifacts
	CacheDir      string `koanf:"cache_dir" validate:"required"`      // build cache records
	TempDir       string `koanf:"temp_dir" validate:"required"`       // pipeline intermediates
	ResultsDir    string `koanf:"results_dir" validate:"required"`    // per-document JSON reports

	ShowProgress bool `koanf:"show_progress"` // Show spinners during compilation and validation

	// Large-file performance goal, reported informationally in the run summary.
	GoalSizeMB      float64 `koanf:"goal_size_mb" validate:"min=0"`
	GoalTimeSeconds float64 `koanf:"goal_time_seconds" validate:"min=0"`

	// Severity keyword sets for message-based classification, scanned in
	// fatal -> error -> warning -> info priority order.
	FatalKeywords   []string `koanf:"fatal_keywords" validate:"min=1"`
	ErrorKeywords   []string `koanf:"error_keywords" validate:"min=1"`
	WarningKeywords []string `koanf:"warning_keywords" validate:"min=1"`
	InfoKeywords    []string `koanf:"info_keywords" validate:"min=1"`
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	// Apply defaults first
	defaults := GetDefaults()
	for key, value := range defaults {
		k.Set(key, value)
	}

	// Load global config if it exists
	homeDir, err := os.UserHomeDir()
	if err == nil {
		globalPath := filepath.Join(homeDir, ".svalid", "config.json")
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	// Load local config if it exists
	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	// Override with environment variables (highest priority)
	k.Load(env.Provider("SVALID_", ".", envTransform), nil)

	// Unmarshal into struct
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if !strings.Contains(cfg.EngineCmd, "{{XSL}}") || !strings.Contains(cfg.EngineCmd, "{{XML}}") {
		return nil, fmt.Errorf("engine_cmd must contain {{XSL}} and {{XML}} placeholders")
	}

	return &cfg, nil
}

// envTransform converts SVALID_ENGINE_CMD style variables to engine_cmd keys
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "SVALID_"))
}

// EnsureDirs creates the directories the pipeline writes to. A directory
// that cannot be created is a configuration error, reported before any
// compilation or validation work starts.
func (c *Configuration) EnsureDirs() error {
	for _, dir := range []string{c.OutputDir, c.CacheDir, c.TempDir, c.ResultsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create required directory %s: %w", dir, err)
		}
	}
	return nil
}
