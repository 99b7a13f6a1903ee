// Package configloader resolves the effective configuration: it discovers
// config files, imports the legacy .arcconfig line length, applies
// GOTEXTLINT_* environment variables and CLI flags, and validates the result.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/gotextlint/pkg/config"
	"github.com/yaklabco/gotextlint/pkg/lint"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from. Defaults to the cwd.
	WorkingDir string

	// ExplicitPath is the --config file. It must exist.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreArcconfig     bool
	IgnoreEnv           bool

	// CLIConfig holds values from CLI flags. They take highest precedence.
	CLIConfig *config.Config

	// Registry resolves rule names. Nil means lint.DefaultRegistry.
	Registry *lint.Registry
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files that were applied, lowest precedence first.
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOTEXTLINT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gotextlint.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gotextlint/config.yaml)
//  6. System config (/etc/gotextlint/config.yaml)
//  7. Legacy .arcconfig lint.text.maxlinelength
//  8. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	if !opts.IgnoreArcconfig && paths.Arcconfig != "" {
		warnings, err := applyArcconfig(cfg, paths.Arcconfig)
		if err != nil {
			// A broken legacy file should not block linting.
			result.Warnings = append(result.Warnings, err.Error())
		} else {
			result.Warnings = append(result.Warnings, warnings...)
			result.LoadedFrom = append(result.LoadedFrom, paths.Arcconfig)
		}
	}

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		result.Warnings = append(result.Warnings, normalizeRuleKeys(fileCfg, registry, layer.path)...)
		// Errors are reported against the file that introduced them;
		// warnings come from the merged result below.
		if v := ValidateWithFile(fileCfg, layer.path); !v.Valid() {
			return nil, &v.Errors[0]
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cli := opts.CLIConfig.Clone()
		result.Warnings = append(result.Warnings, normalizeRuleKeys(cli, registry, "")...)
		cfg = merge(cfg, cli)
	}

	validation := ValidateWithRegistry(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile decodes a YAML or TOML config file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg, err := config.Decode(path, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// applyArcconfig seeds cfg from the .arcconfig at path. Only a positive
// limit is taken; anything else leaves the default in place.
func applyArcconfig(cfg *config.Config, path string) ([]string, error) {
	settings, err := ReadArcconfig(path)
	if err != nil {
		return nil, err
	}
	if !settings.Found {
		return nil, nil
	}
	if settings.MaxLineLength <= 0 {
		return []string{fmt.Sprintf("%s: ignoring non-positive %s %d",
			path, ArcMaxLineLengthKey, settings.MaxLineLength)}, nil
	}
	cfg.MaxLineLength = settings.MaxLineLength
	return nil, nil
}

// normalizeRuleKeys rewrites rule names and aliases in cfg.Rules to
// canonical IDs. Unknown keys are kept for validation to report.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, source string) []string {
	if len(cfg.Rules) == 0 {
		return nil
	}

	var warnings []string
	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seen := make(map[string]string)

	for _, key := range sortedKeys(cfg.Rules) {
		ruleCfg := cfg.Rules[key]
		id, _, ok := registry.Resolve(key)
		if !ok {
			normalized[key] = ruleCfg
			continue
		}
		if prev, dup := seen[id]; dup {
			msg := fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %q",
				prev, key, id, key)
			if source != "" {
				msg = source + ": " + msg
			}
			warnings = append(warnings, msg)
		}
		seen[id] = key
		normalized[id] = ruleCfg
	}

	cfg.Rules = normalized
	return warnings
}
