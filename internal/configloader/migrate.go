package configloader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/gotextlint/pkg/config"
)

// MigrationResult contains the result of converting an .arcconfig.
type MigrationResult struct {
	// Config is the converted gotextlint configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original .arcconfig.
	SourcePath string
}

// ConvertArcconfig converts the text lint settings of an .arcconfig into a
// gotextlint configuration. Lint keys other than the line length are
// reported as warnings and dropped.
func ConvertArcconfig(path string) (*MigrationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	result := &MigrationResult{SourcePath: path}
	cfg := config.NewConfig()

	settings, err := ParseArcconfig(content)
	switch {
	case err != nil && !settings.Found:
		return nil, err
	case err != nil:
		result.Warnings = append(result.Warnings, err.Error()+"; keeping the default")
	case settings.Found && settings.MaxLineLength <= 0:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("non-positive %s %d; keeping the default %d",
				ArcMaxLineLengthKey, settings.MaxLineLength, config.DefaultMaxLineLength))
	case settings.Found:
		cfg.MaxLineLength = settings.MaxLineLength
	}

	for _, key := range unsupportedLintKeys(content) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unsupported key %q; skipping", key))
	}

	result.Config = cfg
	return result, nil
}

// unsupportedLintKeys lists the flattened "lint.*" keys other than the line
// length, sorted.
func unsupportedLintKeys(content []byte) []string {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(stripJSONComments(content)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil
	}

	var keys []string
	var walk func(prefix string, v any)
	walk = func(prefix string, v any) {
		if m, ok := v.(map[string]any); ok {
			for k, child := range m {
				walk(joinKey(prefix, k), child)
			}
			return
		}
		if strings.HasPrefix(prefix, "lint.") && prefix != ArcMaxLineLengthKey {
			keys = append(keys, prefix)
		}
	}
	walk("", raw)

	sort.Strings(keys)
	return keys
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# gotextlint configuration
# Migrated from: %s
# See: https://github.com/yaklabco/gotextlint
`, filepath.Base(sourcePath))
}

// MigrationTarget returns the config file a migration writes for format
// ("yaml" or "toml") in dir.
func MigrationTarget(dir, format string) string {
	if format == config.TemplateTOML {
		return filepath.Join(dir, ".gotextlint.toml")
	}
	return filepath.Join(dir, ".gotextlint.yml")
}

// EncodeMigration renders result as a config file with a header.
func EncodeMigration(result *MigrationResult, format string) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	if format == config.TemplateTOML {
		body, err = result.Config.ToTOML()
	} else {
		body, err = result.Config.ToYAML()
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(GenerateMigrationHeader(result.SourcePath))
	buf.WriteString("\n")
	buf.Write(body)
	return buf.Bytes(), nil
}
