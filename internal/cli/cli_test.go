package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotextlint/internal/cli"
	"github.com/yaklabco/gotextlint/pkg/config"
	"github.com/yaklabco/gotextlint/pkg/reporter"
)

const marker = "@no" + "commit"

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}
}

// writeFiles writes files into a fresh temp dir and returns it.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// emptyConfig returns an explicit config file so results do not depend on
// config files around the test.
func emptyConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gotextlint.yml")
	require.NoError(t, os.WriteFile(path, []byte("max_line_length: 80\n"), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func lintArgs(t *testing.T, extra ...string) []string {
	t.Helper()
	return append([]string{"lint", "--config", emptyConfig(t), "--color", "never"}, extra...)
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)
	assert.Equal(t, "gotextlint", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"lint", "hook", "watch", "rules", "init", "migrate", "restore", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestLintCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	for _, name := range []string{
		"fix", "dry-run", "format", "jobs", "ignore", "enable", "disable", "fix-rules",
		"no-backups", "strict", "no-context", "rule-format", "max-line-length", "commit-hook",
		"autofix-only", "extensions",
	} {
		assert.NotNil(t, lintCmd.Flags().Lookup(name), name)
	}

	assert.Equal(t, "name", lintCmd.Flags().Lookup("rule-format").DefValue)
	require.NoError(t, lintCmd.Args(lintCmd, []string{"a.txt", "b.go", "docs/"}))

	assert.Contains(t, lintCmd.Long, "Environment:")
	assert.Contains(t, lintCmd.Long, "GOTEXTLINT_MAX_LINE_LENGTH")
	assert.Contains(t, lintCmd.Long, "GOTEXTLINT_NO_BACKUPS")
}

func TestLint_ExitCodes(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 85) + "\n"

	tests := []struct {
		name    string
		content string
		flags   []string
		wantErr error
	}{
		{"clean", "ok\n", nil, nil},
		{"tab is an error", "a\tb\n", nil, cli.ErrLintIssuesFound},
		{"dos newline is an error", "a\r\n", nil, cli.ErrLintIssuesFound},
		{"missing final newline is an error", "a", nil, cli.ErrLintIssuesFound},
		{"trailing whitespace never fails", "a  \n", nil, nil},
		{"long line is a warning", long, nil, nil},
		{"long line fails under strict", long, []string{"--strict"}, cli.ErrLintWarningsFound},
		{"raised limit", long, []string{"--strict", "--max-line-length", "100"}, nil},
		{"disabled rule", "a\tb\n", []string{"--disable", "tab-literal"}, nil},
		{"disabled by tag", "a\tb\n", []string{"--disable", "whitespace"}, nil},
		{"marker outside hook mode", marker + "\n", nil, nil},
		{"marker in hook mode", marker + "\n", []string{"--commit-hook"}, cli.ErrLintIssuesFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeFiles(t, map[string]string{"file.txt": tt.content})
			args := lintArgs(t, tt.flags...)
			args = append(args, filepath.Join(dir, "file.txt"))

			out, err := execute(t, args...)
			if tt.wantErr == nil {
				require.NoError(t, err, out)
				return
			}
			require.ErrorIs(t, err, tt.wantErr, out)
			assert.True(t, cli.IsExitSignal(err))
		})
	}
}

func TestLint_TextOutput(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"tabs.txt": "a\tb \n"})

	tests := []struct {
		ruleFormat string
		want       string
		notWant    string
	}{
		{"name", "(tab-literal)", "TXT002"},
		{"id", "(TXT002)", "tab-literal"},
		{"combined", "(TXT002/tab-literal)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.ruleFormat, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, lintArgs(t, "--rule-format", tt.ruleFormat, "--no-context", dir)...)
			require.ErrorIs(t, err, cli.ErrLintIssuesFound)

			assert.Contains(t, out, "tabs.txt")
			assert.Contains(t, out, tt.want)
			if tt.notWant != "" {
				assert.NotContains(t, out, tt.notWant)
			}
		})
	}
}

func TestLint_Fix(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"tabs.txt":  "a\tb \n",
		"noeol.txt": "last line",
	})

	_, err := execute(t, lintArgs(t, "--fix", dir)...)
	require.NoError(t, err)

	assertFile(t, filepath.Join(dir, "tabs.txt"), "a    b\n")
	assertFile(t, filepath.Join(dir, "noeol.txt"), "last line\n")
}

func TestLint_AutofixOnly(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"mixed.txt": "a\tb\nc  \n"})

	_, err := execute(t, lintArgs(t, "--autofix-only", dir)...)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound, "the tab is still there")

	got, err := os.ReadFile(filepath.Join(dir, "mixed.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a\tb\nc\n", string(got))
}

func TestLint_DryRunDiff(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"tabs.txt": "a\tb\n"})

	out, err := execute(t, lintArgs(t, "--fix", "--dry-run", "--format", "diff", dir)...)
	require.NoError(t, err)
	assert.Contains(t, out, "-a\tb")
	assert.Contains(t, out, "+a    b")

	got, err := os.ReadFile(filepath.Join(dir, "tabs.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a\tb\n", string(got), "dry run leaves the file alone")
}

func TestLint_JSON(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.txt": "fine\n",
		"b.txt": "x \n",
	})

	out, err := execute(t, lintArgs(t, "--format", "json", dir)...)
	require.NoError(t, err)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded), out)
	assert.Equal(t, 2, decoded.Summary.FilesChecked)
	assert.Equal(t, 1, decoded.Summary.TotalIssues)
	require.Len(t, decoded.Files, 2)
	assert.Empty(t, decoded.Files[0].Diagnostics)
	require.Len(t, decoded.Files[1].Diagnostics, 1)
	assert.Equal(t, "TXT005", decoded.Files[1].Diagnostics[0].RuleID)
}

func TestLint_ExtensionsAndIgnore(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"main.go":       "package main\n",
		"notes.txt":     "a\tb\n",
		"gen/out.go":    "x\ty\n",
		"cmd/tool.go":   "package main\n",
		"cmd/tool.yaml": "k:\tv\n",
	})

	_, err := execute(t, lintArgs(t, "--extensions", ".go", "--ignore", "**/gen/**", dir)...)
	require.NoError(t, err)
}

func TestLint_InvalidFormat(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.txt": "a\n"})
	_, err := execute(t, lintArgs(t, "--format", "xml", dir)...)
	require.Error(t, err)
	assert.False(t, cli.IsExitSignal(err))
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCode(err))
}

func TestLint_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := execute(t, lintArgs(t, filepath.Join(t.TempDir(), "nope"))...)
	require.ErrorIs(t, err, os.ErrNotExist)
}

//nolint:paralleltest // t.Chdir is incompatible with t.Parallel.
func TestHook(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	files := map[string]string{
		"trailing.txt":  "x \n",
		"marked.txt":    marker + "\n",
		"tabs.txt":      "a\tb\n",
		"untracked.txt": marker + "\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	for _, name := range []string{"trailing.txt", "marked.txt", "tabs.txt"} {
		_, err := wt.Add(name)
		require.NoError(t, err)
	}

	t.Chdir(dir)

	out, err := execute(t, "hook", "--config", emptyConfig(t), "--color", "never", "--rule-format", "id")
	require.ErrorIs(t, err, cli.ErrLintIssuesFound, out)

	assert.Contains(t, out, "(TXT006)")
	assert.Contains(t, out, "(TXT002)")
	assert.NotContains(t, out, "untracked.txt")

	got, err := os.ReadFile(filepath.Join(dir, "trailing.txt"))
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(got), "autofix applied")

	got, err = os.ReadFile(filepath.Join(dir, "tabs.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a\tb\n", string(got), "error-severity fixes are not applied")
}

//nolint:paralleltest // t.Chdir is incompatible with t.Parallel.
func TestHook_ChecksIndexContent(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	wip := filepath.Join(dir, "wip.txt")
	require.NoError(t, os.WriteFile(wip, []byte(marker+" \n"), 0o644))
	_, err = wt.Add("wip.txt")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(wip, []byte("clean\n"), 0o644))

	t.Chdir(dir)

	out, err := execute(t, "hook", "--config", emptyConfig(t), "--color", "never", "--rule-format", "id")
	require.ErrorIs(t, err, cli.ErrLintIssuesFound, out)
	assert.Contains(t, out, "(TXT006)")

	assertFile(t, wip, "clean\n")
}

func TestRules(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)

	var rules []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Severity string `json:"severity"`
		Fixable  bool   `json:"fixable"`
		HookOnly bool   `json:"hookOnly"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	require.Len(t, rules, 6)
	assert.Equal(t, "TXT001", rules[0].ID)
	assert.Equal(t, "dos-newlines", rules[0].Name)
	assert.Equal(t, "autofix", rules[4].Severity)
	assert.True(t, rules[4].Fixable)
	assert.True(t, rules[5].HookOnly)

	out, err = execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "TXT002/tab-literal")
	assert.Contains(t, out, "TXT005/trailing-whitespace")
}

func TestInit(t *testing.T) {
	t.Parallel()

	for _, format := range []string{config.TemplateYAML, config.TemplateTOML} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "gotextlint."+format)
			args := []string{"init", "--full", "--format", format, "--max-line-length", "120", "--output", path}

			_, err := execute(t, args...)
			require.NoError(t, err)

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			cfg, err := config.Decode(path, content)
			require.NoError(t, err)
			assert.Equal(t, 120, cfg.MaxLineLength)
			assert.Contains(t, cfg.Rules, "TXT003")

			_, err = execute(t, args...)
			require.ErrorContains(t, err, "already exists")

			_, err = execute(t, append(args, "--force")...)
			require.NoError(t, err)
		})
	}
}

func TestInit_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "init", "--format", "json", "--output", filepath.Join(t.TempDir(), "x"))
	require.ErrorContains(t, err, "invalid format")
}

func TestMigrate(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		".arcconfig": `{"lint.text.maxlinelength": 100, "lint.engine": "ArcanistSingleLintEngine"}`,
	})
	input := filepath.Join(dir, ".arcconfig")
	output := filepath.Join(dir, ".gotextlint.yml")

	out, err := execute(t, "migrate", input)
	require.NoError(t, err)
	assert.Contains(t, out, "lint.engine")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# gotextlint configuration"))

	cfg, err := config.Decode(output, content)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.MaxLineLength)

	// stdin is not a terminal, so an existing file is not replaced.
	_, err = execute(t, "migrate", input)
	require.ErrorContains(t, err, "already exists")

	out, err = execute(t, "migrate", "--force", input)
	require.NoError(t, err)
	assert.Contains(t, out, "already up to date")

	_, err = execute(t, "migrate", "--force", "--format", "toml", "--output", output+".toml", input)
	require.NoError(t, err)
}

func TestRestore(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.txt":                "fixed\n",
		"a.txt.gotextlint.bak": "\toriginal \n",
		"b.txt":                "fixed\n",
		"b.txt.gotextlint.bak": "\tkept\n",
		"nobackup.txt":         "x\n",
	})
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")

	out, err := execute(t, "restore", a)
	require.NoError(t, err)
	assert.Contains(t, out, "restored")
	assertFile(t, a, "\toriginal \n")
	assert.NoFileExists(t, a+".gotextlint.bak")

	_, err = execute(t, "restore", "--keep", b)
	require.NoError(t, err)
	assertFile(t, b, "\tkept\n")
	assert.FileExists(t, b+".gotextlint.bak")

	_, err = execute(t, "restore", filepath.Join(dir, "nobackup.txt"))
	require.ErrorContains(t, err, "no backup for 1 of 1 files")
}

func TestLint_FixWithBackupThenRestore(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.txt": "a\tb \n"})
	path := filepath.Join(dir, "a.txt")
	cfgPath := filepath.Join(t.TempDir(), "gotextlint.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("backups:\n  enabled: true\n  mode: sidecar\n"), 0o644))

	_, err := execute(t, "lint", "--config", cfgPath, "--color", "never", "--fix", path)
	require.NoError(t, err)
	assertFile(t, path, "a    b\n")
	assertFile(t, path+".gotextlint.bak", "a\tb \n")

	_, err = execute(t, "restore", path)
	require.NoError(t, err)
	assertFile(t, path, "a\tb \n")
}

func assertFile(t *testing.T, path, want string) {
	t.Helper()

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestMigrate_MissingInput(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "migrate", filepath.Join(t.TempDir(), ".arcconfig"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCode(cli.ErrLintIssuesFound))
	assert.Equal(t, cli.ExitLintWarnings, cli.ExitCode(fmt.Errorf("run: %w", cli.ErrLintWarningsFound)))
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCode(errors.New("boom")))

	assert.True(t, cli.IsExitSignal(cli.ErrLintWarningsFound))
	assert.False(t, cli.IsExitSignal(errors.New("boom")))
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil, true))
}
