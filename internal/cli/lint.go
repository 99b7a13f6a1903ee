package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gotextlint/internal/configloader"
	"github.com/yaklabco/gotextlint/internal/logging"
	"github.com/yaklabco/gotextlint/pkg/config"
	"github.com/yaklabco/gotextlint/pkg/lint"
	"github.com/yaklabco/gotextlint/pkg/reporter"
	"github.com/yaklabco/gotextlint/pkg/runner"
)

type lintFlags struct {
	fix             bool
	dryRun          bool
	autofixOnly     bool
	commitHook      bool
	noBackups       bool
	format          string
	ruleFormat      string
	jobs            int
	maxLineLength   int
	extensions      []string
	ignore          []string
	enable          []string
	disable         []string
	fixRules        []string
	strict          bool
	noContext       bool
	compact         bool
	includeVendored bool
	followSymlinks  bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check text files for formatting problems",
		Long:  lintLongDescription + "\n\n" + envHelp(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, info, flags, args, nil)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Check text files for DOS newlines, literal tabs, long lines, a missing
final newline and trailing whitespace.

By default every non-binary, non-vendored file under the current directory
is checked. Specify paths to check specific files or directories.

Examples:
  gotextlint lint                       # Check current directory
  gotextlint lint docs/ main.go         # Check a directory and a file
  gotextlint lint --fix                 # Fix tabs, whitespace and final newlines
  gotextlint lint --fix --dry-run       # Show fixes as a diff without writing
  gotextlint lint --max-line-length 100 # Raise the line length limit
  gotextlint lint --format sarif        # Output SARIF for code scanning
  gotextlint lint --strict              # Fail on warnings too`

// envHelp lists the GOTEXTLINT_* variables that override config files.
func envHelp() string {
	var sb strings.Builder
	sb.WriteString("Environment:")
	vars := configloader.ListEnvVars()
	for _, name := range configloader.EnvVarNames() {
		fmt.Fprintf(&sb, "\n  %-28s %s", name, vars[name])
	}
	return sb.String()
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().BoolVar(&flags.autofixOnly, "autofix-only", false,
		"apply only fixes of autofix-severity findings")
	cmd.Flags().BoolVar(&flags.commitHook, "commit-hook", false, "also report no-commit markers")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff, summary")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&flags.maxLineLength, "max-line-length", 0,
		"line length limit in bytes (non-positive = 80)")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "only check files with these extensions")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs, names or tags to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs, names or tags to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rules")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON and SARIF output")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "also check vendored files")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symlinked directories")
}

// cliConfig builds the CLI layer of the configuration from the flags the
// user actually set, so unset flags do not mask config files.
func (f *lintFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{
		Fix:            f.fix,
		DryRun:         f.dryRun,
		AutofixOnly:    f.autofixOnly,
		CommitHookMode: f.commitHook,
		NoBackups:      f.noBackups,
	}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(f.ruleFormat)
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("max-line-length") {
		cfg.MaxLineLength = f.maxLineLength
		if f.maxLineLength <= 0 {
			// Zero would read as "unset" in the merge.
			cfg.MaxLineLength = config.DefaultMaxLineLength
		}
	}
	if changed("extensions") {
		cfg.Extensions = f.extensions
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}

	cfg.EnableRules = expandKeys(f.enable)
	cfg.DisableRules = expandKeys(f.disable)
	cfg.FixRules = expandKeys(f.fixRules)

	return cfg
}

// expandKeys resolves tags to rule IDs. Unknown keys are kept so that
// validation reports them.
func expandKeys(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}
	ids, unknown := configloader.ExpandRuleKeys(lint.DefaultRegistry, keys)
	return append(ids, unknown...)
}

// session is one resolved configuration plus the objects that run it.
type session struct {
	cfg     *config.Config
	workDir string
	runner  *runner.Runner
	logger  *log.Logger
	flags   *lintFlags
	info    BuildInfo
}

// newSession loads the configuration for cmd, layering cli on top.
func newSession(cmd *cobra.Command, info BuildInfo, flags *lintFlags, cli *config.Config) (*session, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldMaxLength, cfg.EffectiveMaxLineLength(),
		logging.FieldCommitHook, cfg.CommitHookMode,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	engine := lint.NewEngine(lint.DefaultRegistry)
	engine.Logger = logger

	return &session{
		cfg:     cfg,
		workDir: workDir,
		runner:  runner.New(lint.NewPipeline(engine)),
		logger:  logger,
		flags:   flags,
		info:    info,
	}, nil
}

// runOptions returns runner options for paths, or for files when the
// caller already knows them.
func (s *session) runOptions(paths, files []string) runner.Options {
	opts := runner.OptionsFromConfig(s.cfg, paths)
	opts.Files = files
	opts.WorkingDir = s.workDir
	opts.IncludeVendored = s.flags.includeVendored
	opts.FollowSymlinks = s.flags.followSymlinks
	return opts
}

// run lints, reports, and returns the exit code.
func (s *session) run(cmd *cobra.Command, opts runner.Options) (*runner.Result, int, error) {
	ctx := commandContext(cmd)

	s.logger.Debug("starting lint run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := s.runner.Run(ctx, opts)
	if err != nil {
		return nil, ExitLintErrors, errors.Join(errors.New("lint run failed"), err)
	}

	s.logger.Debug("lint run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldFilesStopped, result.Stats.FilesStopped,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldDiagnosticsFixed, result.Stats.DiagnosticsFixed,
	)

	for _, ferr := range result.FileErrors() {
		s.logger.Debug("file not checked", logging.FieldError, ferr)
	}

	if err := s.report(cmd, result); err != nil {
		return result, ExitLintErrors, err
	}

	return result, ExitCodeFromResult(result, s.flags.strict), nil
}

func (s *session) report(cmd *cobra.Command, result *runner.Result) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(s.cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !s.flags.noContext,
		ShowSummary: true,
		Compact:     s.flags.compact,
		RuleFormat:  s.cfg.RuleFormat,
		WorkingDir:  s.workDir,
		Registry:    lint.DefaultRegistry,
		Version:     s.info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(commandContext(cmd), result); err != nil {
		s.logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

func runLint(cmd *cobra.Command, info BuildInfo, flags *lintFlags, paths, files []string) error {
	sess, err := newSession(cmd, info, flags, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	_, code, err := sess.run(cmd, sess.runOptions(paths, files))
	if err != nil {
		return err
	}
	return errorForExitCode(code)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
