package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotextlint/internal/logging"
	"github.com/yaklabco/gotextlint/internal/vcs"
	"github.com/yaklabco/gotextlint/pkg/lint"
	"github.com/yaklabco/gotextlint/pkg/runner"
)

func newHookCommand(info BuildInfo) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Check staged files before a commit",
		Long: `Check the files staged in the git index, as a pre-commit hook.

The content recorded in the index is checked, which is what the commit
will contain. Hook mode also reports "@no` + `commit" markers. Autofix findings
(trailing whitespace) are fixed in the working tree when it matches the
index; re-stage the files to commit the fixes. The hook fails when
error-severity findings remain.

Install it with:
  printf '#!/bin/sh\nexec gotextlint hook\n' > .git/hooks/pre-commit
  chmod +x .git/hooks/pre-commit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHook(cmd, info, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff, summary")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")

	return cmd
}

func runHook(cmd *cobra.Command, info BuildInfo, flags *lintFlags) error {
	flags.commitHook = true
	flags.autofixOnly = true

	sess, err := newSession(cmd, info, flags, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	staged, err := vcs.StagedContents(commandContext(cmd), sess.workDir)
	if err != nil {
		if errors.Is(err, vcs.ErrNotRepository) {
			return fmt.Errorf("hook must run inside a git repository: %w", err)
		}
		return fmt.Errorf("read staged files: %w", err)
	}

	contents := make([]runner.Content, 0, len(staged))
	for _, file := range staged {
		if runner.IsBinaryContent(file.Content) {
			continue
		}
		if !file.InSync {
			sess.logger.Debug("working tree differs from index; checking the staged content",
				logging.FieldPath, file.Path)
		}
		contents = append(contents, runner.Content{Path: file.Path, Data: file.Content})
	}

	if len(contents) == 0 {
		sess.logger.Debug("no staged text files")
		return nil
	}

	opts := sess.runOptions(nil, nil)
	opts.Contents = contents

	result, code, err := sess.run(cmd, opts)
	if err != nil {
		return err
	}

	if result.Stats.FilesModified > 0 {
		sess.logger.Warn("fixed staged files in the working tree; re-stage them before committing",
			logging.FieldFilesModified, result.Stats.FilesModified)
	}
	for _, outcome := range result.Files {
		if outcome.Result != nil && outcome.Result.SkipReason == lint.SkipReasonUnstagedChanges {
			sess.logger.Warn("autofixes not applied; the working tree has unstaged changes",
				logging.FieldPath, outcome.Path)
		}
	}

	return errorForExitCode(code)
}
