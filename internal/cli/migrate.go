package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gotextlint/internal/configloader"
	"github.com/yaklabco/gotextlint/internal/logging"
	"github.com/yaklabco/gotextlint/pkg/config"
	"github.com/yaklabco/gotextlint/pkg/fsutil"
)

type migrateFlags struct {
	force  bool
	format string
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [.arcconfig]",
		Short: "Convert .arcconfig text lint settings to gotextlint format",
		Long: `Convert the "lint.text.maxlinelength" setting of an .arcconfig file into a
gotextlint configuration file. Other lint settings are reported and skipped.

Without an argument the nearest .arcconfig above the current directory is used.
When the output file exists you are asked before it is replaced, unless
--force is given or stdin is not a terminal (then the command fails).

Examples:
  gotextlint migrate                    Convert the nearest .arcconfig
  gotextlint migrate path/.arcconfig    Convert a specific file
  gotextlint migrate --format toml      Write .gotextlint.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVar(&flags.format, "format", config.TemplateYAML, "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path")

	return cmd
}

func runMigrate(cmd *cobra.Command, flags *migrateFlags) error {
	logger := logging.NewInteractive(cmd.OutOrStdout())

	if flags.format != config.TemplateYAML && flags.format != config.TemplateTOML {
		return fmt.Errorf("invalid format %q: must be yaml or toml", flags.format)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	inputPath := flags.input
	if inputPath == "" {
		paths, err := configloader.DiscoverPaths(commandContext(cmd), cwd)
		if err != nil {
			return fmt.Errorf("discover paths: %w", err)
		}
		if paths.Arcconfig == "" {
			return errors.New("no .arcconfig found in the current directory or its parents")
		}
		inputPath = paths.Arcconfig
		logger.Info("found .arcconfig", logging.FieldPath, inputPath)
	}

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.MigrationTarget(filepath.Dir(inputPath), flags.format)
	}

	if _, err := os.Stat(outputPath); err == nil && !flags.force {
		ok, err := confirmOverwrite(cmd, outputPath)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("migration cancelled")
			return nil
		}
	}

	result, err := configloader.ConvertArcconfig(inputPath)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	content, err := configloader.EncodeMigration(result, flags.format)
	if err != nil {
		return fmt.Errorf("serialize configuration: %w", err)
	}

	written, err := fsutil.WriteAtomicIfChanged(commandContext(cmd), outputPath, content, configFilePermissions)
	if err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	if !written {
		logger.Info("configuration already up to date", logging.FieldOutput, outputPath)
		return nil
	}

	logger.Info("migration complete",
		logging.FieldConfig, inputPath,
		logging.FieldOutput, outputPath,
		logging.FieldMaxLength, result.Config.MaxLineLength,
	)
	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	return nil
}

// confirmOverwrite asks before replacing path. Without a terminal on stdin
// there is nobody to ask, so it refuses.
func confirmOverwrite(cmd *cobra.Command, path string) (bool, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return false, fmt.Errorf("output file %q already exists; use --force to overwrite", path)
	}
	return promptYesNo(in, cmd.OutOrStdout(), fmt.Sprintf("Overwrite %s? [y/N] ", path))
}

func promptYesNo(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := io.WriteString(out, prompt); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
