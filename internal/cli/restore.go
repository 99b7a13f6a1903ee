package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotextlint/internal/logging"
	"github.com/yaklabco/gotextlint/pkg/fsutil"
)

func newRestoreCommand() *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "restore <files...>",
		Short: "Restore files from their sidecar backups",
		Long: `Restore files from the "` + fsutil.BackupSuffix + `" backups written by
'gotextlint lint --fix' when backups are enabled. Backups are removed
after a successful restore unless --keep is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args, keep)
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", false, "keep backups after restoring")

	return cmd
}

func runRestore(cmd *cobra.Command, paths []string, keep bool) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive(cmd.OutOrStdout())
	mode := fsutil.BackupModeSidecar

	missing := 0
	for _, path := range paths {
		if !fsutil.BackupExists(path, mode) {
			logger.Warn("no backup found", logging.FieldPath, path)
			missing++
			continue
		}

		if _, err := fsutil.RestoreBackup(ctx, path, mode); err != nil {
			return fmt.Errorf("restore %s: %w", path, err)
		}
		if !keep {
			if _, err := fsutil.RemoveBackup(path, mode); err != nil {
				return fmt.Errorf("restore %s: %w", path, err)
			}
		}
		logger.Info("restored", logging.FieldPath, path)
	}

	if missing > 0 {
		return fmt.Errorf("no backup for %d of %d files", missing, len(paths))
	}
	return nil
}
