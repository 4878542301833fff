package cli

import (
	"fmt"
	"time"

	"github.com/albertogalvisvml/labelpdfapp/internal/services/storage"
	"github.com/spf13/cobra"
)

// cleanupCommand creates the cleanup command.
func (c *CLI) cleanupCommand() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete generated PNGs and PDFs older than a given age",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			age := cfg.Retention.MaxAge
			if cmd.Flags().Changed("older-than") {
				age = olderThan
			}
			if age <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}

			// Cleanup only touches the local directories.
			cfg.Redis.Addr = ""
			cfg.Supabase.URL = ""

			store, err := storage.NewStorageService(cfg, c.Logger)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer store.Close()

			deleted, err := store.CleanupOlderThan(cmd.Context(), age)
			if err != nil {
				return fmt.Errorf("cleanup: %w", err)
			}

			c.printf("Deleted %d files older than %s\n", deleted, age)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 72*time.Hour, "minimum age of files to delete (default from OUTPUT_RETENTION)")

	return cmd
}
