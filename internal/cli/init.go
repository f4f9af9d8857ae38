package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/twodo/internal/config"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var userID, storeURL, dbPath string
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize twodo in the current directory",
		Long: `Write .twodo/config.json in the current directory.

The user id acts as the signed-in identity; leave it out to stay logged
out. With --store-url the engine syncs against a remote store instead of
the local database.

Examples:
  twodo init --user alice
  twodo init --user alice --store-url http://deskpi:8080
  twodo init --user alice --lat 52.52 --lon 13.405`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve working directory: %w", err)
			}

			cfg := &config.Config{
				Version:  "1.0",
				UserID:   userID,
				StoreURL: storeURL,
				DBPath:   dbPath,
			}
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
				cfg.PinLatitude, cfg.PinLongitude = &lat, &lon
			}

			if err := config.SaveConfig(cwd, cfg); err != nil {
				return err
			}

			fmt.Println("✓ Wrote .twodo/config.json")
			if userID == "" {
				fmt.Println("  No user set; run again with --user to log in")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id to sign in as")
	cmd.Flags().StringVar(&storeURL, "store-url", "", "remote task store base URL")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "local database path (default ~/.twodo/twodo.db)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "pinned latitude for new tasks")
	cmd.Flags().Float64Var(&lon, "lon", 0, "pinned longitude for new tasks")

	return cmd
}
