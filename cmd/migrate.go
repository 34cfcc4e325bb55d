package cmd

import (
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"

	"github.com/addegbenga/mip-dapp/storage"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Aplica ou desfaz as migrações do PostgreSQL",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Storage.DatabaseURL == "" {
			return fmt.Errorf("migrate exige storage.database_url (DATABASE_URL)")
		}
		dir := migrate.Up
		if len(args) == 1 {
			switch args[0] {
			case "up":
			case "down":
				dir = migrate.Down
			default:
				return fmt.Errorf("direção inválida: %q", args[0])
			}
		}
		db, err := storage.Open(cfg.Storage.DatabaseURL, log)
		if err != nil {
			return err
		}
		defer db.Close()
		n, err := db.Migrate(dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migrações aplicadas\n", n)
		return nil
	},
}
