package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/addegbenga/mip-dapp/models"
	"github.com/addegbenga/mip-dapp/storage"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Grava os ativos de demonstração no PostgreSQL",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Storage.DatabaseURL == "" {
			return fmt.Errorf("seed exige storage.database_url (DATABASE_URL)")
		}
		db, err := storage.NewDB(cfg.Storage.DatabaseURL, log)
		if err != nil {
			return err
		}
		defer db.Close()
		return seedAssets(cmd.Context(), db, cmd.OutOrStdout())
	},
}

func seedAssets(ctx context.Context, w storage.AssetWriter, out io.Writer) error {
	fx, err := storage.LoadFixtures()
	if err != nil {
		return err
	}
	total := 0
	for _, c := range models.ResolutionOrder {
		for i, a := range fx[c] {
			if err := w.SaveAsset(ctx, c, i, a); err != nil {
				return fmt.Errorf("falha ao gravar %s/%s: %w", c, a.Slug, err)
			}
			total++
		}
	}
	fmt.Fprintf(out, "%d ativos gravados\n", total)
	return nil
}
