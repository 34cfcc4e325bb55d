package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/addegbenga/mip-dapp/config"
	"github.com/addegbenga/mip-dapp/logger"
)

var (
	configPath string

	cfg config.Config
	log *logger.Logger
)

// rootCmd é o comando base quando chamado sem subcomandos.
var rootCmd = &cobra.Command{
	Use:   "mip",
	Short: "MIP - registro de propriedade intelectual na Starknet",
	Long: "Servidor do registro MIP: páginas de ativos, URLs assinadas de upload,\n" +
		"ABI do contrato e sincronização dos tokens ERC721 na Starknet.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

// Execute adiciona os subcomandos ao comando raiz e executa.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("MIP_CONFIG"), "arquivo de configuração YAML")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(abiCmd)
}

func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	log, err = logger.New(logger.Options{
		Mode:       cfg.Log.Mode,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("falha ao inicializar logger: %w", err)
	}
	return nil
}
