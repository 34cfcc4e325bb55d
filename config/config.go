package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config reúne toda a configuração do servidor MIP.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Pinata   PinataConfig   `yaml:"pinata"`
	Starknet StarknetConfig `yaml:"starknet"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	PublicBaseURL   string        `yaml:"public_base_url"`   // usado para montar o link de compartilhamento
	MetadataBaseURL string        `yaml:"metadata_base_url"` // fallback do metadata URI
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type StorageConfig struct {
	Driver      string        `yaml:"driver"` // memory ou postgres
	DatabaseURL string        `yaml:"database_url"`
	CacheTTL    time.Duration `yaml:"cache_ttl"` // 0 desliga o cache
}

type PinataConfig struct {
	JWT        string        `yaml:"jwt"`
	UploadsURL string        `yaml:"uploads_url"`
	Timeout    time.Duration `yaml:"timeout"`
}

type StarknetConfig struct {
	RPCURL          string        `yaml:"rpc_url"`
	ContractAddress string        `yaml:"contract_address"`
	ExplorerURL     string        `yaml:"explorer_url"`
	StartBlock      uint64        `yaml:"start_block"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	ChunkSize       int           `yaml:"chunk_size"`
	ListenerEnabled bool          `yaml:"listener_enabled"`
}

// Default retorna a configuração padrão.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			PublicBaseURL:   "http://localhost:3000",
			MetadataBaseURL: "https://api.mip.app/metadata",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Mode:       "dev",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		Storage: StorageConfig{
			Driver:   "memory",
			CacheTTL: 5 * time.Minute,
		},
		Pinata: PinataConfig{
			UploadsURL: "https://uploads.pinata.cloud",
			Timeout:    15 * time.Second,
		},
		Starknet: StarknetConfig{
			ExplorerURL:  "https://sepolia.voyager.online",
			PollInterval: 15 * time.Second,
			ChunkSize:    100,
		},
	}
}

// Load lê o arquivo YAML (opcional) e aplica as variáveis de ambiente por cima.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("falha ao ler arquivo de configuração: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("falha ao interpretar arquivo de configuração: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate verifica combinações inválidas de configuração.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("storage.database_url é obrigatório com driver postgres")
		}
	default:
		return fmt.Errorf("driver de storage desconhecido: %q", c.Storage.Driver)
	}
	if c.Starknet.ListenerEnabled && (c.Starknet.RPCURL == "" || c.Starknet.ContractAddress == "") {
		return fmt.Errorf("listener exige starknet.rpc_url e starknet.contract_address")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	str("MIP_ADDR", &cfg.Server.Addr)
	str("MIP_PUBLIC_BASE_URL", &cfg.Server.PublicBaseURL)
	str("MIP_METADATA_BASE_URL", &cfg.Server.MetadataBaseURL)
	str("MIP_LOG_MODE", &cfg.Log.Mode)
	str("MIP_LOG_FILE", &cfg.Log.File)
	str("MIP_STORAGE_DRIVER", &cfg.Storage.Driver)
	str("DATABASE_URL", &cfg.Storage.DatabaseURL)
	str("PINATA_JWT", &cfg.Pinata.JWT)
	str("PINATA_UPLOADS_URL", &cfg.Pinata.UploadsURL)
	str("STARKNET_RPC_URL", &cfg.Starknet.RPCURL)
	str("MIP_CONTRACT_ADDRESS", &cfg.Starknet.ContractAddress)
	str("MIP_EXPLORER_URL", &cfg.Starknet.ExplorerURL)

	if v := strings.TrimSpace(os.Getenv("MIP_CACHE_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MIP_CACHE_TTL inválido: %w", err)
		}
		cfg.Storage.CacheTTL = d
	}
	if v := strings.TrimSpace(os.Getenv("MIP_START_BLOCK")); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MIP_START_BLOCK inválido: %w", err)
		}
		cfg.Starknet.StartBlock = n
	}
	if v := strings.TrimSpace(os.Getenv("MIP_LISTENER_ENABLED")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MIP_LISTENER_ENABLED inválido: %w", err)
		}
		cfg.Starknet.ListenerEnabled = b
	}
	return nil
}
