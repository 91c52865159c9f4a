package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g. "debug", "info", "warn", "error"
}

// RPCConfig holds chain RPC connection settings shared by every chain client.
type RPCConfig struct {
	InfuraKey             string `yaml:"infuraKey"` // overridden by INFURA_API_KEY
	ConnectTimeoutSeconds int    `yaml:"connectTimeoutSeconds"`
	CallTimeoutSeconds    int    `yaml:"callTimeoutSeconds"`
	ConfirmTimeoutSeconds int    `yaml:"confirmTimeoutSeconds"`
	RateLimit             int    `yaml:"rateLimit"`
	BurstLimit            int    `yaml:"burstLimit"`
}

// DataAPIConfig holds settings for the upstream blockchain-data provider.
type DataAPIConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"` // overridden by DATA_API_KEY
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// LogoConfig holds settings for the token-logo image store.
type LogoConfig struct {
	Directory       string `yaml:"directory"`
	CacheTTLMinutes int    `yaml:"cacheTTLMinutes"`
}

// GasConfig holds gas-estimation settings.
type GasConfig struct {
	PollIntervalSeconds int    `yaml:"pollIntervalSeconds"`
	DefaultGasLimit     uint64 `yaml:"defaultGasLimit"`
}

// SessionConfig holds wallet-session settings.
type SessionConfig struct {
	RefreshDelaySeconds int    `yaml:"refreshDelaySeconds"` // delay between a confirmed send and the follow-up refetch
	IPFSGateway         string `yaml:"ipfsGateway"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	RPC     RPCConfig     `yaml:"rpc"`
	DataAPI DataAPIConfig `yaml:"dataApi"`
	Logos   LogoConfig    `yaml:"logos"`
	Gas     GasConfig     `yaml:"gas"`
	Session SessionConfig `yaml:"session"`
}

// Load reads the YAML configuration file from the given path, unmarshals it
// and applies defaults for everything not set.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	// Secrets may come from the environment instead of the file.
	if key := os.Getenv("INFURA_API_KEY"); key != "" {
		cfg.RPC.InfuraKey = key
	}
	if key := os.Getenv("DATA_API_KEY"); key != "" {
		cfg.DataAPI.APIKey = key
	}

	if cfg.RPC.InfuraKey == "" {
		logrus.Warn("RPC Infura key not set; chain RPC calls will fail against key-gated endpoints")
	}
	if cfg.DataAPI.APIKey == "" {
		logrus.Warn("Data API key not set; wallet data fetches will likely be rejected upstream")
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "3000"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 120 // confirmation waits ride on slow responses
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.RPC.ConnectTimeoutSeconds <= 0 {
		cfg.RPC.ConnectTimeoutSeconds = 10
	}
	if cfg.RPC.CallTimeoutSeconds <= 0 {
		cfg.RPC.CallTimeoutSeconds = 10
	}
	if cfg.RPC.ConfirmTimeoutSeconds <= 0 {
		cfg.RPC.ConfirmTimeoutSeconds = 90
	}
	if cfg.RPC.RateLimit <= 0 {
		cfg.RPC.RateLimit = 10
	}
	if cfg.RPC.BurstLimit <= 0 {
		cfg.RPC.BurstLimit = 20
	}
	if cfg.DataAPI.BaseURL == "" {
		cfg.DataAPI.BaseURL = "https://deep-index.moralis.io/api/v2.2"
	}
	if cfg.DataAPI.RequestTimeoutMillis <= 0 {
		cfg.DataAPI.RequestTimeoutMillis = 10000
	}
	if cfg.Logos.Directory == "" {
		cfg.Logos.Directory = "data/cryptoicons"
	}
	if cfg.Logos.CacheTTLMinutes <= 0 {
		cfg.Logos.CacheTTLMinutes = 60
	}
	if cfg.Gas.PollIntervalSeconds <= 0 {
		cfg.Gas.PollIntervalSeconds = 10
	}
	if cfg.Gas.DefaultGasLimit == 0 {
		cfg.Gas.DefaultGasLimit = 21000
	}
	if cfg.Session.RefreshDelaySeconds <= 0 {
		cfg.Session.RefreshDelaySeconds = 4
	}
	if cfg.Session.IPFSGateway == "" {
		cfg.Session.IPFSGateway = "ipfs.io"
	}
}
