package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration loaded from file.
type Config struct {
	ListenAddr        string        `yaml:"listen_addr"`
	GraceTimeout      time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`

	LogLevel string `yaml:"log_level"`

	// Swap fee recorded onto every pool at initialize, as a fraction.
	FeeNumerator   uint64 `yaml:"fee_numerator"`
	FeeDenominator uint64 `yaml:"fee_denominator"`

	// Optional launch pool bootstrapped at startup.
	Launch *LaunchConfig `yaml:"launch"`
}

// LaunchConfig describes a token launch performed when the server starts.
type LaunchConfig struct {
	QuoteAsset      string `yaml:"quote_asset"`
	SeedBase        uint64 `yaml:"seed_base"`
	TotalSupply     uint64 `yaml:"total_supply"`
	CreatorShareBps uint64 `yaml:"creator_share_bps"`
}

// Load reads the config from a YAML file path.
// Fails fatally if config is invalid or file is missing.
func Load(path string) Config {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open config file: os.Open: %v", err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			log.Printf("failed to close config file: f.Close: %v", err)
		}
	}(f)

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to parse config file: decoder.Decode: %v", err)
	}

	// Fallbacks
	const defaultTimeout = 5 * time.Second
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":1337"
	}
	if cfg.GraceTimeout == 0 {
		cfg.GraceTimeout = defaultTimeout
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = defaultTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.FeeDenominator == 0 {
		cfg.FeeNumerator = 3
		cfg.FeeDenominator = 1000
	}

	if cfg.FeeNumerator >= cfg.FeeDenominator {
		log.Fatalf("fee %d/%d must be a proper fraction", cfg.FeeNumerator, cfg.FeeDenominator)
	}

	return cfg
}
