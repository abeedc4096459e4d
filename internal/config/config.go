// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Identity strategy names accepted by extract.identity.
const (
	IdentityRandom  = "random"
	IdentityNatural = "natural"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Source    SourceConfig    `mapstructure:"source"`
	DB        DBConfig        `mapstructure:"db"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Documents DocumentsConfig `mapstructure:"documents"`
	Connect   ConnectConfig   `mapstructure:"connect"`
	Extract   ExtractConfig   `mapstructure:"extract"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// SourceConfig names the feed files to ingest.
type SourceConfig struct {
	Name  string   `mapstructure:"name"`
	Paths []string `mapstructure:"paths"`
}

// DBConfig controls access to the durable relational store.
type DBConfig struct {
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
}

// CacheConfig controls the cache store client.
type CacheConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DocumentsConfig controls the document store client.
type DocumentsConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// ConnectConfig bounds sink connection establishment retries.
type ConnectConfig struct {
	Attempts     int `mapstructure:"attempts"`
	DelaySeconds int `mapstructure:"delay_seconds"`
}

// ExtractConfig selects the record identity strategy.
type ExtractConfig struct {
	Identity string `mapstructure:"identity"`
}

// ServerConfig controls the ops HTTP endpoint.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INGEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.name", "jobs-feed")
	v.SetDefault("source.paths", []string{})
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_conns", 8)
	v.SetDefault("db.min_conns", 1)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.db", 0)
	v.SetDefault("documents.uri", "mongodb://localhost:27017")
	v.SetDefault("documents.database", "jobs")
	v.SetDefault("documents.collection", "jobs")
	v.SetDefault("connect.attempts", 3)
	v.SetDefault("connect.delay_seconds", 5)
	v.SetDefault("extract.identity", IdentityRandom)
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if len(c.Source.Paths) == 0 {
		return fmt.Errorf("source.paths must name at least one feed file")
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("db.dsn is required")
	}
	if c.Connect.Attempts <= 0 {
		return fmt.Errorf("connect.attempts must be > 0")
	}
	if c.Connect.DelaySeconds < 0 {
		return fmt.Errorf("connect.delay_seconds must be >= 0")
	}
	if c.Extract.Identity != IdentityRandom && c.Extract.Identity != IdentityNatural {
		return fmt.Errorf("extract.identity must be %q or %q", IdentityRandom, IdentityNatural)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	return nil
}

// ConnectDelay converts the retry delay into a duration.
func (c Config) ConnectDelay() time.Duration {
	return time.Duration(c.Connect.DelaySeconds) * time.Second
}
