package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "config/config.yaml"

	// EnvConfigPath overrides the config file location when set.
	EnvConfigPath = "VERDE_CONFIG"
)

type HTTPConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
	TLS         Certs    `yaml:"tls"`
}

type Certs struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type AuthConfig struct {
	// Passphrase is the shared secret for the records surface.
	// PassphraseHash (bcrypt) takes precedence when both are set.
	Passphrase        string `yaml:"passphrase"`
	PassphraseHash    string `yaml:"passphrase_hash"`
	JWTSecret         string `yaml:"jwt_secret"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // mysql | sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Path     string `yaml:"path"` // sqlite file
}

type FileConfig struct {
	Path string `yaml:"path"`
}

type SpreadsheetConfig struct {
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet"`
}

type StorageConfig struct {
	// Backend selects the record store: database | file | spreadsheet.
	Backend     string            `yaml:"backend"`
	Database    DatabaseConfig    `yaml:"database"`
	File        FileConfig        `yaml:"file"`
	Spreadsheet SpreadsheetConfig `yaml:"spreadsheet"`
}

type Config struct {
	Mode    string        `yaml:"mode"` // dev | release
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Storage StorageConfig `yaml:"storage"`
}

func Load(path string) (*Config, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		path = env
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = "dev"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8443"
	}
	if c.Auth.SessionTTLMinutes <= 0 {
		c.Auth.SessionTTLMinutes = 8 * 60
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.File.Path == "" {
		c.Storage.File.Path = "data/emprestimos.csv"
	}
	if c.Storage.Spreadsheet.Path == "" {
		c.Storage.Spreadsheet.Path = "data/emprestimos.xlsx"
	}
	if c.Storage.Spreadsheet.Sheet == "" {
		c.Storage.Spreadsheet.Sheet = "Emprestimos"
	}
	if c.Storage.Database.Driver == "" {
		c.Storage.Database.Driver = "sqlite"
	}
	if c.Storage.Database.Path == "" {
		c.Storage.Database.Path = "data/emprestimos.db"
	}
}

func (c *Config) validate() error {
	if c.Mode != "dev" && c.Mode != "release" {
		return fmt.Errorf("invalid mode %q (want dev or release)", c.Mode)
	}
	switch c.Storage.Backend {
	case "database", "file", "spreadsheet":
	default:
		return fmt.Errorf("invalid storage backend %q (want database, file or spreadsheet)", c.Storage.Backend)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Auth.Passphrase == "" && c.Auth.PassphraseHash == "" {
		return fmt.Errorf("auth.passphrase or auth.passphrase_hash is required")
	}
	return nil
}
