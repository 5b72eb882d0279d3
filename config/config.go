package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig
	Session SessionConfig
	List    ListConfig
	Stub    StubConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	File string
}

type ListConfig struct {
	PageSize       int
	PickerPageSize int
	SortBy         string
	SortDir        string
}

type StubConfig struct {
	Port          string
	JWTSecret     string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// The .env file is optional; environment variables alone are enough.
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	timeout, err := time.ParseDuration(viper.GetString("HTTP_TIMEOUT"))
	if err != nil {
		timeout = 30 * time.Second
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	config := &Config{
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Timeout: timeout,
		},
		Session: SessionConfig{
			File: viper.GetString("SESSION_FILE"),
		},
		List: ListConfig{
			PageSize:       viper.GetInt("DEFAULT_PAGE_SIZE"),
			PickerPageSize: viper.GetInt("PICKER_PAGE_SIZE"),
			SortBy:         viper.GetString("DEFAULT_SORT_BY"),
			SortDir:        viper.GetString("DEFAULT_SORT_DIR"),
		},
		Stub: StubConfig{
			Port:          viper.GetString("STUB_PORT"),
			JWTSecret:     viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
	}

	applyDefaults(config)

	return config, nil
}

func applyDefaults(c *Config) {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:8080/api"
	}
	if c.Session.File == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.Session.File = filepath.Join(home, ".navident", "session.json")
	}
	if c.List.PageSize <= 0 {
		c.List.PageSize = 10
	}
	if c.List.PickerPageSize <= 0 {
		c.List.PickerPageSize = 100
	}
	if c.List.SortBy == "" {
		c.List.SortBy = "createdAt"
	}
	if c.List.SortDir == "" {
		c.List.SortDir = "desc"
	}
	if c.Stub.Port == "" {
		c.Stub.Port = "8080"
	}
	if c.Stub.JWTSecret == "" {
		c.Stub.JWTSecret = "navident-stub-secret"
	}
}
