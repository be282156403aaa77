package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		Port    string        `mapstructure:"port"`
		Timeout time.Duration `mapstructure:"timeout"`
		// plan generations allowed per client IP per minute
		PlanRateLimit  int      `mapstructure:"planRateLimit"`
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	Metrics struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Allocator struct {
		Mode      string `mapstructure:"mode"`
		Seed      uint64 `mapstructure:"seed"`
		ShareUsed bool   `mapstructure:"shareUsed"`
	} `mapstructure:"allocator"`
	Spots struct {
		Source   string        `mapstructure:"source"`
		Timeout  time.Duration `mapstructure:"timeout"`
		CacheTTL time.Duration `mapstructure:"cacheTTL"`
		Naver    struct {
			BaseURL      string `mapstructure:"baseURL"`
			ClientID     string `mapstructure:"clientID"`
			ClientSecret string `mapstructure:"clientSecret"`
			Display      int    `mapstructure:"display"`
		} `mapstructure:"naver"`
		Gemini struct {
			APIKey string `mapstructure:"apiKey"`
			Model  string `mapstructure:"model"`
			Count  int    `mapstructure:"count"`
		} `mapstructure:"gemini"`
	} `mapstructure:"spots"`
	Session struct {
		Store      string        `mapstructure:"store"`
		CookieName string        `mapstructure:"cookieName"`
		TTL        time.Duration `mapstructure:"ttl"`
	} `mapstructure:"session"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// SPOTS_NAVER_CLIENTID overrides spots.naver.clientID
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}

// Embedded returns the configuration compiled into the binary, ignoring files
// on disk and the environment.
func Embedded() (Config, error) {
	var config Config
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
		return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}
