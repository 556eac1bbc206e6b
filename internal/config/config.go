package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	App      AppConfig      `json:"app" mapstructure:"app"`
	Database DatabaseConfig `json:"database" mapstructure:"database"`
	Redis    RedisConfig    `json:"redis" mapstructure:"redis"`
	JWT      JWTConfig      `json:"jwt" mapstructure:"jwt"`
	SMTP     SMTPConfig     `json:"smtp" mapstructure:"smtp"`
	Avatar   AvatarConfig   `json:"avatar" mapstructure:"avatar"`
}

type AppConfig struct {
	Env       string  `json:"env" mapstructure:"env"`               // local / prod
	HTTPAddr  string  `json:"http_addr" mapstructure:"http_addr"`   // API listen address
	BaseURL   string  `json:"base_url" mapstructure:"base_url"`     // public origin used in email links
	RateLimit float64 `json:"rate_limit" mapstructure:"rate_limit"` // tokens per second on auth routes
	RateBurst float64 `json:"rate_burst" mapstructure:"rate_burst"` // bucket capacity
}

type DatabaseConfig struct {
	DSN string `json:"dsn" mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `json:"addr" mapstructure:"addr"`
	Password string `json:"password" mapstructure:"password"`
}

type JWTConfig struct {
	SigningKey      string   `json:"signing_key" mapstructure:"signing_key"`
	ExpirationHours int      `json:"expiration_hours" mapstructure:"expiration_hours"`
	Issuer          string   `json:"issuer" mapstructure:"issuer"`
	Audience        []string `json:"audience" mapstructure:"audience"`
}

func (c JWTConfig) GetSigningKey() string   { return c.SigningKey }
func (c JWTConfig) GetTokenExpiration() int { return c.ExpirationHours }
func (c JWTConfig) GetIssuer() string       { return c.Issuer }
func (c JWTConfig) GetAudience() []string   { return c.Audience }

type SMTPConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     int    `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	From     string `json:"from" mapstructure:"from"`
}

type AvatarConfig struct {
	BaseURL string `json:"base_url" mapstructure:"base_url"`
}

// Load reads configuration from an optional yaml file and GENKAN_*
// environment variables, with sane local defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.env", "local")
	v.SetDefault("app.http_addr", ":8080")
	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("app.rate_limit", 5.0)
	v.SetDefault("app.rate_burst", 10.0)
	v.SetDefault("database.dsn", "file:genkan.db?cache=shared&mode=rwc")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("jwt.expiration_hours", 72)
	v.SetDefault("jwt.issuer", "genkan")
	v.SetDefault("smtp.port", 587)

	v.SetEnvPrefix("GENKAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
