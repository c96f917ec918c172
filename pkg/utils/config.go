package utils

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Gamification GamificationConfig
	CORS         CORSConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// JWTConfig holds what is needed to verify bearer tokens. Tokens are issued elsewhere.
type JWTConfig struct {
	Secret string
	Issuer string
}

type GamificationConfig struct {
	ReviewPoints int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// LoadConfig reads an optional .env file, then environment variables on top.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "menurate")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("REVIEW_POINTS", 10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	if _, err := os.Stat(".env"); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	v.AutomaticEnv()

	return configFrom(v), nil
}

// Validate reports settings the API server cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	if c.Gamification.ReviewPoints < 0 {
		errs = append(errs, errors.New("REVIEW_POINTS must not be negative"))
	}
	return errors.Join(errs...)
}

func configFrom(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Issuer: v.GetString("JWT_ISSUER"),
		},
		Gamification: GamificationConfig{
			ReviewPoints: v.GetInt("REVIEW_POINTS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
