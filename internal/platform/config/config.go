// Pacote config centraliza o carregamento das variáveis de ambiente usadas pelos binários.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config agrega todos os parâmetros necessários para a API e o CLI de administração.
type Config struct {
	HTTPAddress string

	DBDriver   string
	SQLitePath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	PlacarKeyPrefix string

	AutoMigrate bool
	LogLevel    slog.Level
}

func Load() (Config, error) {
	// .env é opcional; em container as variáveis já chegam pelo ambiente.
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddress:      getEnv("HTTP_ADDRESS", ":8080"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		SQLitePath:       getEnv("SQLITE_PATH", "analise_judo.db"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "judo"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "judo"),
		PostgresDB:       getEnv("POSTGRES_DB", "analise_judo"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "require"),
		RedisEnabled:     getEnvAsBool("REDIS_ENABLED", false),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		PlacarKeyPrefix:  getEnv("PLACAR_KEY_PREFIX", "placar"),
		AutoMigrate:      getEnvAsBool("DB_AUTO_MIGRATE", true),
	}

	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		return Config{}, fmt.Errorf("config: DB_DRIVER desconhecido %q", cfg.DBDriver)
	}

	dbInt, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("config: REDIS_DB invalido: %w", err)
	}
	cfg.RedisDB = dbInt

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("config: LOG_LEVEL invalido: %w", err)
	}

	return cfg, nil
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
		c.PostgresSSLMode,
	)
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	switch value {
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return true
	}
}
