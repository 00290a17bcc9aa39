package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        int
	Database          DatabaseConfig
	JWT               JWTConfig
	USAJobs           USAJobsConfig
	Redis             RedisConfig
	CORSAllowedOrigin string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

// JWTConfig holds the signing key and the issuer/audience values embedded
// in every session token.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TokenTTL time.Duration
}

// USAJobsConfig holds credentials for the external USAJOBS search API.
// The API identifies callers by the registered email in User-Agent plus
// an Authorization-Key header.
type USAJobsConfig struct {
	BaseURL   string
	UserAgent string
	APIKey    string
}

// RedisConfig holds the job-search cache settings. An empty Addr disables
// caching entirely.
type RedisConfig struct {
	Addr     string
	CacheTTL time.Duration
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "govjobs"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "govjobs_db"),
		UseSSL:   getEnvBool("DB_USE_SSL", false),
	}

	jwtConfig := JWTConfig{
		Secret:   getEnv("JWT_SECRET", ""),
		Issuer:   getEnv("JWT_ISSUER", "govjobs-api"),
		Audience: getEnv("JWT_AUDIENCE", "govjobs-dashboard"),
		TokenTTL: getEnvDuration("JWT_TOKEN_TTL", time.Hour),
	}

	usaJobsConfig := USAJobsConfig{
		BaseURL:   getEnv("USAJOBS_BASE_URL", "https://data.usajobs.gov"),
		UserAgent: getEnv("USAJOBS_USER_AGENT", ""),
		APIKey:    getEnv("USAJOBS_API_KEY", ""),
	}

	redisConfig := RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		CacheTTL: getEnvDuration("REDIS_CACHE_TTL", 10*time.Minute),
	}

	return Config{
		ServerPort:        getEnvInt("SERVER_PORT", 8080),
		Database:          dbConfig,
		JWT:               jwtConfig,
		USAJobs:           usaJobsConfig,
		Redis:             redisConfig,
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:4200"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		return valueStr == "true" || valueStr == "1"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
