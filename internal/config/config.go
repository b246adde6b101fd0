package config

import (
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	ShutdownTimeout time.Duration

	MySQLDSN         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPass           string
	DBName           string
	DBConnectTimeout time.Duration
	DBQueryTimeout   time.Duration
	DBMaxOpenConns   int
	DBMaxIdleConns   int
	DBConnMaxLife    time.Duration
	AutoMigrate      bool

	BcryptCost int

	RedisAddr    string
	RedisDB      int
	RedisPass    string
	UserCacheTTL time.Duration

	LogLevel    string
	LogFormat   string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present;
// variables already set in the environment take precedence over it.
func Load() *Config {
	_ = godotenv.Load()

	port := getEnv("PORT", "")
	if port == "" {
		port = getEnv("SERVER_PORT", "3000")
	}

	return &Config{
		ServerPort:      port,
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		MySQLDSN:         os.Getenv("MYSQL_DSN"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "3306"),
		DBUser:           getEnv("DB_USER", "root"),
		DBPass:           os.Getenv("DB_PASS"),
		DBName:           getEnv("DB_NAME", "usuarios"),
		DBConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		DBQueryTimeout:   getEnvDuration("DB_QUERY_TIMEOUT", 5*time.Second),
		DBMaxOpenConns:   getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:   getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLife:    getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		AutoMigrate:      getEnvBool("AUTO_MIGRATE", true),

		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		UserCacheTTL: getEnvDuration("USER_CACHE_TTL", 5*time.Minute),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

// DSN returns the MySQL data source name. MYSQL_DSN wins over the DB_* keys.
func (c *Config) DSN() string {
	if c.MySQLDSN != "" {
		return c.MySQLDSN
	}

	mc := mysql.NewConfig()
	mc.User = c.DBUser
	mc.Passwd = c.DBPass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.DBHost, c.DBPort)
	mc.DBName = c.DBName
	mc.ParseTime = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	mc.Timeout = c.DBConnectTimeout
	mc.ReadTimeout = c.DBQueryTimeout
	mc.WriteTimeout = c.DBQueryTimeout
	return mc.FormatDSN()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
