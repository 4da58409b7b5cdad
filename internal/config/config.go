package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config pg-availability（房态聚合服务）配置
type Config struct {
	HTTP struct {
		Addr string
	}

	// PG 后端 API（房间/楼层数据来源）
	Backend struct {
		BaseURL    string // 如 "http://localhost:5000"
		Token      string // Bearer token（由后端签发）
		Timeout    time.Duration
		RetryCount int
	}

	// 默认分店（服务启动时预加载，空则不预加载）
	Availability struct {
		DefaultBranchID string
	}

	// Redis 快照缓存（REDIS_ADDR 为空则禁用缓存）
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	CacheTTL time.Duration

	// 历史快照存储（可选）
	DBEnabled bool
	Database  DatabaseConfig

	Log struct {
		Level  string
		Format string
	}
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Database +
		" sslmode=" + c.SSLMode
}

// Load 加载配置（.env 可选，环境变量优先）
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8086")

	cfg.Backend.BaseURL = getEnv("PG_BACKEND_URL", "http://localhost:5000")
	cfg.Backend.Token = getEnv("PG_BACKEND_TOKEN", "")
	cfg.Backend.Timeout = time.Duration(parseInt(getEnv("PG_BACKEND_TIMEOUT", "15"), 15)) * time.Second
	cfg.Backend.RetryCount = parseInt(getEnv("PG_BACKEND_RETRY_COUNT", "2"), 2)

	cfg.Availability.DefaultBranchID = getEnv("PG_DEFAULT_BRANCH_ID", "")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)
	cfg.CacheTTL = time.Duration(parseInt(getEnv("SNAPSHOT_CACHE_TTL", "300"), 300)) * time.Second

	// 默认关闭：没有数据库时服务仍可完整工作（只是没有历史记录）
	cfg.DBEnabled = getEnv("DB_ENABLED", "false") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "pgadmin")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
