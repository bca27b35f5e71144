package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values.
// Sensitive data never has defaults inside code and must be provided
// via the config file or the environment.
type AppConfig struct {
	AppPort   string
	JWTSecret string
	// Database
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Redis for response caching
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	// HTTP surface
	RateLimitPerMinute int
	AllowedOrigins     []string
	GinMode            string
	GinPath            string
	// Logging
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once
// during boot. Precedence: config/config.json -> defaults -> environment
// variable overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// loadJSONConfig reads a grouped JSON file into out if present.
// Returns an error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // missing file is fine
	}
	defer f.Close()

	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	getString := func(m map[string]any, key string) string {
		if s, ok := m[key].(string); ok {
			return s
		}
		return ""
	}
	getInt := func(m map[string]any, key string) int {
		switch t := m[key].(type) {
		case float64:
			return int(t)
		case int:
			return t
		}
		return 0
	}
	getBool := func(m map[string]any, key string) bool {
		b, _ := m[key].(bool)
		return b
	}
	getStringSlice := func(m map[string]any, key string) []string {
		arr, ok := m[key].([]any)
		if !ok {
			return nil
		}
		res := make([]string, 0, len(arr))
		for _, it := range arr {
			if s, ok := it.(string); ok {
				res = append(res, s)
			}
		}
		return res
	}

	if app, ok := raw["app"].(map[string]any); ok {
		out.AppPort = getString(app, "AppPort")
		out.JWTSecret = getString(app, "JWTSecret")
		if v := getInt(app, "RateLimitPerMinute"); v != 0 {
			out.RateLimitPerMinute = v
		}
		if list := getStringSlice(app, "AllowedOrigins"); len(list) > 0 {
			out.AllowedOrigins = list
		}
	}

	if dbs, ok := raw["database"].(map[string]any); ok {
		out.DatabaseURI = getString(dbs, "DatabaseURI")
		out.DBHost = getString(dbs, "DBHost")
		out.DBPort = getString(dbs, "DBPort")
		out.DBUser = getString(dbs, "DBUser")
		out.DBPassword = getString(dbs, "DBPassword")
		out.DBName = getString(dbs, "DBName")
	}

	if rds, ok := raw["redis"].(map[string]any); ok {
		out.RedisHost = getString(rds, "RedisHost")
		if v := getInt(rds, "RedisPort"); v != 0 {
			out.RedisPort = v
		}
		if v := getInt(rds, "RedisDB"); v != 0 {
			out.RedisDB = v
		}
		out.RedisPassword = getString(rds, "RedisPassword")
	}

	if lg, ok := raw["log"].(map[string]any); ok {
		if v := getString(lg, "Level"); v != "" {
			out.LogLevel = v
		}
		if v := getString(lg, "Path"); v != "" {
			out.LogPath = v
		}
		if v := getString(lg, "GinMode"); v != "" {
			out.GinMode = v
		}
		if v := getString(lg, "GinPath"); v != "" {
			out.GinPath = v
		}
		if v := getInt(lg, "MaxSizeMB"); v != 0 {
			out.LogMaxSizeMB = v
		}
		if v := getInt(lg, "MaxBackups"); v != 0 {
			out.LogMaxBackups = v
		}
		if v := getInt(lg, "MaxAgeDays"); v != 0 {
			out.LogMaxAgeDays = v
		}
		out.LogCompress = getBool(lg, "Compress")
	}

	return nil
}

func applyDefaults(out *AppConfig) {
	if out.AppPort == "" {
		out.AppPort = "8080"
	}
	if out.DBHost == "" {
		out.DBHost = "127.0.0.1"
	}
	if out.DBPort == "" {
		out.DBPort = "3306"
	}
	if out.DBName == "" {
		out.DBName = "bloghub"
	}
	if out.RedisHost == "" {
		out.RedisHost = "127.0.0.1"
	}
	if out.RedisPort == 0 {
		out.RedisPort = 6379
	}
	if out.RateLimitPerMinute == 0 {
		out.RateLimitPerMinute = 60
	}
	if len(out.AllowedOrigins) == 0 {
		out.AllowedOrigins = []string{"*"}
	}
	if out.GinMode == "" {
		out.GinMode = "release"
	}
	if out.GinPath == "" {
		out.GinPath = filepath.Join("logs", "gin.log")
	}
	if out.LogLevel == "" {
		out.LogLevel = "info"
	}
	if out.LogPath == "" {
		out.LogPath = filepath.Join("logs", "app.log")
	}
}

func applyEnvOverrides(out *AppConfig) {
	out.AppPort = getEnv("APP_PORT", out.AppPort)
	out.JWTSecret = getEnv("JWT_SECRET", out.JWTSecret)
	out.DatabaseURI = getEnv("DATABASE_URI", out.DatabaseURI)
	out.DBHost = getEnv("DB_HOST", out.DBHost)
	out.DBPort = getEnv("DB_PORT", out.DBPort)
	out.DBUser = getEnv("DB_USER", out.DBUser)
	out.DBPassword = getEnv("DB_PASSWORD", out.DBPassword)
	out.DBName = getEnv("DB_NAME", out.DBName)
	out.RedisHost = getEnv("REDIS_HOST", out.RedisHost)
	out.RedisPassword = getEnv("REDIS_PASSWORD", out.RedisPassword)
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			out.RedisPort = n
		}
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			out.RedisDB = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			out.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		if len(origins) > 0 {
			out.AllowedOrigins = origins
		}
	}
	out.GinMode = getEnv("GIN_MODE", out.GinMode)
	out.LogLevel = getEnv("LOG_LEVEL", out.LogLevel)
	out.LogPath = getEnv("LOG_PATH", out.LogPath)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
