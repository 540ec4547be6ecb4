package config

import (
	"os"
	"strconv"
)

// Config 应用配置
type Config struct {
	Port          string
	DBPath        string
	CollectorURL  string
	JWTSecret     string
	UploadTimeout int // seconds
}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/trips/trips.db"
	}

	collectorURL := os.Getenv("COLLECTOR_URL")
	if collectorURL == "" {
		collectorURL = "http://localhost:9090"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	uploadTimeout := 15
	if v := os.Getenv("UPLOAD_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			uploadTimeout = n
		}
	}

	return &Config{
		Port:          port,
		DBPath:        dbPath,
		CollectorURL:  collectorURL,
		JWTSecret:     jwtSecret,
		UploadTimeout: uploadTimeout,
	}
}
