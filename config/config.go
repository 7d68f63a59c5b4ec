package config

import (
	"os"
)

type Config struct {
	ServerAddr     string
	MysqlDSN       string
	JWTSecret      string
	AllowedOrigins string
}

func Load() Config {
	return Config{
		ServerAddr:     ":" + getEnv("PORT", "8080"),
		MysqlDSN:       getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/ybchat?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:      getEnv("JWT_SECRET", "ybchat-secret-key-change-in-production"),
		AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
