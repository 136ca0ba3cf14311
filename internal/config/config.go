package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
// It is constructed once in main and passed by reference; nothing reads the
// environment after startup.
type Config struct {
	ServerPort string
	BaseURL    string
	MySQLDSN   string

	JWTSecret string

	RedisAddr string
	RedisDB   int
	RedisPass string

	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/contacts?charset=utf8mb4&parseTime=True&loc=Local"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		MailHost:     getEnv("MAIL_HOST", "localhost"),
		MailPort:     getEnvInt("MAIL_PORT", 587),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "noreply@contactbook.local"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", "avatars"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
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
