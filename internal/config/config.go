package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort     string
	DatabasePath string // single sqlite file, also what the backup copies
	UploadDir    string // stock-out photos
	BackupDir    string // dated database copies
	JWTSecret    string
	CORSOrigins  string
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "inventory.db"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		BackupDir:    getEnv("BACKUP_DIR", "backups"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		CORSOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set, refusing to start")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.DatabasePath == "inventory.db" {
		log.Println("[WARN] DATABASE_PATH not set, using ./inventory.db")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS not set, using the dev default")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
