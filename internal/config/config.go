package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort         string
	DatabaseDSN      string
	JWTSecret        string
	CORSOrigins      string
	SeedDictionaries bool // заполнить справочники начальными значениями при старте
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=cashflow port=5432 sslmode=disable"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		CORSOrigins:      getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		SeedDictionaries: getEnv("SEED_DICTIONARIES", "true") == "true",
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] Переменная окружения JWT_SECRET не задана! Обязательна для работы сервиса.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET должен быть не короче 32 символов!")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=cashflow port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN использует значение по умолчанию, для production задай собственное подключение к Postgres.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
