package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port          int
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	CORSOrigins   []string

	// Recognition runtimes; an engine is registered only when its URL is set.
	FunASRURL  string
	WhisperURL string

	// FunASR runtime tuning.
	FunASRBatchSizeSeconds  int
	FunASRSmartSegmentation bool

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	// Optional .env for local development; env vars win.
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))

	// JWT secret: require explicit setting or generate random
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatal().Err(err).Msg("failed to generate random JWT secret")
		}
		jwtSecret = hex.EncodeToString(b)
		log.Warn().Msg("JWT_SECRET not set, using random secret. Sessions will not survive restarts. Set JWT_SECRET env var for persistent sessions.")
	}

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	batchSize, _ := strconv.Atoi(getEnv("FUNASR_BATCH_SIZE_S", "300"))

	return &Config{
		Port:          port,
		JWTSecret:     jwtSecret,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
		CORSOrigins:   corsOrigins,

		FunASRURL:  os.Getenv("FUNASR_URL"),
		WhisperURL: os.Getenv("WHISPER_URL"),

		FunASRBatchSizeSeconds:  batchSize,
		FunASRSmartSegmentation: getEnv("FUNASR_SMART_SEGMENTATION", "true") != "false",

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
