package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort               = "8080"
	defaultLogLevel           = "info"
	defaultLogFormat          = "json"
	defaultMaxUploadBytes     = 10 << 20
	defaultRateLimitPerMinute = 60
)

// Config agrupa la configuración necesaria para correr la aplicación.
type Config struct {
	Port        string
	DatabaseURL string

	LogLevel  string
	LogFormat string

	// MaxUploadBytes limita el tamaño del CSV aceptado por /api/import.
	MaxUploadBytes int64
	// RateLimitPerMinute es el cupo de requests por IP sobre /api.
	RateLimitPerMinute int
	CORSAllowedOrigins []string
}

// loadEnvFile permite reemplazar la carga de .env en tests.
var loadEnvFile = func() error {
	return godotenv.Load()
}

// Load lee variables de entorno y valida lo mínimo indispensable.
// Si existe un archivo .env se carga primero; las variables ya definidas
// en el entorno tienen prioridad.
func Load() (Config, error) {
	if err := loadEnvFile(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = defaultPort
	}
	// Normalizamos por si alguien manda ":8080"
	port = strings.TrimPrefix(port, ":")

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		return Config{}, fmt.Errorf("missing required env var: DATABASE_URL")
	}

	maxUpload, err := positiveInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	if err != nil {
		return Config{}, err
	}

	rateLimit, err := positiveInt("RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMinute)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:               port,
		DatabaseURL:        databaseURL,
		LogLevel:           envOrDefault("LOG_LEVEL", defaultLogLevel),
		LogFormat:          envOrDefault("LOG_FORMAT", defaultLogFormat),
		MaxUploadBytes:     int64(maxUpload),
		RateLimitPerMinute: rateLimit,
		CORSAllowedOrigins: splitList(envOrDefault("CORS_ALLOWED_ORIGINS", "*")),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// positiveInt lee un entero > 0; vacío devuelve el default.
func positiveInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid env var %s: must be a positive integer", key)
	}
	return value, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
