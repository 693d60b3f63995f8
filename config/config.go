package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"crack-meter/internal/domain/entity"
)

type Config struct {
	TelegramToken string
	Optics        entity.OpticalConstants
	Workers       int
	LogLevel      string
	LogFile       string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	defaults := entity.DefaultOpticalConstants()
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFile:       os.Getenv("LOG_FILE"),
	}

	var err error
	if cfg.Optics.PixelSize, err = floatOrDefault("CRACK_PIXEL_SIZE", defaults.PixelSize); err != nil {
		return nil, err
	}
	if cfg.Optics.ObjectDistance, err = floatOrDefault("CRACK_OBJECT_DISTANCE", defaults.ObjectDistance); err != nil {
		return nil, err
	}
	if cfg.Optics.FocalLength, err = floatOrDefault("CRACK_FOCAL_LENGTH", defaults.FocalLength); err != nil {
		return nil, err
	}
	if err := cfg.Optics.Validate(); err != nil {
		return nil, fmt.Errorf("invalid optics: %w", err)
	}

	cfg.Workers = runtime.NumCPU()
	if v := strings.TrimSpace(os.Getenv("ANALYSIS_WORKERS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("ANALYSIS_WORKERS must be a positive integer (got %q)", v)
		}
		cfg.Workers = n
	}

	return cfg, nil
}

func floatOrDefault(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}
