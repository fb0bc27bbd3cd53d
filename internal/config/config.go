package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the web service and the
// outbound AI and chat clients.
type Config struct {
	ListenAddr string

	DBHost string
	DBPort int
	DBUser string
	DBPass string
	DBName string

	// UseGPT selects the OpenAI backend for text generation; when false
	// the Gemini backend is used instead. Exactly one backend serves a
	// process lifetime.
	UseGPT          bool
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	GeminiAPIKey    string
	GeminiBaseURL   string
	TogetherAPIKey  string
	TogetherBaseURL string

	TextTimeout  time.Duration
	ChatTimeout  time.Duration
	ImageTimeout time.Duration

	LogLevel string
}

// Load reads configuration from environment variables, applying sane defaults.
func Load() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8000"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getInt("DB_PORT", 3306),
		UseGPT:          getBool("USE_GPT", true),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		TogetherBaseURL: getEnv("TOGETHER_BASE_URL", "https://api.together.xyz"),
		TextTimeout:     time.Second * time.Duration(getInt("TEXT_TIMEOUT_SECONDS", 15)),
		ChatTimeout:     time.Second * time.Duration(getInt("CHAT_TIMEOUT_SECONDS", 10)),
		ImageTimeout:    time.Second * time.Duration(getInt("IMAGE_TIMEOUT_SECONDS", 60)),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPass = os.Getenv("DB_PASS")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.TogetherAPIKey = os.Getenv("TOGETHER_API_KEY")

	var missing []string
	if cfg.DBUser == "" {
		missing = append(missing, "DB_USER")
	}
	if cfg.DBPass == "" {
		missing = append(missing, "DB_PASS")
	}
	if cfg.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if cfg.UseGPT && cfg.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if !cfg.UseGPT && cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if cfg.TogetherAPIKey == "" {
		missing = append(missing, "TOGETHER_API_KEY")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %v", missing)
	}

	return cfg, nil
}

// MySQLDSN assembles the driver connection string from the discrete DB_*
// values. parseTime is required so TIMESTAMP columns scan into time.Time.
func (c Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func loadEnvFile() error {
	if custom, ok := os.LookupEnv("CONFIG_ENV_PATH"); ok && custom != "" {
		if err := godotenv.Overload(custom); err != nil {
			return fmt.Errorf("load env file %s: %w", custom, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
