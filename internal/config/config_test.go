package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "blog")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_NAME", "blogdb")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TOGETHER_API_KEY", "tg-test")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ListenAddr != ":8000" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":8000")
	}
	if cfg.DBHost != "localhost" || cfg.DBPort != 3306 {
		t.Errorf("DB defaults = %s:%d, want localhost:3306", cfg.DBHost, cfg.DBPort)
	}
	if !cfg.UseGPT {
		t.Error("UseGPT default = false, want true")
	}
	if cfg.TextTimeout != 15*time.Second {
		t.Errorf("TextTimeout = %v, want 15s", cfg.TextTimeout)
	}
	if cfg.ChatTimeout != 10*time.Second {
		t.Errorf("ChatTimeout = %v, want 10s", cfg.ChatTimeout)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q, want gpt-4o-mini", cfg.OpenAIModel)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_NAME", "blogdb")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TOGETHER_API_KEY", "tg-test")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() error = nil, want missing variable error")
	}
	if !strings.Contains(err.Error(), "DB_USER") {
		t.Errorf("error %q does not name DB_USER", err)
	}
}

func TestLoad_GeminiKeyRequiredWhenNotGPT(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("USE_GPT", "false")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() error = nil, want missing GEMINI_API_KEY error")
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("error %q does not name GEMINI_API_KEY", err)
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := Config{
		DBUser: "blog",
		DBPass: "secret",
		DBHost: "db.internal",
		DBPort: 3307,
		DBName: "blogdb",
	}

	dsn := cfg.MySQLDSN()
	want := "blog:secret@tcp(db.internal:3307)/blogdb?parseTime=true&charset=utf8mb4"
	if dsn != want {
		t.Errorf("MySQLDSN() = %q, want %q", dsn, want)
	}
}
