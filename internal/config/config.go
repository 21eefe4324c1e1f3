package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	Gemini struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"gemini"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Patterns struct {
		Path string `yaml:"path"`
	} `yaml:"patterns"`
}

func Load() (*Config, error) {

	token := getEnv("TG_TOKEN", "")
	if token == "" {
		log.Fatal("❌ TG_TOKEN não definido. Defina a variável de ambiente ou crie um arquivo .env")
	}

	chatIDStr := getEnv("TG_CHAT_ID", "")
	if chatIDStr == "" {
		log.Fatal("❌ TG_CHAT_ID não definido")
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		log.Fatalf("❌ TG_CHAT_ID inválido: %v", err)
	}

	apiKey := getEnv("GEMINI_API_KEY", "")
	if apiKey == "" {
		log.Fatal("❌ GEMINI_API_KEY não definido")
	}

	cfg := &Config{}
	cfg.Telegram.Token = token
	cfg.Telegram.ChatID = chatID
	cfg.Gemini.APIKey = apiKey
	cfg.Server.Port = getEnv("PORT", "8080")
	cfg.Database.Path = getEnv("DB_PATH", "/data/gizele.db")
	cfg.Patterns.Path = getEnv("PATTERNS_PATH", "")

	log.Printf("✅ Configuração carregada: porta=%s, BD=%s", cfg.Server.Port, cfg.Database.Path)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
