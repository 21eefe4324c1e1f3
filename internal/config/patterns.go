package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Giterapeuta/app-emagrecimento/internal/breathing"
)

type yamlPattern struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	GuideText   string `yaml:"guide_text"`
	InhaleMs    int    `yaml:"inhale_ms"`
	HoldMs      int    `yaml:"hold_ms"`
	ExhaleMs    int    `yaml:"exhale_ms"`
	HoldPostMs  int    `yaml:"hold_post_ms"`
}

// LoadPatterns lê o catálogo de técnicas de respiração de um arquivo
// YAML. Caminho vazio ou arquivo inexistente devolvem o catálogo
// embutido; um arquivo presente porém inválido é erro de configuração.
func LoadPatterns(path string) ([]breathing.Pattern, error) {
	if path == "" {
		return breathing.DefaultPatterns(), nil
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return breathing.DefaultPatterns(), nil
		}
		return nil, fmt.Errorf("erro ao ler arquivo de técnicas: %w", err)
	}

	var fileData []yamlPattern
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return nil, fmt.Errorf("erro ao interpretar YAML de técnicas: %w", err)
	}
	if len(fileData) == 0 {
		return nil, fmt.Errorf("arquivo de técnicas %s não define nenhuma técnica", path)
	}

	patterns := make([]breathing.Pattern, 0, len(fileData))
	for _, p := range fileData {
		pattern := breathing.Pattern{
			Key:         p.Key,
			Name:        p.Name,
			Description: p.Description,
			GuideText:   p.GuideText,
			Inhale:      time.Duration(p.InhaleMs) * time.Millisecond,
			Hold:        time.Duration(p.HoldMs) * time.Millisecond,
			Exhale:      time.Duration(p.ExhaleMs) * time.Millisecond,
			HoldPost:    time.Duration(p.HoldPostMs) * time.Millisecond,
		}
		if err := pattern.Validate(); err != nil {
			return nil, err
		}
		patterns = append(patterns, pattern)
	}

	return patterns, nil
}
