package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds application-level configuration.
type Config struct {
	DataDir      string // Where registry/session JSON and the log file live
	GeminiAPIKey string // Empty disables caption/place suggestions
	GeminiModel  string // Gemini model for the assistant
}

// Load reads configuration from environment variables.
//
//	GEK_DATA_DIR      — data directory (default: ~/.config/gek)
//	GEMINI_API_KEY    — Gemini API key (optional; suggestions fall back to defaults)
//	GEK_GEMINI_MODEL  — Gemini model (default: "gemini-2.5-flash")
func Load() (Config, error) {
	dataDir := os.Getenv("GEK_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".config", "gek")
	}

	model := os.Getenv("GEK_GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return Config{
		DataDir:      dataDir,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  model,
	}, nil
}
