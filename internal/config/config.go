package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"adsgen/internal/core/domain"
)

// EnvAPIKey is the environment variable holding the API credential.
const EnvAPIKey = "CAPTIONS_API_KEY"

// LoadProduct reads and decodes a product.json file. The result is not
// validated here; call Validate on it before use.
func LoadProduct(path string) (*domain.ProductConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read product file: %w", err)
	}

	var cfg domain.ProductConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return &cfg, nil
}

// APIKeyFromEnv returns the credential from the process environment.
// The .env file, if any, is loaded into the environment at startup.
func APIKeyFromEnv() string {
	return os.Getenv(EnvAPIKey)
}

// SaveAPIKey persists the credential to an .env-style file.
func SaveAPIKey(path, key string) error {
	if err := godotenv.Write(map[string]string{EnvAPIKey: key}, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
