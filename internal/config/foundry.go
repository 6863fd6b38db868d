package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/zkreview/zkr-cli/internal/domain/config"
)

// loadEnvFiles loads .env files from the project root. godotenv never overrides a
// variable that is already set, so the more specific file is loaded first.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env.local"),
		filepath.Join(projectRoot, ".env"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			slog.Warn("failed to load env file", "file", envFile, "error", err)
		}
	}
}

// loadFoundryConfig loads and parses foundry.toml, expanding ${VAR} references in
// endpoints and explorer settings.
func loadFoundryConfig(projectRoot string) (*config.FoundryConfig, error) {
	loadEnvFiles(projectRoot)

	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	var cfg config.FoundryConfig
	if _, err := toml.DecodeFile(foundryPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	if cfg.RpcEndpoints == nil {
		cfg.RpcEndpoints = make(map[string]string)
	}
	for name, url := range cfg.RpcEndpoints {
		cfg.RpcEndpoints[name] = os.ExpandEnv(url)
	}

	for network, ec := range cfg.Etherscan {
		ec.URL = os.ExpandEnv(ec.URL)
		ec.Key = os.ExpandEnv(ec.Key)
		cfg.Etherscan[network] = ec
	}

	if cfg.Profile == nil {
		cfg.Profile = make(map[string]config.ProfileConfig)
	}

	return &cfg, nil
}
