package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/zkreview/zkr-cli/internal/domain/config"
)

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// ExpandStrict expands ${VAR} references like os.ExpandEnv but fails when a value is a
// pure reference to an unset variable.
func ExpandStrict(rawValue string) (string, error) {
	if name, ok := DetectEnvVar(rawValue); ok {
		if _, set := os.LookupEnv(name); !set {
			return "", fmt.Errorf("environment variable %s is not set", name)
		}
	}
	return os.ExpandEnv(rawValue), nil
}

// LoadRawRPCEndpoints reads foundry.toml and returns RPC endpoints without env var expansion.
func LoadRawRPCEndpoints(projectRoot string) (map[string]string, error) {
	foundryPath := filepath.Join(projectRoot, "foundry.toml")

	var cfg config.FoundryConfig
	if _, err := toml.DecodeFile(foundryPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	return cfg.RpcEndpoints, nil
}
