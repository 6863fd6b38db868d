package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zkreview/zkr-cli/internal/domain"
	"github.com/zkreview/zkr-cli/internal/domain/config"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project-root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".zkr"),
		Namespace:      v.GetString("namespace"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non-interactive"),
		Timeout:        v.GetDuration("timeout"),
		DryRun:         v.GetBool("dry-run"),
		AssumeYes:      v.GetBool("yes"),
	}

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}
	cfg.FoundryConfig = foundryConfig

	// Namespace selects the foundry profile
	profile := foundryConfig.Profile[cfg.Namespace]
	cfg.ZkrConfig = profile.Zkr

	cfg.Params = resolveDeployParams(v, cfg.ZkrConfig)
	cfg.OutputFile = resolveOutputFile(v, projectRoot, cfg.ZkrConfig)
	cfg.ArtifactsDir = v.GetString("artifacts")
	if cfg.ArtifactsDir == "" {
		cfg.ArtifactsDir = profile.OutPath
	}
	if cfg.ArtifactsDir != "" && !filepath.IsAbs(cfg.ArtifactsDir) {
		cfg.ArtifactsDir = filepath.Join(projectRoot, cfg.ArtifactsDir)
	}

	cfg.PrivateKey = v.GetString("private-key")
	if cfg.PrivateKey == "" && cfg.ZkrConfig != nil && cfg.ZkrConfig.PrivateKey != "" {
		key, err := ExpandStrict(cfg.ZkrConfig.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve private_key of profile %s: %w", cfg.Namespace, err)
		}
		cfg.PrivateKey = key
	}

	if networkName := v.GetString("network"); networkName != "" {
		networkResolver := NewNetworkResolver(projectRoot, foundryConfig)
		network, err := networkResolver.Resolve(context.Background(), networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// resolveDeployParams layers flags/env over the profile over the built-in defaults
func resolveDeployParams(v *viper.Viper, zkr *config.ZkrConfig) domain.DeployParams {
	var params domain.DeployParams
	if zkr != nil {
		params = zkr.Deploy
	}

	override := func(dst *string, key string) {
		if val := v.GetString(key); val != "" {
			*dst = val
		}
	}
	override(&params.TokenName, "token-name")
	override(&params.TokenSymbol, "token-symbol")
	override(&params.CircuitName, "circuit-name")
	override(&params.CircuitDescription, "circuit-description")
	override(&params.CircuitIPFSCID, "circuit-cid")

	return params.WithDefaults()
}

func resolveOutputFile(v *viper.Viper, projectRoot string, zkr *config.ZkrConfig) string {
	output := v.GetString("output")
	if output == "" && zkr != nil {
		output = zkr.Output
	}
	if output == "" {
		output = domain.DefaultSummaryFile
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(projectRoot, output)
	}
	return output
}

// FindProjectRoot walks up from current directory to find foundry.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "foundry.toml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Foundry project (foundry.toml not found)")
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".zkr"))

	v.SetEnvPrefix("ZKR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("namespace", "default")
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("non-interactive", false)
	v.SetDefault("project-root", projectRoot)

	// Missing config file is fine
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(f.Name, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.ProjectRoot, cfg.FoundryConfig)
}
