package config

import (
	"context"

	"github.com/zkreview/zkr-cli/internal/config"
	domainconfig "github.com/zkreview/zkr-cli/internal/domain/config"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// NetworkResolverAdapter adapts the config.NetworkResolver to the usecase.NetworkResolver interface
type NetworkResolverAdapter struct {
	resolver    *config.NetworkResolver
	projectRoot string
	rawRPCs     map[string]string
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(resolver *config.NetworkResolver, cfg *domainconfig.RuntimeConfig) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver:    resolver,
		projectRoot: cfg.ProjectRoot,
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.Networks()
}

// ResolveNetwork resolves a network name to its configuration
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	return a.resolver.Resolve(ctx, networkName)
}

// RefreshNetwork re-fetches the chain id of a network, bypassing the cache
func (a *NetworkResolverAdapter) RefreshNetwork(ctx context.Context, network *domainconfig.Network) (*domainconfig.Network, error) {
	return a.resolver.Refresh(ctx, network)
}

// RPCEnvVar returns the variable an rpc endpoint is read from, if any
func (a *NetworkResolverAdapter) RPCEnvVar(ctx context.Context, networkName string) string {
	if a.rawRPCs == nil {
		raw, err := config.LoadRawRPCEndpoints(a.projectRoot)
		if err != nil {
			return ""
		}
		a.rawRPCs = raw
	}
	envVar, _ := config.DetectEnvVar(a.rawRPCs[networkName])
	return envVar
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
