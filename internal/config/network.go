package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/samber/lo"
	"github.com/zkreview/zkr-cli/internal/domain/config"
)

// CustomNetworkName is the name given to networks passed as a raw RPC URL
const CustomNetworkName = "custom"

// NetworkResolver resolves network names to configurations with caching
type NetworkResolver struct {
	projectRoot   string
	foundryConfig *config.FoundryConfig
	cache         *NetworkCache
	dialTimeout   time.Duration
	mu            sync.RWMutex
}

// NetworkCache caches chain ID lookups
type NetworkCache struct {
	Networks  map[string]uint64 `json:"networks"` // name -> chainID
	RPCs      map[string]uint64 `json:"rpcs"`     // rpcURL -> chainID
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(projectRoot string, foundryConfig *config.FoundryConfig) *NetworkResolver {
	r := &NetworkResolver{
		projectRoot:   projectRoot,
		foundryConfig: foundryConfig,
		dialTimeout:   10 * time.Second,
	}
	r.loadCache()
	return r
}

// Networks returns the configured network names, sorted
func (r *NetworkResolver) Networks() []string {
	names := lo.Keys(r.foundryConfig.RpcEndpoints)
	slices.Sort(names)
	return names
}

// Resolve resolves a network name, or a raw http(s)/ws(s) RPC URL, to its configuration
func (r *NetworkResolver) Resolve(ctx context.Context, networkName string) (*config.Network, error) {
	name := networkName
	rpcURL, exists := r.foundryConfig.RpcEndpoints[networkName]
	if !exists {
		if !isRPCURL(networkName) {
			return nil, fmt.Errorf("network '%s' not found in foundry.toml [rpc_endpoints]", networkName)
		}
		name = CustomNetworkName
		rpcURL = networkName
	}
	if rpcURL == "" {
		return nil, fmt.Errorf("network '%s' has an empty RPC URL (is its env var set?)", networkName)
	}

	r.mu.RLock()
	chainID, cached := r.cache.RPCs[rpcURL]
	r.mu.RUnlock()

	if !cached {
		fetched, err := r.fetchChainID(ctx, rpcURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", name, err)
		}
		chainID = fetched
		r.updateCache(name, rpcURL, chainID)
	}

	return &config.Network{
		Name:        name,
		RPCURL:      rpcURL,
		ChainID:     chainID,
		ExplorerURL: r.explorerURL(name, chainID),
	}, nil
}

// Refresh drops the cached chain id of a resolved network and fetches it again
func (r *NetworkResolver) Refresh(ctx context.Context, network *config.Network) (*config.Network, error) {
	r.mu.Lock()
	delete(r.cache.RPCs, network.RPCURL)
	delete(r.cache.Networks, network.Name)
	r.mu.Unlock()

	chainID, err := r.fetchChainID(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", network.Name, err)
	}
	r.updateCache(network.Name, network.RPCURL, chainID)

	refreshed := *network
	refreshed.ChainID = chainID
	refreshed.ExplorerURL = r.explorerURL(network.Name, chainID)
	return &refreshed, nil
}

func isRPCURL(s string) bool {
	for _, prefix := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// fetchChainID asks the node for its chain id
func (r *NetworkResolver) fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.dialTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}

// explorerURL returns the block explorer for a network
func (r *NetworkResolver) explorerURL(networkName string, chainID uint64) string {
	if etherscan, exists := r.foundryConfig.Etherscan[networkName]; exists && etherscan.URL != "" {
		return etherscan.URL
	}

	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 84532:
		return "https://sepolia.basescan.org"
	case 42161:
		return "https://arbiscan.io"
	default:
		return ""
	}
}

func (r *NetworkResolver) cachePath() string {
	return filepath.Join(r.projectRoot, "cache", "chainIds.json")
}

// loadCache loads the chain ID cache from disk
func (r *NetworkResolver) loadCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = newNetworkCache()

	data, err := os.ReadFile(r.cachePath())
	if err != nil {
		return
	}

	var loaded NetworkCache
	if err := json.Unmarshal(data, &loaded); err != nil || loaded.Networks == nil || loaded.RPCs == nil {
		return
	}
	r.cache = &loaded
}

func newNetworkCache() *NetworkCache {
	return &NetworkCache{
		Networks:  make(map[string]uint64),
		RPCs:      make(map[string]uint64),
		UpdatedAt: time.Now(),
	}
}

// updateCache records a chain id and persists the cache
func (r *NetworkResolver) updateCache(networkName, rpcURL string, chainID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Networks[networkName] = chainID
	r.cache.RPCs[rpcURL] = chainID
	r.cache.UpdatedAt = time.Now()

	// The cache only saves round trips; a failed write is not an error
	_ = r.saveCache()
}

// saveCache saves the cache to disk
func (r *NetworkResolver) saveCache() error {
	if err := os.MkdirAll(filepath.Dir(r.cachePath()), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.cachePath(), data, 0644)
}
