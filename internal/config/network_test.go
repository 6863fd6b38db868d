package config

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zkreview/zkr-cli/internal/domain/config"
)

// newChainIDServer serves eth_chainId and counts requests
func newChainIDServer(t *testing.T, chainIDHex string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		calls.Add(1)

		w.Header().Set("Content-Type", "application/json")
		if req.Method != "eth_chainId" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0", "id": req.ID,
				"error": map[string]any{"code": -32601, "message": "method not found"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": chainIDHex})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestNetworkResolver_Resolve(t *testing.T) {
	srv, calls := newChainIDServer(t, "0x7a69")
	dir := t.TempDir()
	fc := &config.FoundryConfig{
		RpcEndpoints: map[string]string{"local": srv.URL},
		Etherscan:    map[string]config.EtherscanConfig{"local": {URL: "http://explorer.local"}},
	}

	r := NewNetworkResolver(dir, fc)
	network, err := r.Resolve(context.Background(), "local")
	require.NoError(t, err)

	assert.Equal(t, "local", network.Name)
	assert.Equal(t, uint64(31337), network.ChainID)
	assert.Equal(t, srv.URL, network.RPCURL)
	assert.Equal(t, "http://explorer.local", network.ExplorerURL)
	assert.True(t, network.IsLocal())

	// second lookup is served from cache, including by a fresh resolver reading the file
	_, err = NewNetworkResolver(dir, fc).Resolve(context.Background(), "local")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.FileExists(t, filepath.Join(dir, "cache", "chainIds.json"))
}

func TestNetworkResolver_RawURL(t *testing.T) {
	srv, _ := newChainIDServer(t, "0xaa36a7")
	r := NewNetworkResolver(t.TempDir(), &config.FoundryConfig{RpcEndpoints: map[string]string{}})

	network, err := r.Resolve(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, CustomNetworkName, network.Name)
	assert.Equal(t, uint64(11155111), network.ChainID)
	assert.Equal(t, "https://sepolia.etherscan.io", network.ExplorerURL)
	assert.False(t, network.IsLocal())
}

func TestNetworkResolver_Errors(t *testing.T) {
	r := NewNetworkResolver(t.TempDir(), &config.FoundryConfig{
		RpcEndpoints: map[string]string{"sepolia": ""},
	})

	_, err := r.Resolve(context.Background(), "mainnet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in foundry.toml")

	_, err = r.Resolve(context.Background(), "sepolia")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty RPC URL")
}

func TestNetworkResolver_CorruptCacheIgnored(t *testing.T) {
	srv, _ := newChainIDServer(t, "0x1")
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cache"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cache", "chainIds.json"), []byte("{not json"), 0644))

	r := NewNetworkResolver(dir, &config.FoundryConfig{RpcEndpoints: map[string]string{"mainnet": srv.URL}})
	network, err := r.Resolve(context.Background(), "mainnet")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), network.ChainID)
}

func TestNetworkResolver_Networks(t *testing.T) {
	r := NewNetworkResolver(t.TempDir(), &config.FoundryConfig{
		RpcEndpoints: map[string]string{"sepolia": "a", "anvil": "b", "mainnet": "c"},
	})
	assert.Equal(t, []string{"anvil", "mainnet", "sepolia"}, r.Networks())
}

func TestNetworkResolver_RefreshReplacesStaleEntry(t *testing.T) {
	srv, calls := newChainIDServer(t, "0x7a69")
	dir := t.TempDir()
	fc := &config.FoundryConfig{RpcEndpoints: map[string]string{"local": srv.URL}}

	// another node answered on this URL before
	stale := newNetworkCache()
	stale.Networks["local"] = 1
	stale.RPCs[srv.URL] = 1
	data, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cache"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cache", "chainIds.json"), data, 0644))

	r := NewNetworkResolver(dir, fc)
	network, err := r.Resolve(context.Background(), "local")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), network.ChainID)
	assert.Equal(t, int32(0), calls.Load())

	refreshed, err := r.Refresh(context.Background(), network)
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), refreshed.ChainID)
	assert.Equal(t, "local", refreshed.Name)
	assert.Equal(t, srv.URL, refreshed.RPCURL)
	assert.Equal(t, uint64(1), network.ChainID)
	assert.Equal(t, int32(1), calls.Load())

	// the corrected entry is persisted
	network, err = NewNetworkResolver(dir, fc).Resolve(context.Background(), "local")
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), network.ChainID)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNetworkResolver_RefreshUnreachable(t *testing.T) {
	r := NewNetworkResolver(t.TempDir(), &config.FoundryConfig{})
	r.dialTimeout = time.Second

	_, err := r.Refresh(context.Background(), &config.Network{Name: "gone", ChainID: 1, RPCURL: "http://127.0.0.1:1"})
	assert.ErrorContains(t, err, "failed to fetch chain ID for network gone")
}
