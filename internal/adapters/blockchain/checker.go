package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkreview/zkr-cli/internal/domain"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// CheckerAdapter implements the BlockchainChecker interface
type CheckerAdapter struct {
	dial    DialFunc
	backend Backend
	chainID uint64
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return NewCheckerAdapterWithDialer(DialRPC)
}

// NewCheckerAdapterWithDialer creates a checker with a custom backend dialer
func NewCheckerAdapterWithDialer(dial DialFunc) *CheckerAdapter {
	return &CheckerAdapter{dial: dial}
}

// Connect establishes connection to the blockchain
func (c *CheckerAdapter) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	backend, err := c.dial(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}

	networkChainID, err := backend.ChainID(ctx)
	if err != nil {
		closeBackend(backend)
		return fmt.Errorf("failed to get chain ID: %w", err)
	}

	// chainID 0 accepts whatever the node reports
	if chainID != 0 && networkChainID.Uint64() != chainID {
		closeBackend(backend)
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, chainID, networkChainID.Uint64())
	}

	if c.backend != nil {
		closeBackend(c.backend)
	}
	c.backend = backend
	c.chainID = networkChainID.Uint64()
	return nil
}

// CheckDeploymentExists checks if a contract exists at the given address
func (c *CheckerAdapter) CheckDeploymentExists(ctx context.Context, address string) (exists bool, reason string, err error) {
	if c.backend == nil {
		return false, "", fmt.Errorf("not connected to blockchain")
	}
	if !common.IsHexAddress(address) {
		return false, "invalid address", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code, err := c.backend.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return false, fmt.Sprintf("failed to check code: %v", err), nil
	}

	if len(code) == 0 {
		return false, fmt.Sprintf("no code at address on chain %d", c.chainID), nil
	}

	return true, "", nil
}

// Close releases the backend connection
func (c *CheckerAdapter) Close() {
	if c.backend != nil {
		closeBackend(c.backend)
		c.backend = nil
	}
}

// Ensure the adapter implements the interface
var _ usecase.BlockchainChecker = (*CheckerAdapter)(nil)
