package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/zkreview/zkr-cli/internal/domain"
	"github.com/zkreview/zkr-cli/internal/domain/config"
	"github.com/zkreview/zkr-cli/internal/domain/models"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// Backend is the chain access the deployer needs
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// DialFunc opens a backend for an RPC URL
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

// DialRPC dials a JSON-RPC endpoint with ethclient
func DialRPC(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// DeployerAdapter implements usecase.ContractDeployer on top of go-ethereum's bind package
type DeployerAdapter struct {
	log     *slog.Logger
	dial    DialFunc
	backend Backend
	auth    *bind.TransactOpts
}

// NewDeployerAdapter creates a deployer that dials networks over JSON-RPC
func NewDeployerAdapter(log *slog.Logger) *DeployerAdapter {
	return NewDeployerAdapterWithDialer(DialRPC, log)
}

// NewDeployerAdapterWithDialer creates a deployer with a custom backend dialer
func NewDeployerAdapterWithDialer(dial DialFunc, log *slog.Logger) *DeployerAdapter {
	return &DeployerAdapter{
		log:  log.With("component", "DeployerAdapter"),
		dial: dial,
	}
}

// Connect dials the network and prepares a transactor for the signer
func (d *DeployerAdapter) Connect(ctx context.Context, network *config.Network, signer *models.Signer) error {
	if signer == nil || signer.Key == nil {
		return domain.ErrNoSigner
	}

	backend, err := d.dial(ctx, network.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		closeBackend(backend)
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		closeBackend(backend)
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, network.ChainID, chainID.Uint64())
	}

	auth, err := bind.NewKeyedTransactorWithChainID(signer.Key, chainID)
	if err != nil {
		closeBackend(backend)
		return fmt.Errorf("failed to create transactor: %w", err)
	}

	d.backend = backend
	d.auth = auth
	d.log.Debug("connected", "network", network.Name, "chainId", chainID, "from", auth.From)
	return nil
}

// Deploy sends the creation transaction for an artifact and waits until the code is on chain
func (d *DeployerAdapter) Deploy(ctx context.Context, artifact *models.Artifact, args ...any) (*models.DeployedContract, error) {
	if d.backend == nil {
		return nil, fmt.Errorf("not connected to blockchain")
	}

	start := time.Now()
	address, tx, _, err := bind.DeployContract(d.transactOpts(ctx), artifact.ABI, artifact.Bytecode, d.backend, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s deployment: %w", artifact.Name, err)
	}
	d.log.Debug("deployment sent", "contract", artifact.Name, "tx", tx.Hash(), "address", address)

	receipt, err := d.waitMined(ctx, tx)
	if err != nil {
		return nil, err
	}
	if receipt.ContractAddress != (common.Address{}) {
		address = receipt.ContractAddress
	}

	code, err := d.backend.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: no code at %s after deploying %s", domain.ErrTransactionFailed, address.Hex(), artifact.Name)
	}

	d.log.Debug("deployment confirmed", "contract", artifact.Name, "address", address, "block", receipt.BlockNumber, "duration", time.Since(start))
	return &models.DeployedContract{
		Name:    artifact.Name,
		Address: address,
		TxHash:  tx.Hash(),
	}, nil
}

// Transact calls a state-changing method and waits for a successful receipt
func (d *DeployerAdapter) Transact(ctx context.Context, address common.Address, artifact *models.Artifact, method string, args ...any) (common.Hash, error) {
	if d.backend == nil {
		return common.Hash{}, fmt.Errorf("not connected to blockchain")
	}

	contract := bind.NewBoundContract(address, artifact.ABI, d.backend, d.backend, d.backend)
	tx, err := contract.Transact(d.transactOpts(ctx), method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to send %s.%s: %w", artifact.Name, method, err)
	}
	d.log.Debug("transaction sent", "contract", artifact.Name, "method", method, "tx", tx.Hash())

	if _, err := d.waitMined(ctx, tx); err != nil {
		return common.Hash{}, err
	}
	return tx.Hash(), nil
}

// Close releases the backend connection
func (d *DeployerAdapter) Close() {
	if d.backend != nil {
		closeBackend(d.backend)
		d.backend = nil
	}
}

func (d *DeployerAdapter) transactOpts(ctx context.Context) *bind.TransactOpts {
	opts := *d.auth
	opts.Context = ctx
	return &opts
}

func (d *DeployerAdapter) waitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, d.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: transaction %s reverted in block %s", domain.ErrTransactionFailed, tx.Hash().Hex(), receipt.BlockNumber)
	}
	return receipt, nil
}

func closeBackend(backend Backend) {
	if c, ok := backend.(interface{ Close() }); ok {
		c.Close()
	}
}

// Ensure the adapter implements the interface
var _ usecase.ContractDeployer = (*DeployerAdapter)(nil)
