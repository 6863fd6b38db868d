package senders

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/zkreview/zkr-cli/internal/domain"
	"github.com/zkreview/zkr-cli/internal/domain/config"
	"github.com/zkreview/zkr-cli/internal/domain/models"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// AnvilDefaultKey is the private key of account #0 of anvil and hardhat dev nodes
const AnvilDefaultKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80" //nolint:gosec

// Signer sources shown to the user
const (
	SourceConfigured = "private key"
	SourceAnvil      = "anvil account #0"
)

// SignerResolverAdapter resolves the deployment signer from the runtime config
type SignerResolverAdapter struct {
	privateKey string
	log        *slog.Logger
}

// NewSignerResolverAdapter creates a new SignerResolverAdapter
func NewSignerResolverAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *SignerResolverAdapter {
	return &SignerResolverAdapter{
		privateKey: cfg.PrivateKey,
		log:        log.With("component", "SignerResolver"),
	}
}

// ResolveSigner returns the configured key, or the dev key on a local chain
func (r *SignerResolverAdapter) ResolveSigner(ctx context.Context, network *config.Network) (*models.Signer, error) {
	if r.privateKey != "" {
		return parseSigner(r.privateKey, SourceConfigured)
	}

	if network.IsLocal() {
		signer, err := parseSigner(AnvilDefaultKey, SourceAnvil)
		if err != nil {
			return nil, err
		}
		r.log.Warn("no private key configured, using the default dev account", "address", signer.Address.Hex(), "chainId", network.ChainID)
		return signer, nil
	}

	return nil, domain.ErrNoSigner
}

// parseSigner accepts a hex key with or without 0x prefix
func parseSigner(hexKey, source string) (*models.Signer, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		// the key itself must never end up in the message
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &models.Signer{
		Address: crypto.PubkeyToAddress(key.PublicKey),
		Key:     key,
		Source:  source,
	}, nil
}

// Ensure the adapter implements the interface
var _ usecase.SignerResolver = (*SignerResolverAdapter)(nil)
