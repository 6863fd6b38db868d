package usecase

import (
	"context"
	"fmt"

	"github.com/zkreview/zkr-cli/internal/domain"
	"github.com/zkreview/zkr-cli/internal/domain/config"
)

// ShowDeploymentParams contains parameters for showing a deployment summary
type ShowDeploymentParams struct {
	Path  string // defaults to the configured output file
	Check bool   // verify each address has code on the configured network
}

// ContractCheck is the on-chain state of one summary entry
type ContractCheck struct {
	Key     string
	Address string
	Exists  bool
	Reason  string
}

// ShowDeploymentResult contains a loaded summary and optional checks
type ShowDeploymentResult struct {
	Path    string
	Summary *domain.DeploymentSummary
	Network *config.Network
	Checks  []ContractCheck
}

// ShowDeployment reads a deployment summary written by a previous deploy
type ShowDeployment struct {
	config  *config.RuntimeConfig
	store   DeploymentStore
	checker BlockchainChecker
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, store DeploymentStore, checker BlockchainChecker) *ShowDeployment {
	return &ShowDeployment{
		config:  cfg,
		store:   store,
		checker: checker,
	}
}

// Run executes the use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*ShowDeploymentResult, error) {
	path := params.Path
	if path == "" {
		path = uc.config.OutputFile
	}

	summary, err := uc.store.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	result := &ShowDeploymentResult{
		Path:    path,
		Summary: summary,
	}
	if !params.Check {
		return result, nil
	}

	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("%w: --check needs --network", domain.ErrNetworkRequired)
	}
	result.Network = network

	if err := uc.checker.Connect(ctx, network.RPCURL, network.ChainID); err != nil {
		return nil, err
	}
	defer uc.checker.Close()

	for _, entry := range summary.Entries() {
		exists, reason, err := uc.checker.CheckDeploymentExists(ctx, entry.Address)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s: %w", entry.Key, err)
		}
		result.Checks = append(result.Checks, ContractCheck{
			Key:     entry.Key,
			Address: entry.Address,
			Exists:  exists,
			Reason:  reason,
		})
	}

	return result, nil
}
