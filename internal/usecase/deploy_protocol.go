package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkreview/zkr-cli/internal/domain"
	"github.com/zkreview/zkr-cli/internal/domain/config"
	"github.com/zkreview/zkr-cli/internal/domain/models"
)

// ErrDeployCancelled is returned when the user declines the deployment prompt
var ErrDeployCancelled = errors.New("deployment cancelled")

// DeployProtocolParams contains parameters for a protocol deployment
type DeployProtocolParams struct {
	DryRun bool
}

// PlannedStep describes one remote step before it runs
type PlannedStep struct {
	Step     domain.Step
	Contract string
	Args     []any
}

// DeployPlan is everything a deployment will do, resolved before broadcasting
type DeployPlan struct {
	Network    *config.Network
	Signer     *models.Signer
	Params     domain.DeployParams
	Steps      []PlannedStep
	OutputFile string
}

// DeployProtocolResult contains the outcome of a protocol deployment
type DeployProtocolResult struct {
	Plan     *DeployPlan
	DryRun   bool
	Summary  *domain.DeploymentSummary
	Steps    []models.StepRecord
	Duration time.Duration
}

// DeployProtocol deploys the contract suite, links it and writes the summary.
// Steps run strictly in order; the first failure aborts the run and nothing is written.
type DeployProtocol struct {
	config    *config.RuntimeConfig
	networks  NetworkResolver
	selector  NetworkSelector
	signers   SignerResolver
	artifacts ArtifactRepository
	deployer  ContractDeployer
	store     DeploymentStore
	confirmer DeployConfirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployProtocol creates a new DeployProtocol use case
func NewDeployProtocol(
	cfg *config.RuntimeConfig,
	networks NetworkResolver,
	selector NetworkSelector,
	signers SignerResolver,
	artifacts ArtifactRepository,
	deployer ContractDeployer,
	store DeploymentStore,
	confirmer DeployConfirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployProtocol {
	return &DeployProtocol{
		config:    cfg,
		networks:  networks,
		selector:  selector,
		signers:   signers,
		artifacts: artifacts,
		deployer:  deployer,
		store:     store,
		confirmer: confirmer,
		progress:  progress,
		log:       log,
	}
}

// deployRun holds the state of a single run. Later steps read addresses written by earlier ones.
type deployRun struct {
	plan      *DeployPlan
	artifacts map[string]*models.Artifact
	deployed  map[string]*models.DeployedContract
}

// Run executes the deployment
func (uc *DeployProtocol) Run(ctx context.Context, params DeployProtocolParams) (*DeployProtocolResult, error) {
	started := time.Now()

	network, err := uc.resolveNetwork(ctx)
	if err != nil {
		return nil, err
	}

	signer, err := uc.signers.ResolveSigner(ctx, network)
	if err != nil {
		return nil, &domain.StepError{Step: domain.StepSigner, Err: err}
	}
	uc.log.Debug("resolved signer", "address", signer.Address.Hex(), "source", signer.Source)

	// All artifacts are loaded up front so a missing one never leaves a half-deployed suite
	artifacts := make(map[string]*models.Artifact, len(domain.ProtocolContracts))
	for _, name := range domain.ProtocolContracts {
		artifact, err := uc.artifacts.GetArtifact(ctx, name)
		if err != nil {
			return nil, &domain.StepError{Step: domain.StepArtifacts, Err: err}
		}
		artifacts[name] = artifact
	}
	if err := checkMethods(artifacts); err != nil {
		return nil, &domain.StepError{Step: domain.StepArtifacts, Err: err}
	}

	plan := uc.buildPlan(network, signer)
	result := &DeployProtocolResult{Plan: plan, DryRun: params.DryRun}

	if params.DryRun || uc.config.DryRun {
		result.DryRun = true
		result.Duration = time.Since(started)
		return result, nil
	}

	confirmed := uc.needsConfirmation(network)
	if confirmed {
		if err := uc.confirm(ctx, plan); err != nil {
			return nil, err
		}
	}

	if err := uc.deployer.Connect(ctx, network, signer); err != nil {
		if !errors.Is(err, domain.ErrChainIDMismatch) {
			return nil, &domain.StepError{Step: domain.StepConnect, Err: err}
		}
		plan, err = uc.reconnect(ctx, plan, confirmed, err)
		if err != nil {
			return nil, err
		}
		result.Plan = plan
	}
	defer uc.deployer.Close()

	uc.progress.Info(fmt.Sprintf("Deploying contracts with the account: %s", plan.Signer.Address.Hex()))

	run := &deployRun{
		plan:      plan,
		artifacts: artifacts,
		deployed:  make(map[string]*models.DeployedContract),
	}

	for i, step := range domain.ProtocolSteps {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   string(step),
			Current: i + 1,
			Total:   len(domain.ProtocolSteps),
			Message: describeStep(step),
			Spinner: true,
		})

		stepStarted := time.Now()
		record, err := uc.execute(ctx, run, step)
		if err != nil {
			uc.progress.Error(fmt.Sprintf("%s failed", describeStep(step)))
			return nil, &domain.StepError{Step: step, Err: err}
		}
		record.Duration = time.Since(stepStarted)
		result.Steps = append(result.Steps, *record)

		uc.log.Debug("step completed", "step", step, "address", record.Address.Hex(), "tx", record.TxHash.Hex())
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:    string(step),
			Current:  i + 1,
			Total:    len(domain.ProtocolSteps),
			Message:  describeRecord(record),
			Metadata: record,
		})
	}

	summary := &domain.DeploymentSummary{
		DAOToken:       run.deployed[domain.ContractDAOToken].Address.Hex(),
		ZKReviewDAO:    run.deployed[domain.ContractZKReviewDAO].Address.Hex(),
		ZKCodeReview:   run.deployed[domain.ContractZKCodeReview].Address.Hex(),
		SampleVerifier: run.deployed[domain.ContractVerifier].Address.Hex(),
	}
	if err := uc.store.Save(ctx, plan.OutputFile, summary); err != nil {
		return nil, &domain.StepError{Step: domain.StepWriteSummary, Err: err}
	}
	uc.progress.Info(fmt.Sprintf("Deployment info saved to %s", plan.OutputFile))

	result.Summary = summary
	result.Duration = time.Since(started)
	return result, nil
}

func (uc *DeployProtocol) resolveNetwork(ctx context.Context) (*config.Network, error) {
	if uc.config.Network != nil {
		return uc.config.Network, nil
	}
	if uc.config.NonInteractive {
		return nil, fmt.Errorf("%w: pass --network in non-interactive mode", domain.ErrNetworkRequired)
	}

	networks := uc.networks.GetNetworks(ctx)
	if len(networks) == 0 {
		return nil, fmt.Errorf("%w: no networks configured in foundry.toml [rpc_endpoints]", domain.ErrNetworkRequired)
	}

	name, err := uc.selector.SelectNetwork(ctx, networks)
	if err != nil {
		return nil, err
	}
	network, err := uc.networks.ResolveNetwork(ctx, name)
	if err != nil {
		return nil, err
	}
	uc.config.Network = network
	return network, nil
}

// reconnect handles a chain id mismatch caused by a stale cache entry. The chain id is fetched
// once more and, if it changed, signer and plan are resolved again for the chain actually found.
func (uc *DeployProtocol) reconnect(ctx context.Context, plan *DeployPlan, confirmed bool, connectErr error) (*DeployPlan, error) {
	cached := plan.Network
	network, err := uc.networks.RefreshNetwork(ctx, cached)
	if err != nil {
		uc.log.Debug("failed to refresh chain id", "network", cached.Name, "error", err)
		return nil, &domain.StepError{Step: domain.StepConnect, Err: connectErr}
	}
	if network.ChainID == cached.ChainID {
		return nil, &domain.StepError{Step: domain.StepConnect, Err: connectErr}
	}
	uc.log.Warn("cached chain id was stale", "network", network.Name, "cached", cached.ChainID, "actual", network.ChainID)
	uc.config.Network = network

	signer, err := uc.signers.ResolveSigner(ctx, network)
	if err != nil {
		return nil, &domain.StepError{Step: domain.StepSigner, Err: err}
	}
	plan = uc.buildPlan(network, signer)

	if !confirmed && uc.needsConfirmation(network) {
		if err := uc.confirm(ctx, plan); err != nil {
			return nil, err
		}
	}

	if err := uc.deployer.Connect(ctx, network, signer); err != nil {
		return nil, &domain.StepError{Step: domain.StepConnect, Err: err}
	}
	return plan, nil
}

func (uc *DeployProtocol) confirm(ctx context.Context, plan *DeployPlan) error {
	ok, err := uc.confirmer.ConfirmDeploy(ctx, plan)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeployCancelled
	}
	return nil
}

func (uc *DeployProtocol) needsConfirmation(network *config.Network) bool {
	return !network.IsLocal() && !uc.config.AssumeYes && !uc.config.NonInteractive
}

func (uc *DeployProtocol) buildPlan(network *config.Network, signer *models.Signer) *DeployPlan {
	p := uc.config.Params.WithDefaults()
	// Addresses are not known until earlier steps ran; plan args name the contract instead
	ref := func(name string) string { return "<" + name + ">" }

	return &DeployPlan{
		Network:    network,
		Signer:     signer,
		Params:     p,
		OutputFile: uc.config.OutputFile,
		Steps: []PlannedStep{
			{Step: domain.StepDeployDAOToken, Contract: domain.ContractDAOToken, Args: []any{p.TokenName, p.TokenSymbol}},
			{Step: domain.StepDeployZKReviewDAO, Contract: domain.ContractZKReviewDAO, Args: []any{ref(domain.ContractDAOToken)}},
			{Step: domain.StepDeployZKCodeReview, Contract: domain.ContractZKCodeReview, Args: []any{ref(domain.ContractZKReviewDAO)}},
			{Step: domain.StepSetZKReviewContract, Contract: domain.ContractZKReviewDAO, Args: []any{ref(domain.ContractZKCodeReview)}},
			{Step: domain.StepDeployVerifier, Contract: domain.ContractVerifier},
			{Step: domain.StepRegisterCircuit, Contract: domain.ContractZKCodeReview, Args: []any{p.CircuitName, p.CircuitDescription, p.CircuitIPFSCID, ref(domain.ContractVerifier)}},
		},
	}
}

// execute runs a single step against the chain
func (uc *DeployProtocol) execute(ctx context.Context, run *deployRun, step domain.Step) (*models.StepRecord, error) {
	p := run.plan.Params
	addr := func(name string) common.Address { return run.deployed[name].Address }

	switch step {
	case domain.StepDeployDAOToken:
		return uc.deploy(ctx, run, step, domain.ContractDAOToken, p.TokenName, p.TokenSymbol)
	case domain.StepDeployZKReviewDAO:
		return uc.deploy(ctx, run, step, domain.ContractZKReviewDAO, addr(domain.ContractDAOToken))
	case domain.StepDeployZKCodeReview:
		return uc.deploy(ctx, run, step, domain.ContractZKCodeReview, addr(domain.ContractZKReviewDAO))
	case domain.StepSetZKReviewContract:
		return uc.transact(ctx, run, step, domain.ContractZKReviewDAO, domain.MethodSetZKReviewContract,
			addr(domain.ContractZKCodeReview))
	case domain.StepDeployVerifier:
		return uc.deploy(ctx, run, step, domain.ContractVerifier)
	case domain.StepRegisterCircuit:
		return uc.transact(ctx, run, step, domain.ContractZKCodeReview, domain.MethodRegisterCircuit,
			p.CircuitName, p.CircuitDescription, p.CircuitIPFSCID, addr(domain.ContractVerifier))
	default:
		return nil, fmt.Errorf("unknown step %s", step)
	}
}

func (uc *DeployProtocol) deploy(ctx context.Context, run *deployRun, step domain.Step, name string, args ...any) (*models.StepRecord, error) {
	contract, err := uc.deployer.Deploy(ctx, run.artifacts[name], args...)
	if err != nil {
		return nil, err
	}
	run.deployed[name] = contract
	return &models.StepRecord{
		Step:     step,
		Contract: name,
		Address:  contract.Address,
		TxHash:   contract.TxHash,
	}, nil
}

func (uc *DeployProtocol) transact(ctx context.Context, run *deployRun, step domain.Step, name, method string, args ...any) (*models.StepRecord, error) {
	target := run.deployed[name].Address
	txHash, err := uc.deployer.Transact(ctx, target, run.artifacts[name], method, args...)
	if err != nil {
		return nil, err
	}
	return &models.StepRecord{
		Step:     step,
		Contract: name,
		Address:  target,
		TxHash:   txHash,
	}, nil
}

// checkMethods verifies the linking calls exist before anything is broadcast
func checkMethods(artifacts map[string]*models.Artifact) error {
	required := []struct{ contract, method string }{
		{domain.ContractZKReviewDAO, domain.MethodSetZKReviewContract},
		{domain.ContractZKCodeReview, domain.MethodRegisterCircuit},
	}

	var missing []string
	for _, req := range required {
		if !artifacts[req.contract].HasMethod(req.method) {
			missing = append(missing, req.contract+"."+req.method)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s not in ABI", domain.ErrMissingMethod, strings.Join(missing, ", "))
	}
	return nil
}

func describeStep(step domain.Step) string {
	switch step {
	case domain.StepDeployDAOToken, domain.StepDeployZKReviewDAO, domain.StepDeployZKCodeReview:
		return "Deploying " + string(step)[len("deploy:"):]
	case domain.StepDeployVerifier:
		return "Deploying sample Verifier"
	case domain.StepSetZKReviewContract:
		return "Setting ZKCodeReview address in DAO"
	case domain.StepRegisterCircuit:
		return "Registering sample circuit"
	default:
		return string(step)
	}
}

func describeRecord(record *models.StepRecord) string {
	switch record.Step {
	case domain.StepSetZKReviewContract:
		return "ZKCodeReview address set in DAO"
	case domain.StepRegisterCircuit:
		return "Sample circuit registered"
	case domain.StepDeployVerifier:
		return fmt.Sprintf("Sample Verifier deployed to: %s", record.Address.Hex())
	default:
		return fmt.Sprintf("%s deployed to: %s", record.Contract, record.Address.Hex())
	}
}
