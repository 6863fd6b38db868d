package domain

// Contract names as they appear in compiled artifacts.
const (
	ContractDAOToken     = "DAOToken"
	ContractZKReviewDAO  = "ZKReviewDAO"
	ContractZKCodeReview = "ZKCodeReview"
	ContractVerifier     = "Verifier"
)

// Methods called after deployment to wire the contracts together.
const (
	MethodSetZKReviewContract = "setZKReviewContract"
	MethodRegisterCircuit     = "registerCircuit"
)

// Step identifies one stage of a protocol deployment.
type Step string

const (
	StepSigner              Step = "signer"
	StepArtifacts           Step = "artifacts"
	StepConnect             Step = "connect"
	StepDeployDAOToken      Step = "deploy:" + ContractDAOToken
	StepDeployZKReviewDAO   Step = "deploy:" + ContractZKReviewDAO
	StepDeployZKCodeReview  Step = "deploy:" + ContractZKCodeReview
	StepSetZKReviewContract Step = "call:" + MethodSetZKReviewContract
	StepDeployVerifier      Step = "deploy:" + ContractVerifier
	StepRegisterCircuit     Step = "call:" + MethodRegisterCircuit
	StepWriteSummary        Step = "write"
)

// ProtocolSteps lists the remote steps in the order they are executed.
var ProtocolSteps = []Step{
	StepDeployDAOToken,
	StepDeployZKReviewDAO,
	StepDeployZKCodeReview,
	StepSetZKReviewContract,
	StepDeployVerifier,
	StepRegisterCircuit,
}

// ProtocolContracts lists every artifact a deployment needs.
var ProtocolContracts = []string{
	ContractDAOToken,
	ContractZKReviewDAO,
	ContractZKCodeReview,
	ContractVerifier,
}

// DeployParams holds constructor and registration arguments.
type DeployParams struct {
	TokenName          string `json:"tokenName" toml:"token_name"`
	TokenSymbol        string `json:"tokenSymbol" toml:"token_symbol"`
	CircuitName        string `json:"circuitName" toml:"circuit_name"`
	CircuitDescription string `json:"circuitDescription" toml:"circuit_description"`
	CircuitIPFSCID     string `json:"circuitIpfsCid" toml:"circuit_ipfs_cid"`
}

// DefaultDeployParams returns the parameters of the reference sample deployment.
func DefaultDeployParams() DeployParams {
	return DeployParams{
		TokenName:          "ZKReview Token",
		TokenSymbol:        "ZKR",
		CircuitName:        "SampleCircuit",
		CircuitDescription: "A sample circuit for testing",
		CircuitIPFSCID:     "QmSampleCID",
	}
}

// WithDefaults fills empty fields from DefaultDeployParams.
func (p DeployParams) WithDefaults() DeployParams {
	def := DefaultDeployParams()
	if p.TokenName == "" {
		p.TokenName = def.TokenName
	}
	if p.TokenSymbol == "" {
		p.TokenSymbol = def.TokenSymbol
	}
	if p.CircuitName == "" {
		p.CircuitName = def.CircuitName
	}
	if p.CircuitDescription == "" {
		p.CircuitDescription = def.CircuitDescription
	}
	if p.CircuitIPFSCID == "" {
		p.CircuitIPFSCID = def.CircuitIPFSCID
	}
	return p
}
