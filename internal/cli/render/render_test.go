package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zkreview/zkr-cli/internal/domain"
	"github.com/zkreview/zkr-cli/internal/domain/config"
	"github.com/zkreview/zkr-cli/internal/usecase"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func testSummary() *domain.DeploymentSummary {
	return &domain.DeploymentSummary{
		DAOToken:       "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		ZKReviewDAO:    "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512",
		ZKCodeReview:   "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0",
		SampleVerifier: "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9",
	}
}

func checkedResult() *usecase.ShowDeploymentResult {
	result := &usecase.ShowDeploymentResult{
		Path:    "deployment-info.json",
		Summary: testSummary(),
		Network: &config.Network{Name: "anvil", ChainID: 31337},
	}
	for i, entry := range result.Summary.Entries() {
		check := usecase.ContractCheck{Key: entry.Key, Address: entry.Address, Exists: i != 3}
		if !check.Exists {
			check.Reason = "no code at address on chain 31337"
		}
		result.Checks = append(result.Checks, check)
	}
	return result
}

func TestNetworksRenderer(t *testing.T) {
	var out bytes.Buffer
	err := NewNetworksRenderer(&out).Render(&usecase.ListNetworksResult{Networks: []usecase.NetworkStatus{
		{Name: "anvil", ChainID: 31337},
		{Name: "sepolia", EnvVar: "SEPOLIA_RPC_URL", Error: errors.New("empty RPC URL")},
	}})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "✅ anvil - Chain ID: 31337")
	assert.Contains(t, out.String(), "❌ sepolia (${SEPOLIA_RPC_URL}) - Error: empty RPC URL")

	out.Reset()
	require.NoError(t, NewNetworksRenderer(&out).Render(&usecase.ListNetworksResult{}))
	assert.Contains(t, out.String(), "No networks configured")
}

func TestDeploymentRenderer_Table(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewDeploymentRenderer(&out, FormatTable).Render(checkedResult()))

	assert.Contains(t, out.String(), "Network: anvil (chain 31337)")
	assert.Contains(t, out.String(), "✓ deployed")
	assert.Contains(t, out.String(), "✗ no code at address")
}

func TestDeploymentRenderer_MachineFormats(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewDeploymentRenderer(&out, FormatJSON).Render(checkedResult()))

	var decoded showOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "anvil", decoded.Network)
	require.Len(t, decoded.Checks, 4)
	assert.False(t, decoded.Checks[3].Exists)

	out.Reset()
	require.NoError(t, NewDeploymentRenderer(&out, FormatYAML).Render(&usecase.ShowDeploymentResult{Summary: testSummary()}))

	var fromYAML domain.DeploymentSummary
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &fromYAML))
	assert.Equal(t, *testSummary(), fromYAML)

	assert.Error(t, NewDeploymentRenderer(&out, "xml").Render(checkedResult()))
}

func TestDeployRenderer_Completed(t *testing.T) {
	var out bytes.Buffer
	result := &usecase.DeployProtocolResult{
		Plan:     &usecase.DeployPlan{Network: &config.Network{Name: "anvil", ChainID: 31337}},
		Summary:  testSummary(),
		Duration: 1500 * time.Millisecond,
	}
	require.NoError(t, NewDeployRenderer(&out).Render(result))

	assert.Contains(t, out.String(), "ZKCodeReview")
	assert.Contains(t, out.String(), "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0")
	assert.Contains(t, out.String(), "Deployed 4 contracts to anvil in 1.5s")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "✅ done", FormatSuccess("done"))
	assert.Equal(t, "⚠️  careful", FormatWarning("careful"))
}
