package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zkreview/zkr-cli/internal/app"
	domainconfig "github.com/zkreview/zkr-cli/internal/domain/config"
)

const (
	stopContract = `{"object":"0x60016000f3"}`
	daoABI       = `[{"type":"constructor","inputs":[{"name":"token","type":"address"}]},{"type":"function","name":"setZKReviewContract","inputs":[{"name":"review","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}]`
	reviewABI    = `[{"type":"constructor","inputs":[{"name":"dao","type":"address"}]},{"type":"function","name":"registerCircuit","inputs":[{"name":"name","type":"string"},{"name":"description","type":"string"},{"name":"ipfsCid","type":"string"},{"name":"verifier","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}]`
	tokenABI     = `[{"type":"constructor","inputs":[{"name":"name","type":"string"},{"name":"symbol","type":"string"}]}]`
)

// newTestProject creates a Foundry project with compiled artifacts and chdirs into it
func newTestProject(t *testing.T, rpcURL string) string {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	t.Setenv("ZKR_PRIVATE_KEY", "")

	root := t.TempDir()
	foundryToml := "[profile.default]\nout = \"out\"\n\n[rpc_endpoints]\nlocal = \"" + rpcURL + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "foundry.toml"), []byte(foundryToml), 0644))

	for name, abiJSON := range map[string]string{
		"DAOToken":     tokenABI,
		"ZKReviewDAO":  daoABI,
		"ZKCodeReview": reviewABI,
		"Verifier":     `[]`,
	} {
		dir := filepath.Join(root, "out", name+".sol")
		require.NoError(t, os.MkdirAll(dir, 0755))
		artifact := `{"abi":` + abiJSON + `,"bytecode":` + stopContract + `}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(artifact), 0644))
	}

	t.Chdir(root)
	return root
}

// newLocalChainServer answers eth_chainId with the anvil chain id
func newLocalChainServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID json.RawMessage `json:"id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": "0x7a69"})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_Commands(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"deploy", "show", "networks", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	deploy, _, err := cmd.Find([]string{"deploy"})
	require.NoError(t, err)
	for _, flag := range []string{"private-key", "output", "artifacts", "token-name", "token-symbol",
		"circuit-name", "circuit-description", "circuit-cid", "dry-run", "yes"} {
		assert.NotNil(t, deploy.Flags().Lookup(flag), flag)
	}

	for _, flag := range []string{"debug", "non-interactive", "namespace", "network", "timeout"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCmd_NoProjectNeeded(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "zkr version dev")
}

func TestDeployCmd_DryRun(t *testing.T) {
	srv := newLocalChainServer(t)
	root := newTestProject(t, srv.URL)

	out, err := execute(t, "deploy", "--network", "local", "--dry-run", "--non-interactive")
	require.NoError(t, err)

	assert.Contains(t, out, "Deployment plan")
	assert.Contains(t, out, "local (chain 31337)")
	assert.Contains(t, out, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	assert.Contains(t, out, `DAOToken("ZKReview Token", "ZKR")`)
	assert.Contains(t, out, "ZKReviewDAO.setZKReviewContract(<ZKCodeReview>)")
	assert.Contains(t, out, `ZKCodeReview.registerCircuit("SampleCircuit", "A sample circuit for testing", "QmSampleCID", <Verifier>)`)
	assert.Contains(t, out, "Dry run")

	_, err = os.Stat(filepath.Join(root, "deployment-info.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeployCmd_FlagOverrides(t *testing.T) {
	srv := newLocalChainServer(t)
	newTestProject(t, srv.URL)

	out, err := execute(t, "deploy", "-n", "local", "--dry-run", "--non-interactive",
		"--token-name", "Other", "--token-symbol", "OTH", "--output", "deployments/local.json")
	require.NoError(t, err)

	assert.Contains(t, out, `DAOToken("Other", "OTH")`)
	assert.Contains(t, out, filepath.Join("deployments", "local.json"))
}

func TestDeployCmd_NonInteractiveNeedsNetwork(t *testing.T) {
	srv := newLocalChainServer(t)
	newTestProject(t, srv.URL)

	_, err := execute(t, "deploy", "--non-interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--network")
}

func TestDeployCmd_MissingArtifacts(t *testing.T) {
	srv := newLocalChainServer(t)
	root := newTestProject(t, srv.URL)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "out", "Verifier.sol")))

	_, err := execute(t, "deploy", "--network", "local", "--dry-run", "--non-interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Verifier")
}

func TestShowCmd(t *testing.T) {
	root := newTestProject(t, "http://127.0.0.1:1")
	summary := `{
  "DAOToken": "0x5FbDB2315678afecb367f032d93F642f64180aa3",
  "ZKReviewDAO": "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512",
  "ZKCodeReview": "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0",
  "SampleVerifier": "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "deployment-info.json"), []byte(summary), 0644))

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "show", "--format", "json")
		require.NoError(t, err)
		assert.Equal(t, summary, out)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, "show", "--format", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "DAOToken: ")
		assert.Contains(t, out, "0x5FbDB2315678afecb367f032d93F642f64180aa3")
		assert.NotContains(t, out, "{")
	})

	t.Run("table", func(t *testing.T) {
		out, err := execute(t, "show")
		require.NoError(t, err)
		assert.Contains(t, out, "SampleVerifier")
		assert.Contains(t, out, "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "show", "--format", "xml")
		assert.ErrorContains(t, err, "unknown format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "show", "--file", "nope.json")
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("check needs network", func(t *testing.T) {
		_, err := execute(t, "show", "--check")
		assert.ErrorContains(t, err, "--network")
	})
}

func TestRunContext(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	t.Run("timeout sets a deadline", func(t *testing.T) {
		ctx, cancel := runContext(cmd, &app.App{Config: &domainconfig.RuntimeConfig{Timeout: time.Minute}})
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 10*time.Second)

		cancel()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	})

	t.Run("zero timeout waits forever", func(t *testing.T) {
		ctx, cancel := runContext(cmd, &app.App{Config: &domainconfig.RuntimeConfig{}})
		_, ok := ctx.Deadline()
		assert.False(t, ok)

		cancel()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	})
}
