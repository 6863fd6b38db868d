package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zkreview/zkr-cli/internal/domain"
)

const testFoundryToml = `[profile.default]
src = "src"
out = "out"

[profile.default.zkr]
private_key = "${ZKR_TEST_DEPLOYER_KEY}"
output = "deployments/local.json"

[profile.default.zkr.deploy]
token_name = "Review Token"
token_symbol = "RVW"

[profile.live]
out = "build"

[rpc_endpoints]
local = "http://127.0.0.1:8545"
sepolia = "${ZKR_TEST_SEPOLIA_RPC}"
`

func writeProject(t *testing.T, foundryToml string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foundry.toml"), []byte(foundryToml), 0644))
	return dir
}

func TestProvider_DefaultProfile(t *testing.T) {
	dir := writeProject(t, testFoundryToml)
	t.Setenv("ZKR_TEST_DEPLOYER_KEY", "0xabc")
	t.Setenv("ZKR_TEST_SEPOLIA_RPC", "https://rpc.sepolia.example")

	v := SetupViper(dir, nil)
	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, "default", cfg.Namespace)
	assert.Nil(t, cfg.Network)
	assert.Equal(t, "0xabc", cfg.PrivateKey)
	assert.Equal(t, filepath.Join(dir, "deployments/local.json"), cfg.OutputFile)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.ArtifactsDir)

	assert.Equal(t, "Review Token", cfg.Params.TokenName)
	assert.Equal(t, "RVW", cfg.Params.TokenSymbol)
	// unset fields fall back to the sample deployment
	assert.Equal(t, "SampleCircuit", cfg.Params.CircuitName)
	assert.Equal(t, "QmSampleCID", cfg.Params.CircuitIPFSCID)

	assert.Equal(t, "https://rpc.sepolia.example", cfg.FoundryConfig.RpcEndpoints["sepolia"])
}

func TestProvider_FlagsOverrideProfile(t *testing.T) {
	dir := writeProject(t, testFoundryToml)
	t.Setenv("ZKR_TEST_DEPLOYER_KEY", "0xabc")

	v := SetupViper(dir, nil)
	v.Set("private-key", "0xdef")
	v.Set("token-symbol", "ZZZ")
	v.Set("output", "/tmp/out.json")
	v.Set("artifacts", "artifacts")

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, "0xdef", cfg.PrivateKey)
	assert.Equal(t, "Review Token", cfg.Params.TokenName)
	assert.Equal(t, "ZZZ", cfg.Params.TokenSymbol)
	assert.Equal(t, "/tmp/out.json", cfg.OutputFile)
	assert.Equal(t, filepath.Join(dir, "artifacts"), cfg.ArtifactsDir)
}

func TestProvider_EnvOverridesProfile(t *testing.T) {
	dir := writeProject(t, testFoundryToml)
	t.Setenv("ZKR_TEST_DEPLOYER_KEY", "0xabc")
	t.Setenv("ZKR_CIRCUIT_NAME", "EnvCircuit")

	cfg, err := Provider(SetupViper(dir, nil))
	require.NoError(t, err)
	assert.Equal(t, "EnvCircuit", cfg.Params.CircuitName)
}

func TestProvider_UnsetPrivateKeyReference(t *testing.T) {
	dir := writeProject(t, testFoundryToml)

	_, err := Provider(SetupViper(dir, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ZKR_TEST_DEPLOYER_KEY")
}

func TestProvider_NamespaceWithoutZkrSection(t *testing.T) {
	dir := writeProject(t, testFoundryToml)

	v := SetupViper(dir, nil)
	v.Set("namespace", "live")
	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Nil(t, cfg.ZkrConfig)
	assert.Empty(t, cfg.PrivateKey)
	assert.Equal(t, filepath.Join(dir, domain.DefaultSummaryFile), cfg.OutputFile)
	assert.Equal(t, filepath.Join(dir, "build"), cfg.ArtifactsDir)
	assert.Equal(t, domain.DefaultDeployParams(), cfg.Params)
}

func TestProvider_LoadsDotEnv(t *testing.T) {
	dir := writeProject(t, testFoundryToml)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ZKR_TEST_DEPLOYER_KEY=0xfromenvfile\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("ZKR_TEST_DEPLOYER_KEY") })

	cfg, err := Provider(SetupViper(dir, nil))
	require.NoError(t, err)
	assert.Equal(t, "0xfromenvfile", cfg.PrivateKey)
}

func TestFindProjectRoot(t *testing.T) {
	dir := writeProject(t, "")
	nested := filepath.Join(dir, "src", "contracts")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	root, err := FindProjectRoot()
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
