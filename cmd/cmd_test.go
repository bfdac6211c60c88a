package cmd_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strangelove-ventures/ata-devtool/cmd"
	testutil "github.com/strangelove-ventures/ata-devtool/test_util"
	"github.com/strangelove-ventures/ata-devtool/types"
	"github.com/strangelove-ventures/ata-devtool/ui"
)

func run(t *testing.T, a *cmd.AppState, args ...string) error {
	t.Helper()
	root := cmd.NewRootCmd(a)
	root.SetArgs(append(args, "--log-level", "error"))
	return root.ExecuteContext(context.Background())
}

func TestSubmitCreated(t *testing.T) {
	a, fb := testutil.ConfigSetup(t)
	rec := ui.NewRecordingUI()
	a.UI = rec

	err := run(t, a, "submit", "--token", "USDC", "--owner", testutil.TestOwner)
	require.NoError(t, err)

	require.Equal(t, []string{"Success: ATA created for USDC."}, rec.Values("ToastSuccess"))
	require.True(t, rec.HasMessage(testutil.TestAta))
	require.Len(t, fb.Requests(), 1)
	require.Equal(t, testutil.TestAPIKey, fb.Requests()[0].Get("apiKey"))
}

func TestSubmitInvalidKeyFails(t *testing.T) {
	a, fb := testutil.ConfigSetup(t)
	rec := ui.NewRecordingUI()
	a.UI = rec

	err := run(t, a, "submit", "--token", "USDC", "--owner", "0OIl")
	require.ErrorIs(t, err, cmd.ErrSubmissionFailed)
	require.Equal(t, []string{"Invalid Public Key: Please enter a valid Solana public key (32-44 base58 characters)."}, rec.Values("ToastError"))
	require.Empty(t, fb.Requests())
}

func TestSubmitBackendErrorFails(t *testing.T) {
	a, _ := testutil.ConfigSetup(t)
	rec := ui.NewRecordingUI()
	a.UI = rec

	err := run(t, a, "submit", "--token", "ORCA", "--owner", testutil.TestOwner)
	require.ErrorIs(t, err, cmd.ErrSubmissionFailed)
	require.ErrorContains(t, err, "Unsupported token: ORCA")
	require.Equal(t, []string{"Error: Unsupported token: ORCA"}, rec.Values("ToastError"))
}

func TestFormCommand(t *testing.T) {
	a, _ := testutil.ConfigSetup(t)
	// first catalog entry, then the owner address
	rec := ui.NewRecordingUI("1", testutil.TestOwner)
	a.UI = rec

	require.NoError(t, run(t, a, "form"))
	require.Equal(t, []string{"Success: ATA created for USDC."}, rec.Values("ToastSuccess"))
	require.Contains(t, rec.Values("Spinner"), "Processing...")
}

func TestTokensCommand(t *testing.T) {
	a, _ := testutil.ConfigSetup(t)
	rec := ui.NewRecordingUI()
	a.UI = rec

	require.NoError(t, run(t, a, "tokens"))
	rows := rec.Values("KeyValue")
	require.Len(t, rows, len(types.Tokens()))
	require.Equal(t, "tETH Turbo ETH", rows[4])
}

func TestParseConfig(t *testing.T) {
	t.Setenv(types.EnvBackendURL, "")
	t.Setenv(types.EnvAPIKey, "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend:
  base-url: https://ata.example.com/
  api-key: from-file
server:
  trusted-proxies: ["10.0.0.1"]
`), 0o600))

	cfg, err := cmd.ParseConfig(path)
	require.NoError(t, err)
	require.Equal(t, "https://ata.example.com/", cfg.Backend.BaseURL)
	require.Equal(t, "from-env", cfg.Backend.APIKey)
	require.Equal(t, types.DefaultServerAddress, cfg.Server.Address)
	require.Equal(t, []string{"10.0.0.1"}, cfg.Server.TrustedProxies)

	_, err = cmd.ParseConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseConfigInvalidBackend(t *testing.T) {
	t.Setenv(types.EnvBackendURL, "ftp://nope")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  base-url: https://ok.example.com\n"), 0o600))

	_, err := cmd.ParseConfig(path)
	require.ErrorContains(t, err, "invalid config")
}
