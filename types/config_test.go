package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strangelove-ventures/ata-devtool/types"
)

func TestConfigValidate(t *testing.T) {
	cfg := types.Config{Backend: types.BackendSettings{BaseURL: "https://ata.example.com"}}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, types.DefaultServerAddress, cfg.Server.Address)
	require.Equal(t, types.DefaultSessionTTLSeconds, cfg.Server.SessionTTL)
}

func TestConfigValidateBackendURL(t *testing.T) {
	for _, baseURL := range []string{"", "   ", "ftp://ata.example.com", "https://", "://bad"} {
		cfg := types.Config{Backend: types.BackendSettings{BaseURL: baseURL}}
		err := cfg.Validate()
		require.Error(t, err, baseURL)
		require.Contains(t, err.Error(), "invalid backend settings")
	}
}

func TestConfigValidateNegativeTTL(t *testing.T) {
	cfg := types.Config{
		Backend: types.BackendSettings{BaseURL: "http://localhost:3001"},
		Server:  types.ServerSettings{SessionTTL: -1},
	}
	require.Error(t, cfg.Validate())
}

func TestConfigApplyEnv(t *testing.T) {
	t.Setenv(types.EnvBackendURL, "https://env.example.com")
	t.Setenv(types.EnvAPIKey, "env-key")

	cfg := types.Config{Backend: types.BackendSettings{BaseURL: "https://file.example.com", APIKey: "file-key"}}
	cfg.ApplyEnv()
	require.Equal(t, "https://env.example.com", cfg.Backend.BaseURL)
	require.Equal(t, "env-key", cfg.Backend.APIKey)
}

func TestConfigApplyEnvUnset(t *testing.T) {
	t.Setenv(types.EnvBackendURL, "")

	cfg := types.Config{Backend: types.BackendSettings{BaseURL: "https://file.example.com", APIKey: "file-key"}}
	cfg.ApplyEnv()
	require.Equal(t, "https://file.example.com", cfg.Backend.BaseURL)
}
