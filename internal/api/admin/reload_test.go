package admin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connector-service/internal/config"
)

const baseConfigTOML = `
[server]
bind_address = ":9090"

[admin]
bind_address = ":8080"
jwt_secret = "secret"

[connectors.razorpay]
base_url = "https://api.razorpay.com"
`

func TestReloader_CurrentReturnsInitialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(baseConfigTOML), 0o600))

	initial, err := config.Load(path)
	require.NoError(t, err)

	r := NewReloader(path, initial)
	assert.Equal(t, initial, r.Current())
}

func TestReloader_ReloadPicksUpFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(baseConfigTOML), 0o600))

	initial, err := config.Load(path)
	require.NoError(t, err)
	r := NewReloader(path, initial)

	updated := baseConfigTOML + "\n[connectors.stripe]\nbase_url = \"https://api.stripe.com\"\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	cfg, err := r.Reload()
	require.NoError(t, err)
	assert.Len(t, cfg.Connectors, 2)
	assert.Equal(t, cfg, r.Current())
}

func TestReloader_FailedReloadKeepsPreviousConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(baseConfigTOML), 0o600))

	initial, err := config.Load(path)
	require.NoError(t, err)
	r := NewReloader(path, initial)

	require.NoError(t, os.WriteFile(path, []byte("not valid toml {{{"), 0o600))

	_, err = r.Reload()
	assert.Error(t, err)
	assert.Equal(t, initial, r.Current())
}
