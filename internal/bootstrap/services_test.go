package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aromabase/aromabase/config"
)

func TestNewServices_FailsWithoutAuthService(t *testing.T) {
	t.Parallel()

	// No redis client means no session store, so the auth service cannot be
	// built. That must be a startup error, not a nil service wired into the
	// session resolver.
	cfg := &config.AppConfig{}
	cfg.Auth.Mode = config.AuthModeOAuth

	_, err := NewServices(&ServiceDeps{Config: cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth service not configured")
}
