package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/angple/internal/config"
	"github.com/existflow/angple/internal/theme"
)

func useTempState(t *testing.T) {
	t.Helper()
	prev := cfg
	cfg = config.DefaultConfig()
	cfg.StateBackend = "sqlite"
	cfg.StatePath = filepath.Join(t.TempDir(), "state.db")
	cfg.UseMock = false
	t.Cleanup(func() { cfg = prev })
}

func TestMockCommandPersistsMode(t *testing.T) {
	useTempState(t)

	require.NoError(t, runMock(mockCmd, []string{"on"}))

	s, err := openSession(context.Background())
	require.NoError(t, err)
	defer s.Close()
	assert.True(t, s.client.IsMockMode())
}

func TestMockCommandRejectsUnknownArg(t *testing.T) {
	useTempState(t)
	assert.Error(t, runMock(mockCmd, []string{"maybe"}))
}

func TestSessionRestoresTheme(t *testing.T) {
	useTempState(t)
	ctx := context.Background()

	s, err := openSession(ctx)
	require.NoError(t, err)
	require.NoError(t, s.themes.Switch(ctx, theme.Classic))
	require.NoError(t, s.Close())

	s, err = openSession(ctx)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, theme.Classic, s.themes.Current().ID)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "자유게...", truncate("자유게시판 글입니다", 6))
}
