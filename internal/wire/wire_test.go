package wire

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/alchemyrand/internal/config"
)

const hand = "; edited by hand\n[Settings]\niRandomMethod = 0\niRandomizeOn = 1\nbUnlearnIngredients = true\niSeed = 7\n"

func TestReadSettings_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")

	s := readSettings(path, true, zap.NewNop())

	assert.Equal(t, config.DefaultSettings(), s)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "a missing file must not be created")
}

func TestReadSettings_Rewrite(t *testing.T) {
	want := config.Settings{RandomMethod: 0, RandomizeOn: 1, UnlearnIngredients: true, Seed: 7}

	t.Run("rewrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.ini")
		require.NoError(t, os.WriteFile(path, []byte(hand), 0644))

		s := readSettings(path, true, zap.NewNop())

		assert.Equal(t, want, s)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEqual(t, hand, string(data))
		reread, err := config.LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, want, reread)
	})

	t.Run("read only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.ini")
		require.NoError(t, os.WriteFile(path, []byte(hand), 0644))

		s := readSettings(path, false, zap.NewNop())

		assert.Equal(t, want, s)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, hand, string(data))
	})
}
