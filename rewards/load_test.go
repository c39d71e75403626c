package rewards

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 3, f.FreeSpins)
	assert.Equal(t, Token("FREE SPINS"), f.BonusTrigger)
	assert.Equal(t, 3*time.Second, f.SpinDuration)
	assert.Len(t, f.Sectors, 18)

	r, err := f.Registry()
	require.NoError(t, err)
	pc, err := r.Pool("POOL_C")
	require.NoError(t, err)
	assert.Equal(t, int64(106), pc.TotalWeight())
	main, _ := r.Template(Main)
	assert.Len(t, main, 10)
	bonus, _ := r.Template(Bonus)
	assert.Equal(t, []string{"POOL_FS", "POOL_FS", "POOL_FS"}, bonus)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wheel.yaml")
	data := []byte(`
free_spins: 2
bonus_trigger: BONUS
sectors: [10, 20, BONUS]
pools:
  A:
    - {reward: 10, weight: 3}
    - {reward: BONUS, weight: 1}
  B:
    - {reward: 20, weight: 1}
templates:
  main: [A]
  bonus: [B, B]
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSpinDuration, f.SpinDuration)
	assert.Equal(t, []Token{"10", "20", "BONUS"}, f.Sectors)

	r, err := f.Registry()
	require.NoError(t, err)
	assert.Equal(t, []Token{"10", "BONUS"}, r.Outcomes(Main))
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	f, err := Load("")
	require.NoError(t, err)
	assert.Len(t, f.Sectors, 18)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("free_spins: -1\nspin_duration: -2s\n"))
	require.Error(t, err)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Problems, "free_spins must be >= 0")
	assert.Contains(t, ce.Problems, "spin_duration must be >= 0")
	assert.Contains(t, ce.Problems, "sectors must not be empty")

	_, err = Parse([]byte("free_spins: 1\nsectors: [a]\n"))
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"bonus_trigger is required when free_spins > 0"}, ce.Problems)

	_, err = Parse([]byte("sectors: [a"))
	assert.True(t, IsConfigError(err))
}
