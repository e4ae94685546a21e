package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultLoadsEmbeddedDefaults(t *testing.T) {
	cfg := Default()
	require.Equal(t, 32, cfg.Grid.Nx)
	require.Equal(t, 8, cfg.Grid.Mx)
	require.Equal(t, 512, cfg.Capacity.Nppmx)
	require.Equal(t, 1, cfg.Physics.Ipbc)
	require.NoError(t, cfg.Validate())
}

func TestLoadMergesUserFileOverDefaults(t *testing.T) {
	path := writeTempYAML(t, "grid:\n  nx: 64\n  ny: 64\n  nz: 64\n  mx: 16\n  my: 16\n  mz: 16\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.Grid.Nx)
	require.Equal(t, 16, cfg.Grid.Mx)
	// fields absent from the user file keep their embedded default
	require.Equal(t, 512, cfg.Capacity.Nppmx)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{name: "valid default", mutate: func(*Config) {}, wantError: false},
		{name: "zero grid dimension", mutate: func(c *Config) { c.Grid.Nx = 0 }, wantError: true},
		{name: "non power of two grid", mutate: func(c *Config) { c.Grid.Nx = 30 }, wantError: true},
		{name: "grid not divisible by tile", mutate: func(c *Config) { c.Grid.Mx = 5 }, wantError: true},
		{name: "zero capacity", mutate: func(c *Config) { c.Capacity.Nppmx = 0 }, wantError: true},
		{name: "bad ipbc", mutate: func(c *Config) { c.Physics.Ipbc = 4 }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Grid.Nx = 999
	require.NotEqual(t, cfg.Grid.Nx, clone.Grid.Nx)
}

func TestMxCounts(t *testing.T) {
	cfg := Default()
	mx1, my1, mz1 := cfg.MxCounts()
	require.Equal(t, 4, mx1)
	require.Equal(t, 4, my1)
	require.Equal(t, 4, mz1)
}

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
