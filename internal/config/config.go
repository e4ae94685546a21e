// Package config loads the problem-size and tiling configuration that
// every other package needs at construction time: grid dimensions, tile
// partition, per-tile capacities, and the physics constants of
// spec.md §4.D/G. Loading follows pthm-soup/config's shape
// (//go:embed defaults.yaml unmarshaled with gopkg.in/yaml.v3, a user
// file optionally merged on top), combined with the teacher's
// DefaultConfig/Validate/Clone trio.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// GridConfig describes the logical mesh and its tile partition
// (spec.md §3).
type GridConfig struct {
	Nx int `yaml:"nx"`
	Ny int `yaml:"ny"`
	Nz int `yaml:"nz"`

	Mx int `yaml:"mx"`
	My int `yaml:"my"`
	Mz int `yaml:"mz"`
}

// CapacityConfig bounds the per-tile data structures (spec.md §3, §6).
type CapacityConfig struct {
	Nppmx int `yaml:"nppmx"`
	Ntmax int `yaml:"ntmax"`
	Npbmx int `yaml:"npbmx"`
}

// PhysicsConfig carries the scalar parameters Push and Poisson need
// (spec.md §4.D, §4.G).
type PhysicsConfig struct {
	Qm   float64 `yaml:"qm"`
	Qbm  float64 `yaml:"qbm"`
	Dt   float64 `yaml:"dt"`
	Ipbc int     `yaml:"ipbc"`
	Ax   float64 `yaml:"ax"`
	Ay   float64 `yaml:"ay"`
	Az   float64 `yaml:"az"`
	Affp float64 `yaml:"affp"`
}

// Config is the top-level, fully-resolved simulation configuration.
type Config struct {
	Grid     GridConfig     `yaml:"grid"`
	Capacity CapacityConfig `yaml:"capacity"`
	Physics  PhysicsConfig  `yaml:"physics"`
}

// Default returns the configuration baked into defaults.yaml.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults.yaml is invalid: %v", err))
	}
	return cfg
}

// Load reads defaults.yaml and then, if path is non-empty, merges a
// user-supplied YAML file on top (fields present in the file override
// the embedded defaults; everything else keeps its default).
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the shape invariants of spec.md §3/§7.2: positive grid
// and tile dimensions, tile sizes that evenly divide the grid, positive
// capacities, ipbc in 1..3, and power-of-two grid dimensions for the
// FFT. Guard-cell extents are checked by field.NewScalar/NewVector.
func (c *Config) Validate() error {
	if c.Grid.Nx <= 0 || c.Grid.Ny <= 0 || c.Grid.Nz <= 0 {
		return fmt.Errorf("config: grid dimensions must be positive, got (%d,%d,%d)", c.Grid.Nx, c.Grid.Ny, c.Grid.Nz)
	}
	if c.Grid.Mx <= 0 || c.Grid.My <= 0 || c.Grid.Mz <= 0 {
		return fmt.Errorf("config: tile dimensions must be positive, got (%d,%d,%d)", c.Grid.Mx, c.Grid.My, c.Grid.Mz)
	}
	if c.Grid.Nx%c.Grid.Mx != 0 || c.Grid.Ny%c.Grid.My != 0 || c.Grid.Nz%c.Grid.Mz != 0 {
		return fmt.Errorf("config: grid dimensions must be evenly divisible by tile dimensions")
	}
	if c.Capacity.Nppmx <= 0 || c.Capacity.Ntmax <= 0 || c.Capacity.Npbmx <= 0 {
		return fmt.Errorf("config: capacities must be positive, got nppmx=%d ntmax=%d npbmx=%d", c.Capacity.Nppmx, c.Capacity.Ntmax, c.Capacity.Npbmx)
	}
	if c.Physics.Ipbc < 1 || c.Physics.Ipbc > 3 {
		return fmt.Errorf("config: ipbc must be 1, 2, or 3, got %d", c.Physics.Ipbc)
	}
	if !isPowerOfTwo(c.Grid.Nx) || !isPowerOfTwo(c.Grid.Ny) || !isPowerOfTwo(c.Grid.Nz) {
		return fmt.Errorf("config: grid dimensions must be powers of two for the FFT, got (%d,%d,%d)", c.Grid.Nx, c.Grid.Ny, c.Grid.Nz)
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Clone returns a deep copy, so callers can mutate a working copy
// without disturbing a shared default.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// MxCounts derives the tile counts (mx1, my1, mz1) from the grid and
// tile dimensions.
func (c *Config) MxCounts() (mx1, my1, mz1 int) {
	return c.Grid.Nx / c.Grid.Mx, c.Grid.Ny / c.Grid.My, c.Grid.Nz / c.Grid.Mz
}
