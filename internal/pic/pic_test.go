package pic

import (
	"testing"

	"github.com/deveworld/pic3d/internal/config"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Grid.Nx, cfg.Grid.Ny, cfg.Grid.Nz = 8, 8, 8
	cfg.Grid.Mx, cfg.Grid.My, cfg.Grid.Mz = 4, 4, 4
	cfg.Capacity.Nppmx, cfg.Capacity.Ntmax, cfg.Capacity.Npbmx = 32, 16, 16
	return cfg
}

func TestNewBuildsEmptyEngine(t *testing.T) {
	e, err := New(testConfig())
	require.NoError(t, err)
	require.Equal(t, 0, e.Pop.TotalLive())
	require.Equal(t, 8, e.Q.Nx)
	require.Equal(t, len(e.Q.Data), e.Q.Nxe*e.Q.Nye*e.Q.Nze)
}

// TestStepConservesParticleCountUnderNullField seeds a uniform, at-rest
// population and checks one Step leaves the particle count unchanged
// and reports zero kinetic energy (spec.md §8's null-field scenario,
// exercised at the whole-engine level).
func TestStepConservesParticleCountUnderNullField(t *testing.T) {
	cfg := testConfig()
	e, err := New(cfg)
	require.NoError(t, err)

	d := e.dims
	for l := 0; l < d.NumTiles(); l++ {
		noffx, noffy, noffz := d.Origin(l)
		e.Pop.Append(l, float64(noffx)+1.5, float64(noffy)+1.5, float64(noffz)+1.5, 0, 0, 0)
	}
	before := e.Pop.TotalLive()

	report := e.Step()

	require.Equal(t, before, e.Pop.TotalLive())
	require.InDelta(t, 0.0, report.Ek, 1e-9)
	require.Equal(t, 0, report.Irc)
}

// TestStepProducesNonNegativeFieldEnergy exercises the full
// Push->Reorder->Deposit->Guard->FFT->Poisson->FFT->Guard pipeline with
// a nonzero charge distribution and checks the returned field energy is
// a finite, non-negative value (spec.md §8's field-energy invariant:
// we = sum |q_hat|^2 * G * S over nonzero, non-Nyquist modes, which is
// a sum of nonnegative terms).
func TestStepProducesNonNegativeFieldEnergy(t *testing.T) {
	cfg := testConfig()
	e, err := New(cfg)
	require.NoError(t, err)

	d := e.dims
	e.Pop.Append(0, float64(1.5), 1.5, 1.5, 0, 0, 0)
	e.Pop.Append(d.NumTiles()-1, 6.5, 6.5, 6.5, 0, 0, 0)

	report := e.Step()

	require.GreaterOrEqual(t, report.We, 0.0)
	require.Equal(t, 0, report.Irc)
}
