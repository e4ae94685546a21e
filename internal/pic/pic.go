// Package pic orchestrates the per-step pipeline spec.md §2 names but
// leaves the driver for: Push -> Reorder -> Deposit -> Guard-fold ->
// FFT_fwd -> Poisson -> FFT_inv -> Guard-replicate. Engine.Step runs
// exactly this sequence once, using internal/parallel for every
// stage's fork/join barrier, grounded on the teacher's
// Simulation/Update(deltaTime) shape.
package pic

import (
	"fmt"

	"github.com/deveworld/pic3d/internal/config"
	"github.com/deveworld/pic3d/internal/deposit"
	"github.com/deveworld/pic3d/internal/field"
	"github.com/deveworld/pic3d/internal/fftcore"
	"github.com/deveworld/pic3d/internal/guard"
	"github.com/deveworld/pic3d/internal/particle"
	"github.com/deveworld/pic3d/internal/poisson"
	"github.com/deveworld/pic3d/internal/push"
	"github.com/deveworld/pic3d/internal/reorder"
	"github.com/deveworld/pic3d/internal/tiling"
)

// StepReport carries the reduction targets a caller observes after one
// Step call: accumulated kinetic energy, field energy, and the
// capacity-overflow signal irc (spec.md §9: these are reduction
// targets, never shared mutable state, so Step returns them instead of
// stashing them on the Engine).
type StepReport struct {
	Ek  float64
	We  float64
	Irc int
}

// Engine holds the long-lived state of one simulation: the particle
// population, the two field grids, and the precomputed FFT/Poisson
// tables that are built once and reused every step.
type Engine struct {
	cfg *config.Config
	dims tiling.Dims

	Pop  *particle.Population
	Q    *field.Scalar
	Fxyz *field.Vector

	tables *fftcore.Tables
	half   []complex128
	ffc    *poisson.FormFactor
}

// New constructs an Engine from a validated config, building the
// mixup/sct tables and the Poisson form-factor table once (the
// isign=0 call of spec.md §4.G), the way a driver would call the
// table-init entry points before the first Step.
func New(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pic.New: %w", err)
	}
	mx1, my1, mz1 := cfg.MxCounts()
	dims := tiling.Dims{Mx: cfg.Grid.Mx, My: cfg.Grid.My, Mz: cfg.Grid.Mz, Mx1: mx1, My1: my1, Mz1: mz1}

	nx, ny, nz := cfg.Grid.Nx, cfg.Grid.Ny, cfg.Grid.Nz
	maxDim := nx / 2
	if ny > maxDim {
		maxDim = ny
	}
	if nz > maxDim {
		maxDim = nz
	}
	tables, err := fftcore.BuildTables(maxDim)
	if err != nil {
		return nil, fmt.Errorf("pic.New: building FFT tables: %w", err)
	}

	e := &Engine{
		cfg:  cfg,
		dims: dims,
		Pop:  particle.New(dims, cfg.Capacity.Nppmx, cfg.Capacity.Ntmax, cfg.Capacity.Npbmx),
		Q:    field.NewScalar(nx, ny, nz, nx+1, ny+1, nz+1),
		Fxyz: field.NewVector(nx, ny, nz, nx+1, ny+1, nz+1),
		tables: tables,
		half:   fftcore.BuildHalfAngle(nx),
		ffc:    poisson.Build(nx, ny, nz, cfg.Physics.Ax, cfg.Physics.Ay, cfg.Physics.Az, cfg.Physics.Affp),
	}
	return e, nil
}

func (e *Engine) pushParams() push.Params {
	return push.Params{
		Qbm:  e.cfg.Physics.Qbm,
		Dt:   e.cfg.Physics.Dt,
		Ipbc: push.BoundaryPolicy(e.cfg.Physics.Ipbc),
		Nx:   e.cfg.Grid.Nx, Ny: e.cfg.Grid.Ny, Nz: e.cfg.Grid.Nz,
	}
}

// Step runs one full pipeline cycle: Push (with flagging) -> Reorder
// (fast, since Push already classified) -> Deposit -> Guard-fold ->
// FFT_fwd -> Poisson -> FFT_inv -> Guard-replicate.
func (e *Engine) Step() StepReport {
	p := e.pushParams()

	pushReport := push.RunWithFlag(e.Pop, e.Fxyz, p, e.cfg.Capacity.Ntmax)
	irc := pushReport.Irc
	if r := reorder.RunFast(e.Pop, e.cfg.Capacity.Npbmx); r > irc {
		irc = r
	}

	e.Q.Zero()
	deposit.Deposit(e.Pop, e.Q, e.cfg.Physics.Qm)
	guard.AccumulateScalar(e.Q)

	qhat := fftcore.ForwardScalar3D(e.Q, e.tables, e.half)
	result := poisson.Solve(qhat, e.ffc, e.cfg.Grid.Nx, e.cfg.Grid.Ny, e.cfg.Grid.Nz)
	e.Fxyz = fftcore.InverseVector3D(result.Fxyz, e.cfg.Grid.Nx, e.cfg.Grid.Ny, e.cfg.Grid.Nz, e.tables, e.half)
	guard.ReplicateVector(e.Fxyz)

	return StepReport{Ek: pushReport.Ek, We: result.We, Irc: irc}
}
