// Package orchestrator contains the core state machine for a run:
// Plan → Build → Test, looping back to Build on a failed check until the
// suite passes or the iteration bound is reached.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/tonyc973/ForgeSwarm/internal/builder"
	"github.com/tonyc973/ForgeSwarm/internal/config"
	"github.com/tonyc973/ForgeSwarm/internal/log"
	"github.com/tonyc973/ForgeSwarm/internal/registry"
	"github.com/tonyc973/ForgeSwarm/internal/sandbox"
	"github.com/tonyc973/ForgeSwarm/internal/state"
	"github.com/tonyc973/ForgeSwarm/internal/types"
	"github.com/tonyc973/ForgeSwarm/internal/workspace"
)

// failLogPreviewLimit is how much of a failing test log is echoed to the
// terminal (the full log still reaches the fix-mode prompt, separately
// bounded by the builder).
const failLogPreviewLimit = 1500

// Oracle is the full code-generation collaborator: structured planning plus
// per-file generation.
type Oracle interface {
	Plan(ctx context.Context, requirement string) (*types.ProjectPlan, error)
	GenerateFile(ctx context.Context, instruction string) (*types.CodeFile, error)
}

// Orchestrator sequences the stages of one build-test-repair run. Execution
// is single-threaded and strictly sequential; the external oracle and
// sandbox calls block.
type Orchestrator struct {
	Config  *config.Config
	Store   *workspace.Store
	Oracle  Oracle
	Sandbox sandbox.Runner

	// RunID and StatePath drive run-state snapshots; an empty StatePath
	// disables persistence (used by tests).
	RunID     string
	StatePath string
}

// Run executes one complete run for requirement and returns the final
// BuildState. Planning and generation failures are fatal and returned as
// errors alongside the state reached so far; a run that merely exhausts its
// retry budget returns status failed with a nil error.
func (o *Orchestrator) Run(ctx context.Context, requirement string) (*types.BuildState, error) {
	startedAt := time.Now().UTC().Format(time.RFC3339)
	bs := &types.BuildState{
		Requirement: requirement,
		Status:      types.StatusStarting,
	}

	// PLANNING happens exactly once per run: a changed plan requires a new run.
	log.Section("PLANNING")
	log.Stage("architect: designing system structure")
	plan, err := o.Oracle.Plan(ctx, requirement)
	if err != nil {
		return bs, fmt.Errorf("planning failed: %w", err)
	}
	bs.Plan = plan
	log.Info(fmt.Sprintf("plan: %d files", len(plan.Files)))

	reg, err := registry.Build(plan)
	if err != nil {
		return bs, fmt.Errorf("invalid plan: %w", err)
	}
	o.persist(startedAt, bs)

	b := &builder.Builder{Store: o.Store, Oracle: o.Oracle, Registry: reg}

	for {
		// BUILDING
		log.Section(fmt.Sprintf("BUILDING — iteration %d", bs.Iteration))
		log.Stage("builder: implementing files")
		if err := b.Run(ctx, bs); err != nil {
			o.persist(startedAt, bs)
			return bs, fmt.Errorf("build stage failed: %w", err)
		}

		// TESTING
		log.Section("TESTING")
		log.Stage("tester: running suite")
		if err := sandbox.EnsureManifest(o.Store.Root()); err != nil {
			o.persist(startedAt, bs)
			return bs, fmt.Errorf("prepare manifest: %w", err)
		}
		result, err := o.Sandbox.RunTests(ctx)
		if err != nil {
			o.persist(startedAt, bs)
			return bs, fmt.Errorf("sandbox execution failed: %w", err)
		}

		bs.TestOutput = result.Output

		if result.ExitCode == 0 {
			bs.Status = types.StatusSuccess
			o.persist(startedAt, bs)
			log.Success("test suite passed")
			return bs, nil
		}

		bs.Status = types.StatusFailedCheck
		bs.Iteration++
		o.persist(startedAt, bs)

		log.Error("test suite failed")
		fmt.Printf("--- LOG START ---\n%s\n--- LOG END ---\n",
			builder.TailOf(result.Output, failLogPreviewLimit))

		if bs.Iteration >= o.Config.MaxIterations {
			bs.Status = types.StatusFailed
			o.persist(startedAt, bs)
			log.Error(fmt.Sprintf("max retries (%d) reached — giving up", o.Config.MaxIterations))
			return bs, nil
		}

		log.Warning("looping back to builder")
	}
}

// persist writes a run-state snapshot; failures are warnings, never fatal.
func (o *Orchestrator) persist(startedAt string, bs *types.BuildState) {
	if o.StatePath == "" {
		return
	}
	if err := state.Save(o.StatePath, state.Snapshot(o.RunID, startedAt, bs)); err != nil {
		log.Warning(fmt.Sprintf("save run state: %v", err))
	}
}
