// Package builder drives per-file code generation: it orders the planned
// files, assembles dependency context and the import-registry constraint for
// each one, invokes the oracle, and persists changed output to the workspace
// store. Generation is strictly sequential so a later file's context can
// include an earlier file's freshly generated content.
package builder

import (
	"context"
	"fmt"

	"github.com/tonyc973/ForgeSwarm/internal/log"
	"github.com/tonyc973/ForgeSwarm/internal/registry"
	"github.com/tonyc973/ForgeSwarm/internal/templates"
	"github.com/tonyc973/ForgeSwarm/internal/types"
	"github.com/tonyc973/ForgeSwarm/internal/workspace"
)

// errLogLimit is the number of trailing characters of the previous test log
// surfaced in a fix-mode prompt.
const errLogLimit = 2500

// staticArtifacts are files assumed stable across repair cycles: regenerating
// them after a test failure wastes oracle calls and risks churning content
// the failure had nothing to do with.
var staticArtifacts = map[string]bool{
	"README.md":        true,
	"Dockerfile":       true,
	".gitignore":       true,
	"requirements.txt": true,
}

// Oracle is the generation half of the code oracle: one instruction in, one
// filename/content pair out. A failed or unparsable call is fatal to the run;
// there is no per-file retry distinct from the whole-run repair loop.
type Oracle interface {
	GenerateFile(ctx context.Context, instruction string) (*types.CodeFile, error)
}

// Builder materializes content for every planned file in scheduler order.
type Builder struct {
	Store    *workspace.Store
	Oracle   Oracle
	Registry *registry.Registry
}

// Run executes one build pass over state.Plan. On a repair pass
// (state.Iteration > 0) static artifacts are skipped and each prompt carries
// the fix-mode block: the file's previous content plus the trailing slice of
// the failing test log.
//
// Writes only happen after a successful, parsed oracle result, so an aborted
// pass never leaves a partially written file behind.
func (b *Builder) Run(ctx context.Context, state *types.BuildState) error {
	fixMode := state.Iteration > 0
	constraint := b.Registry.Constraint()

	for _, spec := range Order(state.Plan) {
		if fixMode && staticArtifacts[spec.Filename] {
			continue
		}
		log.Info(fmt.Sprintf("processing %s", spec.Filename))

		previous := b.Store.Content(spec.Filename)
		prompt, err := templates.RenderGeneratePrompt(templates.GeneratePrompt{
			Filename:     spec.Filename,
			Requirement:  state.Requirement,
			Description:  spec.Description,
			Constraint:   constraint,
			Related:      AssembleContext(b.Store, spec),
			FixMode:      fixMode,
			ErrorLog:     TailOf(state.TestOutput, errLogLimit),
			PreviousCode: previous,
		})
		if err != nil {
			return fmt.Errorf("render prompt for %s: %w", spec.Filename, err)
		}

		result, err := b.Oracle.GenerateFile(ctx, prompt)
		if err != nil {
			return fmt.Errorf("generate %s: %w", spec.Filename, err)
		}

		cleaned := CleanFence(result.Content)
		changed, err := b.Store.Write(result.Filename, cleaned)
		if err != nil {
			return fmt.Errorf("persist %s: %w", result.Filename, err)
		}

		if changed && fixMode && previous != "" {
			fmt.Print(RenderDiff(previous, cleaned))
		}
	}

	return nil
}
