// Package registry derives the valid-module registry from a project plan:
// a mapping of importable Python module identifier → the planned filename
// that defines it. The registry is surfaced to the oracle as a textual
// constraint to suppress hallucinated imports; it is never enforced against
// generated content.
package registry

import (
	"fmt"
	"strings"

	"github.com/tonyc973/ForgeSwarm/internal/types"
)

// pySuffix marks a planned file as a source file of the target language.
const pySuffix = ".py"

// initSuffix is the module-path tail produced by a package-initializer file.
const initSuffix = ".__init__"

// CollisionError reports two planned filenames mapping to the same module
// identifier, which makes the plan invalid.
type CollisionError struct {
	Module string
	First  string
	Second string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("module %q defined by both %q and %q", e.Module, e.First, e.Second)
}

// Registry maps module identifiers to the filenames that define them,
// preserving plan order for deterministic prompt construction.
type Registry struct {
	modules []string
	files   map[string]string
}

// Build computes the registry for plan. Every FileSpec whose filename ends in
// .py contributes one entry; non-source files (README.md, Dockerfile,
// requirements.txt) are skipped. Returns a *CollisionError when two files
// would claim the same identifier.
func Build(plan *types.ProjectPlan) (*Registry, error) {
	r := &Registry{files: make(map[string]string)}
	for _, f := range plan.Files {
		if !strings.HasSuffix(f.Filename, pySuffix) {
			continue
		}
		module := ModuleOf(f.Filename)
		if first, exists := r.files[module]; exists {
			return nil, &CollisionError{Module: module, First: first, Second: f.Filename}
		}
		r.modules = append(r.modules, module)
		r.files[module] = f.Filename
	}
	return r, nil
}

// ModuleOf converts a source filename to its importable module identifier:
// path separators become dots, the .py suffix is stripped, and a package
// initializer collapses to its enclosing package ("app/__init__.py" → "app").
func ModuleOf(filename string) string {
	module := strings.TrimSuffix(strings.ReplaceAll(filename, "/", "."), pySuffix)
	if strings.HasSuffix(module, initSuffix) {
		module = strings.TrimSuffix(module, initSuffix)
	}
	return module
}

// Modules returns the module identifiers in plan order.
func (r *Registry) Modules() []string {
	out := make([]string, len(r.modules))
	copy(out, r.modules)
	return out
}

// Filename returns the filename defining module and whether it exists.
func (r *Registry) Filename(module string) (string, bool) {
	f, ok := r.files[module]
	return f, ok
}

// Constraint renders the registry as the quoted, comma-separated list embedded
// in generation prompts, e.g. 'app.models', 'app.routes'.
func (r *Registry) Constraint() string {
	quoted := make([]string, len(r.modules))
	for i, m := range r.modules {
		quoted[i] = "'" + m + "'"
	}
	return strings.Join(quoted, ", ")
}
