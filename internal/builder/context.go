package builder

import (
	"fmt"
	"strings"

	"github.com/tonyc973/ForgeSwarm/internal/types"
	"github.com/tonyc973/ForgeSwarm/internal/workspace"
)

// AssembleContext gathers the current content of spec's declared dependencies
// from the store, each labeled with its filename and fenced for the prompt.
// For test files the implementation counterpart is appended as well, so the
// oracle aligns the test with the symbols that actually exist. Read-only; the
// store is never mutated.
func AssembleContext(store *workspace.Store, spec types.FileSpec) string {
	var b strings.Builder

	for _, dep := range spec.Dependencies {
		content := store.Content(dep)
		if content == "" {
			continue
		}
		fmt.Fprintf(&b, "\n### DEPENDENCY CODE (%s):\n```python\n%s\n```", dep, content)
	}

	if IsTestFile(spec.Filename) {
		impl := ImplCounterpart(spec.Filename)
		if content := store.Content(impl); content != "" {
			fmt.Fprintf(&b, "\n### TARGET IMPLEMENTATION (%s):\n```python\n%s\n```", impl, content)
		}
	}

	return b.String()
}

// IsTestFile reports whether filename denotes a test by naming convention.
func IsTestFile(filename string) bool {
	return strings.Contains(filename, "test")
}

// ImplCounterpart derives the implementation filename a test file exercises:
// tests/test_books.py → app/books.py, tests/books.py → app/books.py.
func ImplCounterpart(testFilename string) string {
	impl := strings.Replace(testFilename, "tests/test_", "app/", 1)
	return strings.Replace(impl, "tests/", "app/", 1)
}
