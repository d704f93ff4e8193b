package builder_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tonyc973/ForgeSwarm/internal/builder"
	"github.com/tonyc973/ForgeSwarm/internal/types"
	"github.com/tonyc973/ForgeSwarm/internal/workspace"
)

func newStore(t *testing.T) *workspace.Store {
	t.Helper()
	store, err := workspace.NewStore(filepath.Join(t.TempDir(), "repo"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestAssembleContextIncludesDependencyContent(t *testing.T) {
	store := newStore(t)
	const modelSrc = "class Book:\n    title: str\n"
	if _, err := store.Write("app/models.py", modelSrc); err != nil {
		t.Fatal(err)
	}

	spec := types.FileSpec{
		Filename:     "app/routes.py",
		Dependencies: []string{"app/models.py"},
	}

	got := builder.AssembleContext(store, spec)

	if !strings.Contains(got, modelSrc) {
		t.Errorf("context missing literal dependency content:\n%s", got)
	}
	if !strings.Contains(got, "DEPENDENCY CODE (app/models.py)") {
		t.Errorf("context missing dependency label:\n%s", got)
	}
}

func TestAssembleContextSkipsMissingDependencies(t *testing.T) {
	store := newStore(t)

	spec := types.FileSpec{
		Filename:     "app/routes.py",
		Dependencies: []string{"app/ghost.py"},
	}

	if got := builder.AssembleContext(store, spec); got != "" {
		t.Errorf("expected empty context for missing deps, got:\n%s", got)
	}
}

func TestAssembleContextAppendsImplementationForTests(t *testing.T) {
	store := newStore(t)
	const implSrc = "def list_books():\n    return []\n"
	if _, err := store.Write("app/books.py", implSrc); err != nil {
		t.Fatal(err)
	}

	spec := types.FileSpec{Filename: "tests/test_books.py"}

	got := builder.AssembleContext(store, spec)
	if !strings.Contains(got, "TARGET IMPLEMENTATION (app/books.py)") {
		t.Errorf("context missing implementation label:\n%s", got)
	}
	if !strings.Contains(got, implSrc) {
		t.Errorf("context missing implementation content:\n%s", got)
	}
}

func TestImplCounterpart(t *testing.T) {
	tests := []struct {
		test string
		want string
	}{
		{"tests/test_books.py", "app/books.py"},
		{"tests/conftest.py", "app/conftest.py"},
		{"tests/test_main.py", "app/main.py"},
	}

	for _, tt := range tests {
		if got := builder.ImplCounterpart(tt.test); got != tt.want {
			t.Errorf("ImplCounterpart(%q) = %q, want %q", tt.test, got, tt.want)
		}
	}
}

func TestIsTestFile(t *testing.T) {
	if !builder.IsTestFile("tests/test_books.py") {
		t.Error("tests/test_books.py not recognized as test")
	}
	if builder.IsTestFile("app/models.py") {
		t.Error("app/models.py wrongly recognized as test")
	}
}
