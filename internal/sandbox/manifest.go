package sandbox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ManifestName is the dependency manifest at the workspace root.
const ManifestName = "requirements.txt"

// defaultManifest is written when no manifest exists, matching the toolset
// the sandbox force-installs.
const defaultManifest = "fastapi\nuvicorn\npydantic\nhttpx\npytest\nrequests\n"

// builtinNames are Python standard-library names the oracle sometimes lists
// as installable packages; pip would fail or install squatters for them.
var builtinNames = map[string]bool{
	"sqlite3": true,
	"json":    true,
	"os":      true,
	"sys":     true,
	"re":      true,
	"math":    true,
	"random":  true,
}

// EnsureManifest guarantees a sane requirements.txt in workspaceRoot before a
// test run. A missing manifest is created with the defaults. An existing one
// is sanitized line by line: version specifiers are stripped to the bare
// package name, and built-in/standard-library names are dropped entirely.
// Non-built-in packages are never dropped.
func EnsureManifest(workspaceRoot string) error {
	path := filepath.Join(workspaceRoot, ManifestName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if werr := os.WriteFile(path, []byte(defaultManifest), 0o644); werr != nil {
				return fmt.Errorf("write default manifest: %w", werr)
			}
			return nil
		}
		return fmt.Errorf("read manifest: %w", err)
	}

	var cleaned []string
	for _, line := range strings.Split(string(data), "\n") {
		pkg := sanitizeLine(line)
		if pkg == "" {
			continue
		}
		cleaned = append(cleaned, pkg)
	}

	out := strings.Join(cleaned, "\n")
	if out != "" {
		out += "\n"
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write sanitized manifest: %w", err)
	}
	return nil
}

// sanitizeLine reduces one manifest line to a bare package name, or ""
// when the line is empty, malformed, or names a built-in module.
func sanitizeLine(line string) string {
	pkg := line
	for _, sep := range []string{"==", ">=", "<"} {
		pkg = strings.SplitN(pkg, sep, 2)[0]
	}
	pkg = strings.TrimSpace(pkg)
	if pkg == "" || builtinNames[strings.ToLower(pkg)] {
		return ""
	}
	return pkg
}
