// Package history maintains HISTORY.md: one bullet per completed run,
// newest first, using pure string manipulation so no external tools are
// involved.
package history

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tonyc973/ForgeSwarm/internal/types"
)

// header is the section under which run records are inserted.
const header = "# Run History"

// requirementPreviewLimit bounds how much of the requirement text appears in
// a record.
const requirementPreviewLimit = 80

// Record describes one completed run.
type Record struct {
	RunID       string
	Status      types.RunStatus
	Iterations  int
	CompletedAt string
	Requirement string
}

// bullet renders the record as a single HISTORY.md line.
func (r Record) bullet() string {
	req := strings.Join(strings.Fields(r.Requirement), " ")
	if len(req) > requirementPreviewLimit {
		req = req[:requirementPreviewLimit] + "…"
	}
	return fmt.Sprintf("- %s run %s: %s after %d iteration(s) — %s",
		r.CompletedAt, r.RunID, r.Status, r.Iterations, req)
}

// Append inserts rec immediately after the history header at path, creating
// the file with the header when it does not exist.
//
// Behavior:
//   - Is idempotent: if a record for rec.RunID already exists anywhere in the
//     file, the file is left unchanged and nil is returned.
//   - New records go directly under the header, so the newest run reads first.
func Append(path string, rec Record) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("history: read %q: %w", path, err)
		}
		content := header + "\n\n" + rec.bullet() + "\n"
		return os.WriteFile(path, []byte(content), 0o644)
	}
	content := string(data)

	// Deduplication: one record per run.
	if strings.Contains(content, "run "+rec.RunID+":") {
		return nil
	}

	headerIdx := strings.Index(content, header)
	if headerIdx == -1 {
		// A HISTORY.md we did not create; prepend our section.
		content = header + "\n\n" + rec.bullet() + "\n\n" + content
		return os.WriteFile(path, []byte(content), 0o644)
	}

	afterHeader := headerIdx + len(header)
	nlIdx := strings.Index(content[afterHeader:], "\n")
	if nlIdx == -1 {
		content = content + "\n\n" + rec.bullet() + "\n"
		return os.WriteFile(path, []byte(content), 0o644)
	}

	insertAt := afterHeader + nlIdx + 1
	updated := content[:insertAt] + "\n" + rec.bullet() + "\n" + content[insertAt:]
	return os.WriteFile(path, []byte(updated), 0o644)
}
