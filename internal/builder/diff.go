package builder

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	diffRed   = "\x1b[31m"
	diffGreen = "\x1b[32m"
	diffReset = "\x1b[0m"
)

// RenderDiff returns a colored character-level diff of old vs updated content,
// shown when a repair pass rewrites a file so the operator can see what the
// oracle actually changed. Unchanged spans longer than a few lines are
// elided to keep terminal output readable.
func RenderDiff(old, updated string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(old, updated, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(diffRed)
			b.WriteString(d.Text)
			b.WriteString(diffReset)
		case diffmatchpatch.DiffInsert:
			b.WriteString(diffGreen)
			b.WriteString(d.Text)
			b.WriteString(diffReset)
		case diffmatchpatch.DiffEqual:
			b.WriteString(elideEqual(d.Text))
		}
	}
	if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// elideEqual keeps at most two context lines on each side of an unchanged
// span, replacing the middle with an ellipsis marker.
func elideEqual(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= 5 {
		return text
	}
	head := lines[:2]
	tail := lines[len(lines)-2:]
	return strings.Join(head, "\n") + "\n...\n" + strings.Join(tail, "\n")
}
