package builder_test

import (
	"strings"
	"testing"

	"github.com/tonyc973/ForgeSwarm/internal/builder"
)

func TestRenderDiffMarksInsertionsAndDeletions(t *testing.T) {
	old := "from app.routers import books\n"
	updated := "from app.routes import books\n"

	out := builder.RenderDiff(old, updated)

	if !strings.Contains(out, "\x1b[31m") {
		t.Error("diff missing deletion color")
	}
	if !strings.Contains(out, "\x1b[32m") {
		t.Error("diff missing insertion color")
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("diff output must end with a newline")
	}
}

func TestRenderDiffElidesLongUnchangedSpans(t *testing.T) {
	common := strings.Repeat("line\n", 50)
	out := builder.RenderDiff(common+"old tail", common+"new tail")

	if !strings.Contains(out, "...") {
		t.Errorf("long unchanged span not elided:\n%s", out)
	}
}
