package state_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tonyc973/ForgeSwarm/internal/state"
	"github.com/tonyc973/ForgeSwarm/internal/types"
)

func TestLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := state.Load(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, state.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run-state.yaml")
	if err := os.WriteFile(path, []byte("key: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := state.Load(path)
	var parseErr *state.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected *ParseError, got %v (%T)", err, err)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input *state.RunState
	}{
		{
			name: "failed check with plan and log",
			input: &state.RunState{
				RunID:          "a1b2c3d4",
				Status:         types.StatusFailedCheck,
				Iteration:      2,
				StartedAt:      "2026-08-24T10:00:00Z",
				PlanFiles:      []string{"app/models.py", "app/routes.py"},
				LastTestOutput: "ModuleNotFoundError: app.routers",
			},
		},
		{
			name: "fresh run with empty fields",
			input: &state.RunState{
				RunID:     "deadbeef",
				Status:    types.StatusStarting,
				StartedAt: "2026-08-24T10:00:00Z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "logs", "run-state.yaml")

			if err := state.Save(path, tt.input); err != nil {
				t.Fatalf("Save: %v", err)
			}

			// .tmp file must not remain after a successful save
			if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
				t.Error(".tmp file still exists after successful save")
			}

			got, err := state.Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.RunID != tt.input.RunID || got.Status != tt.input.Status ||
				got.Iteration != tt.input.Iteration || got.LastTestOutput != tt.input.LastTestOutput {
				t.Errorf("round trip mismatch: got %+v, want %+v", got, tt.input)
			}
			if len(got.PlanFiles) != len(tt.input.PlanFiles) {
				t.Errorf("plan files = %v, want %v", got.PlanFiles, tt.input.PlanFiles)
			}
		})
	}
}

func TestSnapshotTruncatesLog(t *testing.T) {
	long := strings.Repeat("a", 10000) + "TAIL"
	bs := &types.BuildState{
		Plan:       &types.ProjectPlan{Files: []types.FileSpec{{Filename: "app/main.py"}}},
		TestOutput: long,
		Iteration:  3,
		Status:     types.StatusFailedCheck,
	}

	rs := state.Snapshot("runid", "2026-08-24T10:00:00Z", bs)

	if len(rs.LastTestOutput) > 4000 {
		t.Errorf("snapshot log length %d exceeds cap", len(rs.LastTestOutput))
	}
	if !strings.HasSuffix(rs.LastTestOutput, "TAIL") {
		t.Error("snapshot must keep the most recent characters")
	}
	if len(rs.PlanFiles) != 1 || rs.PlanFiles[0] != "app/main.py" {
		t.Errorf("plan files = %v", rs.PlanFiles)
	}
}

func TestSnapshotNilPlan(t *testing.T) {
	bs := &types.BuildState{Status: types.StatusStarting}
	rs := state.Snapshot("runid", "2026-08-24T10:00:00Z", bs)
	if rs.PlanFiles != nil {
		t.Errorf("plan files = %v, want nil", rs.PlanFiles)
	}
}
