package types_test

import (
	"encoding/json"
	"testing"

	"github.com/tonyc973/ForgeSwarm/internal/types"
)

func TestRunStatusTerminal(t *testing.T) {
	tests := []struct {
		status types.RunStatus
		want   bool
	}{
		{types.StatusStarting, false},
		{types.StatusFailedCheck, false},
		{types.StatusSuccess, true},
		{types.StatusFailed, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestProjectPlanFilenames(t *testing.T) {
	plan := &types.ProjectPlan{Files: []types.FileSpec{
		{Filename: "app/models.py"},
		{Filename: "app/routes.py"},
		{Filename: "app/main.py"},
	}}

	got := plan.Filenames()
	want := []string{"app/models.py", "app/routes.py", "app/main.py"}
	if len(got) != len(want) {
		t.Fatalf("Filenames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Filenames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProjectPlanJSONShape(t *testing.T) {
	// Shape the oracle is instructed to produce.
	body := `{"files": [{"filename": "app/models.py", "description": "models", "dependencies": ["app/db.py"]}]}`

	var plan types.ProjectPlan
	if err := json.Unmarshal([]byte(body), &plan); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(plan.Files) != 1 || plan.Files[0].Filename != "app/models.py" {
		t.Errorf("plan = %+v", plan)
	}
	if len(plan.Files[0].Dependencies) != 1 || plan.Files[0].Dependencies[0] != "app/db.py" {
		t.Errorf("dependencies = %v", plan.Files[0].Dependencies)
	}
}
