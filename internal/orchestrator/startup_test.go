package orchestrator_test

import (
	"strings"
	"testing"

	"github.com/tonyc973/ForgeSwarm/internal/config"
	"github.com/tonyc973/ForgeSwarm/internal/orchestrator"
)

func TestCheckDependenciesReportsMissingBinaries(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	err := orchestrator.CheckDependencies(&config.Config{})
	if err == nil {
		t.Fatal("expected an error with an empty PATH")
	}
	for _, bin := range []string{"docker", "git"} {
		if !strings.Contains(err.Error(), bin) {
			t.Errorf("error does not name missing binary %q: %v", bin, err)
		}
	}
}

func TestCheckDependenciesRequiresAPIKey(t *testing.T) {
	for _, name := range config.APIKeyEnvVars {
		t.Setenv(name, "")
	}

	err := orchestrator.CheckDependencies(&config.Config{})
	if err == nil {
		t.Fatal("expected an error with no API key in the environment")
	}
	// Either the binary check or the key check may fire depending on what is
	// on the host PATH; both are legitimate pre-flight failures here.
	if !strings.Contains(err.Error(), "API key") &&
		!strings.Contains(err.Error(), "binaries") {
		t.Errorf("unexpected error: %v", err)
	}
}
