package orchestrator

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/tonyc973/ForgeSwarm/internal/config"
)

// CheckDependencies verifies that everything a run needs is available before
// any oracle call is made:
//   - "docker" and "git" binaries on PATH
//   - an oracle API key in the environment
//
// Returns a descriptive error listing every missing piece; nil if all are
// present.
func CheckDependencies(cfg *config.Config) error {
	var missing []string
	for _, bin := range []string{"docker", "git"} {
		if _, err := exec.LookPath(bin); err != nil {
			missing = append(missing, bin)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required binaries on PATH: %s",
			strings.Join(missing, ", "))
	}

	if config.APIKey() == "" {
		return fmt.Errorf("no oracle API key set (expected one of %s)",
			strings.Join(config.APIKeyEnvVars, ", "))
	}
	return nil
}
