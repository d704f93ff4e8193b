package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitProjectScaffoldsFiles(t *testing.T) {
	dir := t.TempDir()

	if err := initProject(dir, false); err != nil {
		t.Fatalf("initProject: %v", err)
	}

	for _, name := range []string{"forgeswarm.yaml", "REQUIREMENT.md", "env.example"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to be created: %v", name, err)
		}
	}
}

func TestInitProjectSkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	custom := "coder_model: my/custom-model\n"
	if err := os.WriteFile(filepath.Join(dir, "forgeswarm.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := initProject(dir, false); err != nil {
		t.Fatalf("initProject: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "forgeswarm.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != custom {
		t.Error("existing config was overwritten without --force")
	}
	// other scaffold files are still created
	if _, err := os.Stat(filepath.Join(dir, "REQUIREMENT.md")); err != nil {
		t.Errorf("REQUIREMENT.md not created alongside skipped file: %v", err)
	}
}

func TestInitProjectForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	custom := "coder_model: my/custom-model\n"
	if err := os.WriteFile(filepath.Join(dir, "forgeswarm.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := initProject(dir, true); err != nil {
		t.Fatalf("initProject: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "forgeswarm.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == custom {
		t.Error("--force did not overwrite the existing config")
	}
}
