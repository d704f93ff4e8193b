package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tonyc973/ForgeSwarm/internal/log"
	"github.com/tonyc973/ForgeSwarm/internal/templates"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a forgeswarm project directory",
	Long:  "Scaffold forgeswarm.yaml, REQUIREMENT.md, and env.example into the current directory.",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	return initProject(dir, initFlags.force)
}

// initProject is the testable core of the init command. It copies every file
// embedded under templates/init into the target directory, skipping files
// that already exist unless force is set.
func initProject(dir string, force bool) error {
	entries, err := fs.ReadDir(templates.Init, "init")
	if err != nil {
		return fmt.Errorf("read embedded init files: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		path := filepath.Join(dir, name)
		if !force {
			if _, statErr := os.Stat(path); statErr == nil {
				log.Warning(fmt.Sprintf("%s already exists — skipping (use --force to overwrite)", name))
				continue
			}
		}

		data, err := fs.ReadFile(templates.Init, "init/"+name)
		if err != nil {
			return fmt.Errorf("read embedded %s: %w", name, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		log.Success(fmt.Sprintf("created %s", name))
	}

	log.Info("edit REQUIREMENT.md, copy env.example to .env, then run: forgeswarm run")
	return nil
}
