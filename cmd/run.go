package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tonyc973/ForgeSwarm/internal/config"
	"github.com/tonyc973/ForgeSwarm/internal/git"
	"github.com/tonyc973/ForgeSwarm/internal/history"
	"github.com/tonyc973/ForgeSwarm/internal/log"
	"github.com/tonyc973/ForgeSwarm/internal/oracle"
	"github.com/tonyc973/ForgeSwarm/internal/orchestrator"
	"github.com/tonyc973/ForgeSwarm/internal/sandbox"
	"github.com/tonyc973/ForgeSwarm/internal/types"
	"github.com/tonyc973/ForgeSwarm/internal/workspace"
)

// requirementFileName is the default requirement source when no flag is given.
const requirementFileName = "REQUIREMENT.md"

// runFlags holds CLI flag values that override forgeswarm.yaml config
// settings. Only flags explicitly changed by the user are applied (checked
// via cmd.Flags().Changed).
var runFlags struct {
	requirement     string
	requirementFile string
	coderModel      string
	maxIterations   int
	repoName        string
	fresh           bool
	push            bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one plan/build/test/repair cycle for a requirement",
	Long: "Run the full pipeline: plan the project, generate every file with the\n" +
		"code oracle, execute the test suite in the container sandbox, and repair\n" +
		"failures until the suite passes or max iterations is reached.",
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.requirement, "requirement", "", "requirement text (overrides --requirement-file)")
	runCmd.Flags().StringVar(&runFlags.requirementFile, "requirement-file", "", "file containing the requirement (default REQUIREMENT.md)")
	runCmd.Flags().StringVar(&runFlags.coderModel, "coder-model", "", "override coder_model from forgeswarm.yaml")
	runCmd.Flags().IntVar(&runFlags.maxIterations, "max-iterations", 0, "override max_iterations from forgeswarm.yaml")
	runCmd.Flags().StringVar(&runFlags.repoName, "repo-name", "", "override repo_name from forgeswarm.yaml")
	runCmd.Flags().BoolVar(&runFlags.fresh, "fresh", false, "wipe the workspace before the run")
	runCmd.Flags().BoolVar(&runFlags.push, "push", false, "override push_enabled from forgeswarm.yaml")
}

// runPipeline implements the "run" subcommand.
//
// Pre-run sequence:
//  1. Load .env, then forgeswarm.yaml; apply any CLI flag overrides.
//  2. CheckDependencies — docker, git, API key.
//  3. Resolve the requirement text (flag > file flag > REQUIREMENT.md).
//  4. Create the workspace store (wiped first when --fresh).
//  5. Enable the rotating file log mirror under logs/.
//
// Then hand off to the orchestrator state machine and, afterwards, record the
// run in HISTORY.md, publish via git on success, and print the summary.
func runPipeline(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := config.Load(filepath.Join(projectRoot, "forgeswarm.yaml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Apply CLI flag overrides — only when the user explicitly set the flag.
	if cmd.Flags().Changed("coder-model") {
		cfg.CoderModel = runFlags.coderModel
	}
	if cmd.Flags().Changed("max-iterations") {
		cfg.MaxIterations = runFlags.maxIterations
	}
	if cmd.Flags().Changed("repo-name") {
		cfg.RepoName = runFlags.repoName
	}
	if cmd.Flags().Changed("push") {
		cfg.PushEnabled = runFlags.push
	}

	if err := orchestrator.CheckDependencies(cfg); err != nil {
		return fmt.Errorf("dependency check failed: %w", err)
	}

	requirement, err := resolveRequirement(projectRoot)
	if err != nil {
		return err
	}

	store, err := workspace.NewStore(filepath.Join(cfg.WorkspaceDir, cfg.RepoName))
	if err != nil {
		return err
	}
	if runFlags.fresh {
		if err := store.Reset(); err != nil {
			return err
		}
		log.Info("workspace wiped (--fresh)")
	}

	logsDir := filepath.Join(projectRoot, "logs")
	log.EnableFileMirror(filepath.Join(logsDir, "forgeswarm.log"))
	defer log.Close()

	runID := shortRunID()
	log.Info(fmt.Sprintf("starting run %s (workspace %s)", runID, store.Root()))

	orch := &orchestrator.Orchestrator{
		Config: cfg,
		Store:  store,
		Oracle: oracle.New(cfg.OracleBaseURL, config.APIKey(),
			cfg.CoderModel, cfg.ArchitectModel),
		Sandbox:   sandbox.NewDockerRunner(store.Root(), cfg.SandboxImage, cfg.SandboxMemory),
		RunID:     runID,
		StatePath: filepath.Join(logsDir, "run-state.yaml"),
	}

	start := time.Now()
	bs, runErr := orch.Run(context.Background(), requirement)
	elapsed := time.Since(start)

	recordRun(projectRoot, runID, requirement, bs)

	if runErr == nil && bs.Status == types.StatusSuccess {
		fmt.Println(store.Tree())
		publish(cfg, store.Root(), runID)
	}

	orchestrator.PrintRunSummary(bs, elapsed)

	if runErr != nil {
		return runErr
	}
	if bs.Status == types.StatusFailed {
		return fmt.Errorf("run %s failed: suite still failing after %d iterations", runID, bs.Iteration)
	}
	return nil
}

// resolveRequirement returns the requirement text from the highest-precedence
// source: --requirement, --requirement-file, then REQUIREMENT.md in the
// project root.
func resolveRequirement(projectRoot string) (string, error) {
	if strings.TrimSpace(runFlags.requirement) != "" {
		return runFlags.requirement, nil
	}

	path := runFlags.requirementFile
	if path == "" {
		path = filepath.Join(projectRoot, requirementFileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && runFlags.requirementFile == "" {
			return "", fmt.Errorf("no requirement given: pass --requirement or create %s (try: forgeswarm init)", requirementFileName)
		}
		return "", fmt.Errorf("read requirement file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("requirement file %s is empty", path)
	}
	return string(data), nil
}

// recordRun appends the run outcome to HISTORY.md; failures are warnings.
func recordRun(projectRoot, runID, requirement string, bs *types.BuildState) {
	rec := history.Record{
		RunID:       runID,
		Status:      bs.Status,
		Iterations:  bs.Iteration,
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
		Requirement: requirement,
	}
	if err := history.Append(filepath.Join(projectRoot, "HISTORY.md"), rec); err != nil {
		log.Warning(fmt.Sprintf("update history: %v", err))
	}
}

// publish commits the generated workspace on a per-run branch and pushes it
// when push is enabled. Push failure is reported, never fatal.
func publish(cfg *config.Config, workspaceRoot, runID string) {
	pub := git.NewPublisher(workspaceRoot, cfg.GitRemoteURL)
	if err := pub.EnsureRepo(); err != nil {
		log.Warning(fmt.Sprintf("git setup failed: %v", err))
		return
	}
	if err := pub.CreateAndCheckoutBranch("forgeswarm/run-" + runID); err != nil {
		log.Warning(fmt.Sprintf("branch setup failed: %v", err))
		return
	}
	if !cfg.PushEnabled {
		if err := pub.CommitOnly(fmt.Sprintf("forgeswarm run %s", runID)); err != nil {
			log.Warning(fmt.Sprintf("git commit failed: %v", err))
		}
		return
	}
	if ok := pub.CommitAndPush(fmt.Sprintf("forgeswarm run %s", runID)); !ok {
		log.Warning("publish did not complete — generated files remain in the workspace")
	}
}

// shortRunID returns the first eight hex characters of a UUID, enough to
// disambiguate branches and log lines within one project.
func shortRunID() string {
	return uuid.NewString()[:8]
}
