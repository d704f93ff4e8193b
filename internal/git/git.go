// Package git provides the version-control publisher for the generated
// workspace: repository initialization, branch creation, and a
// commit-and-push whose push failure is non-fatal to the run result.
package git

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tonyc973/ForgeSwarm/internal/log"
)

// ErrNothingToCommit is returned by commit when there are no changes to
// commit. Callers should treat this as non-fatal.
var ErrNothingToCommit = errors.New("nothing to commit")

// Publisher runs git operations rooted at the workspace directory.
type Publisher struct {
	root      string
	remoteURL string
}

// NewPublisher creates a Publisher for the repository at root. remoteURL may
// be empty, in which case pushes are skipped with a warning.
func NewPublisher(root, remoteURL string) *Publisher {
	return &Publisher{root: root, remoteURL: remoteURL}
}

// EnsureRepo initializes a git repository at the workspace root if none
// exists and registers the configured remote as origin. An origin that is
// already registered is left alone.
func (p *Publisher) EnsureRepo() error {
	if _, err := os.Stat(filepath.Join(p.root, ".git")); err == nil {
		return nil
	}

	if out, err := p.git("init"); err != nil {
		return fmt.Errorf("git init: %w\n%s", err, out)
	}
	log.Info("initialized new git repository")

	if p.remoteURL == "" {
		return nil
	}
	if out, err := p.git("remote", "add", "origin", p.remoteURL); err != nil {
		// Remote may already exist from a previous run.
		if !strings.Contains(out, "already exists") {
			return fmt.Errorf("git remote add: %w\n%s", err, out)
		}
	}
	return nil
}

// CreateAndCheckoutBranch ensures the working tree is on branchName,
// creating the branch when it does not exist yet.
func (p *Publisher) CreateAndCheckoutBranch(branchName string) error {
	if err := p.EnsureRepo(); err != nil {
		return err
	}

	current, err := p.currentBranch()
	if err == nil && current == branchName {
		return nil
	}

	exists, err := p.branchExists(branchName)
	if err != nil {
		return fmt.Errorf("check branch existence: %w", err)
	}

	if exists {
		if out, err := p.git("checkout", branchName); err != nil {
			return fmt.Errorf("checkout %q: %w\n%s", branchName, err, out)
		}
		return nil
	}

	if out, err := p.git("checkout", "-b", branchName); err != nil {
		return fmt.Errorf("create branch %q: %w\n%s", branchName, err, out)
	}
	log.Info(fmt.Sprintf("checked out branch %s", branchName))
	return nil
}

// CommitAndPush stages everything, commits with message, and pushes the
// current branch to origin. The returned boolean reports whether the publish
// fully succeeded; push failures are logged and reported as false, never
// raised, so a broken remote cannot fail an otherwise green run.
func (p *Publisher) CommitAndPush(message string) bool {
	if err := p.commit(message); err != nil {
		if errors.Is(err, ErrNothingToCommit) {
			log.Info("nothing to commit — workspace unchanged")
		} else {
			log.Warning(fmt.Sprintf("git commit failed: %v", err))
			return false
		}
	}

	if p.remoteURL == "" {
		log.Warning("no git remote configured — skipping push")
		return false
	}

	branch, err := p.currentBranch()
	if err != nil {
		log.Warning(fmt.Sprintf("resolve current branch: %v", err))
		return false
	}

	if out, err := p.git("push", "origin", branch+":"+branch); err != nil {
		log.Warning(fmt.Sprintf("git push failed: %v\n%s", err, out))
		return false
	}
	log.Success("pushed to origin")
	return true
}

// CommitOnly stages everything and commits with message without pushing,
// used when pushing is disabled. A clean tree is not an error.
func (p *Publisher) CommitOnly(message string) error {
	err := p.commit(message)
	if errors.Is(err, ErrNothingToCommit) {
		log.Info("nothing to commit — workspace unchanged")
		return nil
	}
	return err
}

// commit stages all changes and creates a commit with message.
// Returns ErrNothingToCommit when the tree is clean.
func (p *Publisher) commit(message string) error {
	if out, err := p.git("add", "-A"); err != nil {
		return fmt.Errorf("git add -A: %w\n%s", err, out)
	}

	out, err := p.git("commit", "-m", message)
	if err != nil {
		if strings.Contains(out, "nothing to commit") || strings.Contains(out, "nothing added to commit") {
			return ErrNothingToCommit
		}
		return fmt.Errorf("git commit: %w\n%s", err, out)
	}
	return nil
}

// currentBranch returns the name of the currently checked-out branch.
func (p *Publisher) currentBranch() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = p.root
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// branchExists reports whether branchName exists as a local branch.
func (p *Publisher) branchExists(branchName string) (bool, error) {
	out, err := p.git("branch", "--list", branchName)
	if err != nil {
		return false, fmt.Errorf("git branch --list: %w", err)
	}
	return strings.TrimSpace(out) != "", nil
}

// git runs one git command in the repository root and returns its trimmed
// combined output.
func (p *Publisher) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = p.root
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}
