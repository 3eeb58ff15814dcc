package gitops

import (
	"fmt"
	"os/exec"
	"strings"
)

// Revision identifies the source tree an evaluator was built from.
type Revision struct {
	Commit string `json:"commit"`
	Dirty  bool   `json:"dirty"`
}

// HeadRevision reports the checked-out commit of the repository containing
// dir and whether tracked files have uncommitted changes.
func HeadRevision(dir string) (*Revision, error) {
	rev := exec.Command("git", "rev-parse", "HEAD")
	rev.Dir = dir
	out, err := rev.Output()
	if err != nil {
		return nil, fmt.Errorf("git rev-parse HEAD: %w", err)
	}
	status := exec.Command("git", "status", "--porcelain", "--untracked-files=no")
	status.Dir = dir
	changes, err := status.Output()
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}
	return &Revision{
		Commit: strings.TrimSpace(string(out)),
		Dirty:  len(strings.TrimSpace(string(changes))) > 0,
	}, nil
}
