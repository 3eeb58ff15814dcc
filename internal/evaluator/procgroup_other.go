//go:build !unix

package evaluator

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {}
