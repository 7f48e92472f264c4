package imgtool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Runner executes an external program and captures its output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct {
	Dir string
	Env map[string]string
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", ErrToolMissing, name)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	if len(r.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range r.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if errors.Is(err, exec.ErrNotFound) {
		err = fmt.Errorf("%w: %s", ErrToolMissing, name)
	}

	return stdout.String(), stderr.String(), err
}

func run(ctx context.Context, r Runner, name string, args ...string) error {
	if r == nil {
		r = ExecRunner{}
	}

	_, stderr, err := r.Run(ctx, name, args...)
	if err != nil {
		return &ToolError{Tool: name, Args: args, Stderr: stderr, Err: err}
	}
	return nil
}
