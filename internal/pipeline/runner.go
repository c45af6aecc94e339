package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Command is a fully resolved child-process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string

	// Env holds variables added to the child's environment. The parent
	// environment is inherited; these are appended on top, scoped to the
	// child only.
	Env map[string]string
}

// String renders the invocation the way a shell would see it.
func (c Command) String() string {
	out := c.Name
	for _, arg := range c.Args {
		out += " " + arg
	}
	return out
}

// CommandRunner is the interface for running commands.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (stdout, stderr []byte, err error)
}

// ExecCommandRunner uses os/exec.
type ExecCommandRunner struct{}

// Run runs a command and blocks until it exits.
func (ExecCommandRunner) Run(ctx context.Context, cmd Command) (stdout, stderr []byte, err error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	if len(cmd.Env) > 0 {
		env := os.Environ()
		for k, v := range cmd.Env {
			env = append(env, fmt.Sprintf("%s=%s", k, v))
		}
		c.Env = env
	}

	var outBuf, errBuf bytes.Buffer
	c.Stdout = &outBuf
	c.Stderr = &errBuf

	stdout, stderr, err = outBuf.Bytes(), errBuf.Bytes(), c.Run()
	return stdout, stderr, err
}
