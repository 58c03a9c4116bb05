package legendary

import (
	"context"
	"os"
	"os/exec"
)

// Command describes one invocation of the external CLI.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string // appended to the inherited environment
}

// CommandExecutor provides an abstraction over exec.Command for
// testability. Tests substitute a fake so no real binary runs.
type CommandExecutor interface {
	// Output runs the command, waits for it to exit and returns the
	// combined stdout/stderr. The error reflects spawn or exit status.
	Output(ctx context.Context, cmd Command) ([]byte, error)

	// Start launches the command without waiting for it to complete
	// (fire-and-forget). Returns an error if the command fails to start.
	Start(ctx context.Context, cmd Command) error
}

// RealCommandExecutor uses actual exec.Command to execute system
// commands. This is the production implementation.
type RealCommandExecutor struct{}

func (*RealCommandExecutor) Output(ctx context.Context, cmd Command) ([]byte, error) {
	//nolint:wrapcheck // Wrapping exec errors loses important context
	return build(ctx, cmd).CombinedOutput()
}

func (*RealCommandExecutor) Start(ctx context.Context, cmd Command) error {
	//nolint:wrapcheck // Wrapping exec errors loses important context
	return build(ctx, cmd).Start()
}

func build(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	return c
}
