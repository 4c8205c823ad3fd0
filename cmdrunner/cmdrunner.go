// Package cmdrunner runs shell commands and captures their combined
// stdout/stderr stream.
//
// A Runner accumulates space-joined tokens into a pending command line,
// executes it through `/bin/sh -c`, and tees every chunk of child output
// to its own stdout as it arrives while also capturing it for later
// inspection. Tokens are joined verbatim; nothing is escaped, so the
// shell path is a convenience, not a security boundary. ExecuteArgv
// bypasses the shell entirely for arguments that must survive untouched.
//
// A single Runner is reusable: each Execute discards the previous
// captured output up front and clears the pending command line when it
// completes.
package cmdrunner

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/nexuslib/nexus/strbuilder"
)

// Shell is the interpreter used for Execute.
const Shell = "/bin/sh"

// Option configures a Runner at construction time.
type Option func(*Runner)

// WithStdout redirects the live output stream. Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(r *Runner) { r.stdout = w }
}

// Runner is one subprocess invocation's state. Not goroutine-safe.
type Runner struct {
	command  *strbuilder.Builder
	captured *strbuilder.Builder
	exitCode int
	stdout   io.Writer
}

// New creates an idle Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		command:  strbuilder.New(),
		captured: strbuilder.New(),
		stdout:   os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Append accumulates tokens onto the pending command line. Each token is
// followed by a single space.
func (r *Runner) Append(tokens ...string) {
	for _, tok := range tokens {
		r.command.Append(tok)
		r.command.AppendByte(' ')
	}
}

// Command returns the pending command line.
func (r *Runner) Command() string {
	return r.command.String()
}

// Output returns the captured combined stdout/stderr of the last
// execution. Child stdout and stderr interleave in whatever order the
// pipe delivered them.
func (r *Runner) Output() string {
	return r.captured.String()
}

// ExitCode returns the last execution's exit status: the child's exit
// code on a normal exit, -1 otherwise.
func (r *Runner) ExitCode() int {
	return r.exitCode
}

// Execute runs the accumulated command line through the shell. The
// previous captured output is discarded first; on completion the pending
// command line is cleared so the Runner can be reused. Returns the
// child's exit code, or -1 with a non-nil error if the child could not
// be started at all; in that case the pending command line is left
// untouched so the caller may retry.
//
// The child blocks the caller until it exits; cancellation rides ctx.
func (r *Runner) Execute(ctx context.Context) (int, error) {
	line := r.command.String()
	code, err := r.run(exec.CommandContext(ctx, Shell, "-c", line))
	if err != nil {
		return code, err
	}
	r.command.Clear()
	return code, nil
}

// ExecuteArgv runs argv directly, without a shell, so arguments
// containing spaces or metacharacters arrive at the child verbatim. The
// pending command line is not consulted or cleared.
func (r *Runner) ExecuteArgv(ctx context.Context, argv ...string) (int, error) {
	if len(argv) == 0 {
		return -1, errors.New("empty argv")
	}
	return r.run(exec.CommandContext(ctx, argv[0], argv[1:]...))
}

// run starts cmd with stdout and stderr merged onto one pipe, streaming
// and capturing the combined output until EOF, then waits for the child.
func (r *Runner) run(cmd *exec.Cmd) (int, error) {
	r.captured.Clear()

	// The same writer for both streams makes the child share a single
	// descriptor, preserving the kernel's interleaving.
	sink := io.MultiWriter(r.stdout, r.captured)
	cmd.Stdout = sink
	cmd.Stderr = sink

	if err := cmd.Start(); err != nil {
		r.exitCode = -1
		return -1, errors.Wrap(err, "starting command")
	}

	err := cmd.Wait()
	r.exitCode = cmd.ProcessState.ExitCode()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Wait failed for a reason other than the child's status
			// (for example an I/O error on the pipe).
			r.exitCode = -1
			return -1, errors.Wrap(err, "waiting for command")
		}
	}
	return r.exitCode, nil
}

// Run executes a complete command line through a throwaway Runner and
// returns its exit code.
func Run(ctx context.Context, line string) (int, error) {
	r := New()
	r.command.Append(line)
	return r.Execute(ctx)
}
