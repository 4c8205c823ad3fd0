// Package rebuild keeps a program's binary in sync with its source.
//
// The orchestrator compares the source file's modification time against
// the installed executable's and, when the binary is stale, runs one
// compile through the command runner and then replaces the running
// process image with the freshly built executable, passing the original
// argument vector through unchanged. It is meant to run first thing in
// main, before any other work: on a successful rebuild the current
// process context is gone and no deferred cleanup runs.
package rebuild

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"

	"github.com/nexuslib/nexus/cmdrunner"
	"github.com/nexuslib/nexus/nexuslog"
)

// DefaultCompiler is the compiler used when none is configured.
const DefaultCompiler = "cc"

// GCCWarnings is the diagnostic flag set appended to compile commands
// that request warnings.
var GCCWarnings = []string{
	"-Wall",
	"-Wextra",
	"-Wpedantic",
	"-Wshadow",
	"-Wpointer-arith",
	"-Wcast-qual",
	"-Wno-unused-parameter",
	"-fstack-protector-strong",
	"-Wswitch-default",
	"-Wstrict-prototypes",
	"-Wmissing-prototypes",
	"-Wmissing-declarations",
	"-Wredundant-decls",
	"-Wconversion",
	"-Wsign-conversion",
}

// Runner is the slice of the command runner the orchestrator needs.
type Runner interface {
	Append(tokens ...string)
	Execute(ctx context.Context) (int, error)
	Output() string
}

// ExecFunc replaces the current process image. Matches unix.Exec.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// CompileError reports a compiler invocation that exited nonzero.
type CompileError struct {
	Target string
	Code   int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %s: exit code %d", e.Target, e.Code)
}

// Orchestrator drives staleness checks, compilation and process
// replacement.
type Orchestrator struct {
	fs        afero.Fs
	logger    log.Logger
	compiler  string
	newRunner func() Runner
	execve    ExecFunc
}

// Option configures an Orchestrator at construction time.
type Option func(*Orchestrator)

// WithFs overrides the filesystem used for staleness checks and plan
// loading. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *Orchestrator) { o.fs = fs }
}

// WithLogger sets the status logger. Defaults to a no-op logger.
func WithLogger(l log.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithCompiler overrides the compiler executable.
func WithCompiler(c string) Option {
	return func(o *Orchestrator) { o.compiler = c }
}

// WithRunnerFactory overrides how command runners are created. Used by
// tests to observe compile invocations.
func WithRunnerFactory(f func() Runner) Option {
	return func(o *Orchestrator) { o.newRunner = f }
}

// WithExecFunc overrides the process-replacement syscall.
func WithExecFunc(f ExecFunc) Option {
	return func(o *Orchestrator) { o.execve = f }
}

// New creates an Orchestrator with OS defaults.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fs:        afero.NewOsFs(),
		logger:    nexuslog.NewNop(),
		compiler:  DefaultCompiler,
		newRunner: func() Runner { return cmdrunner.New() },
		execve:    unix.Exec,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// TargetName derives the executable name from a source file path by
// stripping the directory and the extension.
func TargetName(sourceFile string) string {
	base := filepath.Base(sourceFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Rebuild recompiles and re-executes the calling program when sourceFile
// is newer than its built executable. argv is the program's original
// argument vector and is passed through unchanged to the new image.
//
// When the binary is up to date, Rebuild returns nil and the caller
// proceeds normally. When a rebuild succeeds, Rebuild never returns: the
// process image is replaced. A compile failure returns a *CompileError
// carrying the compiler's exit code; a stale binary is never executed.
func (o *Orchestrator) Rebuild(ctx context.Context, sourceFile string, argv []string) error {
	target := TargetName(sourceFile)

	stale, err := o.needsRebuild(sourceFile, target)
	if err != nil {
		return err
	}
	if !stale {
		return nil
	}

	level.Info(o.logger).Log("msg", "rebuilding stale binary", "target", target, "source", sourceFile)

	args := []string{o.compiler, sourceFile, "-o", target, "-fdiagnostics-color=always", "-O2"}
	code, err := o.CompileCommand(ctx, target, args, true)
	if err != nil {
		return err
	}
	if code != 0 {
		return &CompileError{Target: target, Code: code}
	}

	return o.ReplaceProcess(target, argv)
}

// CompileCommand runs one compiler invocation through a fresh command
// runner, appending the GCC warning set when warnings is true. The
// compiler's diagnostics stream to stdout as they are produced. Returns
// the invocation's exit code.
func (o *Orchestrator) CompileCommand(ctx context.Context, description string, args []string, warnings bool) (int, error) {
	r := o.newRunner()
	r.Append(args...)
	if warnings {
		r.Append(GCCWarnings...)
	}

	code, err := r.Execute(ctx)
	if err != nil {
		return code, errors.Wrapf(err, "compiling %s", description)
	}
	if code != 0 {
		level.Error(o.logger).Log("msg", "compilation failed", "target", description, "exit_code", code)
	} else {
		level.Info(o.logger).Log("msg", "compilation succeeded", "target", description)
	}
	return code, nil
}

// ReplaceProcess replaces the current process image with the executable
// at path, passing argv through verbatim and inheriting the current
// environment and open descriptors. On success it never returns and no
// deferred cleanup runs; the process identity is kept.
func (o *Orchestrator) ReplaceProcess(path string, argv []string) error {
	if err := o.execve(path, argv, os.Environ()); err != nil {
		return errors.Wrapf(err, "replacing process with %s", path)
	}
	return nil
}

// needsRebuild reports whether target must be rebuilt from source. A
// missing target makes the rebuild mandatory; an unreadable source is an
// error.
func (o *Orchestrator) needsRebuild(source, target string) (bool, error) {
	src, err := o.fs.Stat(source)
	if err != nil {
		return false, errors.Wrapf(err, "stat source %s", source)
	}

	exe, err := o.fs.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, errors.Wrapf(err, "stat target %s", target)
	}

	return src.ModTime().After(exe.ModTime()), nil
}

// Self is the drop-in entry-point helper: rebuild the running program
// from sourceFile using os.Args, logging status to stderr.
func Self(sourceFile string) error {
	logger, err := nexuslog.New(os.Stderr, "info")
	if err != nil {
		return err
	}
	o := New(WithLogger(logger))
	return o.Rebuild(context.Background(), sourceFile, os.Args)
}
