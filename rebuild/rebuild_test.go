package rebuild

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// fakeRunner records appended tokens and returns a canned exit code.
type fakeRunner struct {
	tokens   []string
	code     int
	executed int
}

func (f *fakeRunner) Append(tokens ...string) { f.tokens = append(f.tokens, tokens...) }
func (f *fakeRunner) Output() string          { return "" }

func (f *fakeRunner) Execute(ctx context.Context) (int, error) {
	f.executed++
	return f.code, nil
}

type execCall struct {
	path string
	argv []string
}

type fixture struct {
	fs      afero.Fs
	orch    *Orchestrator
	runners []*fakeRunner
	execs   []execCall
}

func newFixture(t *testing.T, compileCode int) *fixture {
	t.Helper()

	f := &fixture{fs: afero.NewMemMapFs()}
	f.orch = New(
		WithFs(f.fs),
		WithRunnerFactory(func() Runner {
			r := &fakeRunner{code: compileCode}
			f.runners = append(f.runners, r)
			return r
		}),
		WithExecFunc(func(argv0 string, argv, envv []string) error {
			f.execs = append(f.execs, execCall{path: argv0, argv: argv})
			return nil
		}),
	)
	return f
}

func (f *fixture) compileInvocations() int {
	n := 0
	for _, r := range f.runners {
		n += r.executed
	}
	return n
}

func (f *fixture) writeFile(t *testing.T, name string, mtime time.Time) {
	t.Helper()
	require.NoError(t, afero.WriteFile(f.fs, name, []byte("x"), 0o644))
	require.NoError(t, f.fs.Chtimes(name, mtime, mtime))
}

func TestTargetName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"main.c", "main"},
		{"src/main.c", "main"},
		{"/abs/path/tool.c", "tool"},
		{"noext", "noext"},
		{"a/b/archive.tar.gz", "archive.tar"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, TargetName(tt.source), "TargetName(%q)", tt.source)
	}
}

func TestRebuildWhenTargetMissing(t *testing.T) {
	f := newFixture(t, 0)
	f.writeFile(t, "main.c", time.Now())

	argv := []string{"./main", "--flag", "value"}
	require.NoError(t, f.orch.Rebuild(context.Background(), "main.c", argv))

	require.Equal(t, 1, f.compileInvocations())
	require.Len(t, f.execs, 1)
	require.Equal(t, "main", f.execs[0].path)
	require.Equal(t, argv, f.execs[0].argv)
}

func TestRebuildWhenSourceNewer(t *testing.T) {
	f := newFixture(t, 0)
	base := time.Now()
	f.writeFile(t, "main", base)
	f.writeFile(t, "main.c", base.Add(time.Minute))

	require.NoError(t, f.orch.Rebuild(context.Background(), "main.c", []string{"./main"}))
	require.Equal(t, 1, f.compileInvocations())
	require.Len(t, f.execs, 1)
}

func TestNoRebuildWhenBinaryFresh(t *testing.T) {
	f := newFixture(t, 0)
	base := time.Now()
	f.writeFile(t, "main.c", base)
	f.writeFile(t, "main", base.Add(time.Minute))

	require.NoError(t, f.orch.Rebuild(context.Background(), "main.c", []string{"./main"}))
	require.Zero(t, f.compileInvocations())
	require.Empty(t, f.execs)
}

func TestNoRebuildWhenTimestampsEqual(t *testing.T) {
	f := newFixture(t, 0)
	base := time.Now()
	f.writeFile(t, "main.c", base)
	f.writeFile(t, "main", base)

	require.NoError(t, f.orch.Rebuild(context.Background(), "main.c", []string{"./main"}))
	require.Zero(t, f.compileInvocations())
	require.Empty(t, f.execs)
}

func TestCompileFailurePropagatesExitCode(t *testing.T) {
	f := newFixture(t, 2)
	f.writeFile(t, "main.c", time.Now())

	err := f.orch.Rebuild(context.Background(), "main.c", []string{"./main"})

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, 2, cerr.Code)
	require.Equal(t, "main", cerr.Target)
	require.Empty(t, f.execs, "a failed compile must never exec the stale binary")
}

func TestRebuildCompileInvocation(t *testing.T) {
	f := newFixture(t, 0)
	f.writeFile(t, "src/tool.c", time.Now())

	require.NoError(t, f.orch.Rebuild(context.Background(), "src/tool.c", []string{"./tool"}))

	require.Len(t, f.runners, 1)
	tokens := f.runners[0].tokens
	require.Equal(t, []string{DefaultCompiler, "src/tool.c", "-o", "tool", "-fdiagnostics-color=always", "-O2"}, tokens[:6])
	require.Equal(t, GCCWarnings, tokens[6:])
}

func TestRebuildMissingSource(t *testing.T) {
	f := newFixture(t, 0)

	err := f.orch.Rebuild(context.Background(), "absent.c", []string{"./absent"})
	require.Error(t, err)
	require.Zero(t, f.compileInvocations())
}

func TestCompileCommandWithoutWarnings(t *testing.T) {
	f := newFixture(t, 0)

	code, err := f.orch.CompileCommand(context.Background(), "obj", []string{"cc", "-c", "x.c"}, false)
	require.NoError(t, err)
	require.Zero(t, code)
	require.Equal(t, []string{"cc", "-c", "x.c"}, f.runners[0].tokens)
}
