package cmdrunner

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestExecuteCapturesOutput(t *testing.T) {
	r := New(WithStdout(&bytes.Buffer{}))

	r.Append("echo", "ok")
	code, err := r.Execute(context.Background())

	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, 0, r.ExitCode())
	require.Equal(t, "ok\n", r.Output())
}

func TestExecuteNonzeroExit(t *testing.T) {
	r := New(WithStdout(&bytes.Buffer{}))

	r.Append("exit", "7")
	code, err := r.Execute(context.Background())

	require.NoError(t, err)
	require.Equal(t, 7, code)
	require.Equal(t, 7, r.ExitCode())
}

func TestExecuteCombinesStdoutAndStderr(t *testing.T) {
	r := New(WithStdout(&bytes.Buffer{}))

	r.Append("echo out; echo err 1>&2")
	code, err := r.Execute(context.Background())

	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Contains(t, r.Output(), "out\n")
	require.Contains(t, r.Output(), "err\n")
}

func TestExecuteStreamsWhileCapturing(t *testing.T) {
	var live bytes.Buffer
	r := New(WithStdout(&live))

	r.Append("echo", "streamed")
	_, err := r.Execute(context.Background())

	require.NoError(t, err)
	require.Equal(t, "streamed\n", live.String())
	require.Equal(t, "streamed\n", r.Output())
}

func TestRunnerIsReusable(t *testing.T) {
	r := New(WithStdout(&bytes.Buffer{}))

	r.Append("echo", "first")
	_, err := r.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, "first\n", r.Output())
	require.Empty(t, r.Command(), "command line should be cleared after execution")

	r.Append("echo", "second")
	_, err = r.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, "second\n", r.Output(), "prior output should be discarded")
}

func TestAppendJoinsWithSpaces(t *testing.T) {
	r := New()
	r.Append("cc", "main.c")
	r.Append("-o", "main")
	require.Equal(t, "cc main.c -o main ", r.Command())
}

func TestExecuteArgv(t *testing.T) {
	r := New(WithStdout(&bytes.Buffer{}))

	// The shell would split this argument; the argv path must not.
	code, err := r.ExecuteArgv(context.Background(), "echo", "one two")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "one two\n", r.Output())

	_, err = r.ExecuteArgv(context.Background())
	require.Error(t, err)
}

func TestStartFailureLeavesCommandForRetry(t *testing.T) {
	r := New(WithStdout(&bytes.Buffer{}))

	code, err := r.ExecuteArgv(context.Background(), "/nonexistent/binary/for/sure")
	require.Error(t, err)
	require.Equal(t, -1, code)
	require.Equal(t, -1, r.ExitCode())

	// The shell path keeps the pending line on start failure too.
	r.Append("echo", "still here")
	require.Equal(t, "echo still here ", r.Command())
}

func TestRun(t *testing.T) {
	code, err := Run(context.Background(), "true")
	require.NoError(t, err)
	require.Equal(t, 0, code)

	code, err = Run(context.Background(), "false")
	require.NoError(t, err)
	require.Equal(t, 1, code)
}
