package rebuild

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const planYAML = `
steps:
  - description: glad
    args: [cc, -c, glad/glad.c, -o, glad.o]
  - description: nexus
    args: [cc, main.c, glad.o, -o, nexus, -lglfw, -lm]
    warnings: true
`

func TestLoadPlan(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "build.yml", []byte(planYAML), 0o644))

	p, err := LoadPlan(fs, "build.yml")
	require.NoError(t, err)
	require.Len(t, p.Steps, 2)

	require.Equal(t, "glad", p.Steps[0].Description)
	require.False(t, p.Steps[0].Warnings)
	require.Equal(t, []string{"cc", "-c", "glad/glad.c", "-o", "glad.o"}, p.Steps[0].Args)

	require.Equal(t, "nexus", p.Steps[1].Description)
	require.True(t, p.Steps[1].Warnings)
}

func TestLoadPlanErrors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := LoadPlan(fs, "missing.yml")
	require.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "bad.yml", []byte("steps: {not a list"), 0o644))
	_, err = LoadPlan(fs, "bad.yml")
	require.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "empty.yml", []byte("steps: []"), 0o644))
	_, err = LoadPlan(fs, "empty.yml")
	require.ErrorContains(t, err, "no steps")

	require.NoError(t, afero.WriteFile(fs, "noargs.yml", []byte("steps:\n  - description: x\n"), 0o644))
	_, err = LoadPlan(fs, "noargs.yml")
	require.ErrorContains(t, err, "has no args")
}

func TestRunPlan(t *testing.T) {
	f := newFixture(t, 0)

	p := &Plan{Steps: []Step{
		{Description: "one", Args: []string{"cc", "-c", "a.c"}},
		{Description: "two", Args: []string{"cc", "-c", "b.c"}, Warnings: true},
	}}

	require.NoError(t, f.orch.RunPlan(context.Background(), p))
	require.Equal(t, 2, f.compileInvocations())

	// Warning flags only where requested.
	require.Equal(t, []string{"cc", "-c", "a.c"}, f.runners[0].tokens)
	require.Equal(t, append([]string{"cc", "-c", "b.c"}, GCCWarnings...), f.runners[1].tokens)
}

func TestRunPlanFailFast(t *testing.T) {
	f := newFixture(t, 3)

	p := &Plan{Steps: []Step{
		{Description: "one", Args: []string{"cc", "-c", "a.c"}},
		{Description: "two", Args: []string{"cc", "-c", "b.c"}},
	}}

	err := f.orch.RunPlan(context.Background(), p)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, 3, cerr.Code)
	require.Equal(t, "one", cerr.Target)
	require.Equal(t, 1, f.compileInvocations(), "plan must stop at the first failing step")
}
