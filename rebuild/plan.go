package rebuild

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Step is one compiler invocation in a build plan.
type Step struct {
	Description string   `yaml:"description"`
	Args        []string `yaml:"args"`
	Warnings    bool     `yaml:"warnings"`
}

// Plan is an ordered list of compile steps, typically loaded from a
// YAML file next to the sources:
//
//	steps:
//	  - description: glad
//	    args: [cc, -c, glad/glad.c, -o, glad.o]
//	  - description: nexus
//	    args: [cc, main.c, glad.o, -o, nexus, -lglfw, -lm, -O2]
//	    warnings: true
type Plan struct {
	Steps []Step `yaml:"steps"`
}

// LoadPlan reads and validates a build plan from fs.
func LoadPlan(fs afero.Fs, path string) (*Plan, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading build plan %s", path)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(err, "parsing build plan %s", path)
	}
	if len(p.Steps) == 0 {
		return nil, errors.Errorf("build plan %s has no steps", path)
	}
	for i, s := range p.Steps {
		if len(s.Args) == 0 {
			return nil, errors.Errorf("build plan %s: step %d (%s) has no args", path, i, s.Description)
		}
	}
	return &p, nil
}

// RunPlan executes the plan's steps in order, stopping at the first step
// that fails to run or exits nonzero.
func (o *Orchestrator) RunPlan(ctx context.Context, p *Plan) error {
	for _, s := range p.Steps {
		code, err := o.CompileCommand(ctx, s.Description, s.Args, s.Warnings)
		if err != nil {
			return err
		}
		if code != 0 {
			return &CompileError{Target: s.Description, Code: code}
		}
	}
	return nil
}
