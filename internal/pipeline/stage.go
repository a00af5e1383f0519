// Package pipeline sequences named stages against one working checkout,
// halting on the first failure.
package pipeline

import (
	"github.com/stagehand-ci/stagehand/internal/checkout"
	"github.com/stagehand-ci/stagehand/internal/config"
)

// StageKind tags the variant of work a stage wraps.
type StageKind int

const (
	// KindShell runs an opaque shell command string via sh -c.
	KindShell StageKind = iota
	// KindExec runs an exact argv without shell interpretation.
	KindExec
	// KindCheckout delegates to the version-control checkout provider.
	KindCheckout
)

// Stage is one named unit of pipeline work wrapping a single external
// command invocation. Stages are immutable once built from the parsed
// definition.
type Stage struct {
	Name     string
	Kind     StageKind
	Shell    string
	Command  string
	Args     []string
	Dir      string
	Env      map[string]string
	Checkout *checkout.Spec
}

// StagesFromConfig builds the ordered stage list from a validated pipeline
// definition. Pipeline-level env is merged into each stage's env, with
// stage-level entries taking precedence.
func StagesFromConfig(cfg *config.Config) []Stage {
	stages := make([]Stage, 0, len(cfg.Stages))
	for _, sc := range cfg.Stages {
		stage := Stage{
			Name: sc.Name,
			Dir:  sc.Dir,
			Env:  mergeEnv(cfg.Env, sc.Env),
		}

		switch {
		case sc.Checkout != nil:
			stage.Kind = KindCheckout
			stage.Checkout = &checkout.Spec{
				Repository: sc.Checkout.Repository,
				Ref:        sc.Checkout.Ref,
				Depth:      sc.Checkout.Depth,
			}
		case sc.Command != "":
			stage.Kind = KindExec
			stage.Command = sc.Command
			stage.Args = append([]string(nil), sc.Args...)
		default:
			stage.Kind = KindShell
			stage.Shell = sc.Run
		}

		stages = append(stages, stage)
	}
	return stages
}

// mergeEnv overlays stage env onto pipeline env. Returns nil when both are
// empty so downstream nil checks stay simple.
func mergeEnv(base, overlay map[string]string) map[string]string {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	merged := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}
