// Package prompts holds the per-stage instructions and response
// specifications for the model-delegated cheque checks. Texts are static;
// the System interface keeps callers independent of where prompt content
// comes from.
package prompts

import "context"

// System resolves prompt content for a processing stage.
type System interface {
	Instructions(ctx context.Context, stage Stage) (string, error)
	Spec(ctx context.Context, stage Stage) (string, error)
}

type system struct{}

// New creates a System serving the built-in stage prompts.
func New() System {
	return &system{}
}

func (s *system) Instructions(_ context.Context, stage Stage) (string, error) {
	return Instructions(stage)
}

func (s *system) Spec(_ context.Context, stage Stage) (string, error) {
	return Spec(stage)
}
