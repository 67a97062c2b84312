package prompts

import "errors"

// ErrInvalidStage indicates an unrecognized processing stage value.
var ErrInvalidStage = errors.New("unknown processing stage")
