package prompts

import (
	"encoding/json"
	"slices"
)

// Stage identifies one model-delegated step of cheque processing.
type Stage string

// Valid processing stages.
const (
	StageQuality          Stage = "quality"
	StageExtractText      Stage = "extract_text"
	StageExtractSignature Stage = "extract_signature"
	StageValidate         Stage = "validate"
	StageTampering        Stage = "tampering"
	StageBehavior         Stage = "behavior"
	StageSignature        Stage = "signature"
	StageSummary          Stage = "summary"
	StageLien             Stage = "lien"
)

var stages = []Stage{
	StageQuality,
	StageExtractText,
	StageExtractSignature,
	StageValidate,
	StageTampering,
	StageBehavior,
	StageSignature,
	StageSummary,
	StageLien,
}

// Stages lists every known stage in processing order.
func Stages() []Stage {
	return stages
}

func knownStage(s Stage) bool {
	return slices.Contains(stages, s)
}

// ParseStage checks a raw string against the known stage values.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	if v := Stage(s); knownStage(v) {
		return v, nil
	}
	return "", ErrInvalidStage
}

// UnmarshalJSON rejects JSON strings that do not name a known stage.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := ParseStage(raw)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}
