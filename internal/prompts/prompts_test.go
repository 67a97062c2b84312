package prompts_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/counterfoil/teller/internal/prompts"
)

func TestStagesComplete(t *testing.T) {
	want := []prompts.Stage{
		prompts.StageQuality,
		prompts.StageExtractText,
		prompts.StageExtractSignature,
		prompts.StageValidate,
		prompts.StageTampering,
		prompts.StageBehavior,
		prompts.StageSignature,
		prompts.StageSummary,
		prompts.StageLien,
	}

	got := prompts.Stages()
	if len(got) != len(want) {
		t.Fatalf("Stages() length = %d, want %d", len(got), len(want))
	}
	for i, stage := range want {
		if got[i] != stage {
			t.Errorf("Stages()[%d] = %s, want %s", i, got[i], stage)
		}
	}
}

func TestEveryStageHasContent(t *testing.T) {
	sys := prompts.New()
	ctx := context.Background()

	for _, stage := range prompts.Stages() {
		t.Run(string(stage), func(t *testing.T) {
			instructions, err := sys.Instructions(ctx, stage)
			if err != nil {
				t.Fatalf("Instructions(%s) error: %v", stage, err)
			}
			if instructions == "" {
				t.Errorf("Instructions(%s) is empty", stage)
			}

			spec, err := sys.Spec(ctx, stage)
			if err != nil {
				t.Fatalf("Spec(%s) error: %v", stage, err)
			}
			if spec == "" {
				t.Errorf("Spec(%s) is empty", stage)
			}
		})
	}
}

func TestUnknownStage(t *testing.T) {
	sys := prompts.New()
	ctx := context.Background()

	if _, err := sys.Instructions(ctx, prompts.Stage("negotiate")); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("Instructions() error = %v, want ErrInvalidStage", err)
	}
	if _, err := sys.Spec(ctx, prompts.Stage("negotiate")); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("Spec() error = %v, want ErrInvalidStage", err)
	}
}

func TestParseStage(t *testing.T) {
	stage, err := prompts.ParseStage("tampering")
	if err != nil {
		t.Fatalf("ParseStage() error: %v", err)
	}
	if stage != prompts.StageTampering {
		t.Errorf("ParseStage() = %s, want %s", stage, prompts.StageTampering)
	}

	if _, err := prompts.ParseStage("negotiate"); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("ParseStage() error = %v, want ErrInvalidStage", err)
	}
}

func TestStageUnmarshalJSON(t *testing.T) {
	var stage prompts.Stage
	if err := json.Unmarshal([]byte(`"behavior"`), &stage); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if stage != prompts.StageBehavior {
		t.Errorf("stage = %s, want %s", stage, prompts.StageBehavior)
	}

	if err := json.Unmarshal([]byte(`"negotiate"`), &stage); !errors.Is(err, prompts.ErrInvalidStage) {
		t.Errorf("Unmarshal error = %v, want ErrInvalidStage", err)
	}
}
