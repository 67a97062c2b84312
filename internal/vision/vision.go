// Package vision implements the model-delegated cheque checks on top of
// go-agents. One System serves every stage; each call composes the stage
// prompt, creates a fresh agent, and parses the structured response.
// Checks other than extraction never surface errors: a failed call or an
// unparseable response yields the conservative verdict for that check,
// with a reason the audit trail can carry verbatim.
package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/counterfoil/teller/internal/payers"
	"github.com/counterfoil/teller/internal/prompts"
	"github.com/counterfoil/teller/internal/workflow"
)

// Fallback reason applied when a parsed verdict carries no explanation.
const noReason = "No reason provided."

// System performs the vision and chat stages of cheque processing. A
// fresh agent is created per call, so one System is safe for concurrent
// runs.
type System struct {
	agent     gaconfig.AgentConfig
	prompts   prompts.System
	directory payers.System
	staleDays int
	logger    *slog.Logger
}

// New creates a System. The directory backs the behavioral check's payer
// lookup; staleDays bounds how old an extracted cheque date may be.
func New(
	agentCfg gaconfig.AgentConfig,
	ps prompts.System,
	directory payers.System,
	staleDays int,
	logger *slog.Logger,
) *System {
	return &System{
		agent:     agentCfg,
		prompts:   ps,
		directory: directory,
		staleDays: staleDays,
		logger:    logger.With("system", "vision"),
	}
}

// composePrompt builds a stage prompt from its instructions and response
// specification. A non-nil payload is serialized and appended so chat
// stages can reason over structured input.
func (s *System) composePrompt(ctx context.Context, stage prompts.Stage, payload any) (string, error) {
	instructions, err := s.prompts.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := s.prompts.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)

	if payload != nil {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return "", fmt.Errorf("serialize %s payload: %w", stage, err)
		}

		sb.WriteString("\n\nInput data:\n\n")
		sb.WriteString(string(data))
	}

	return sb.String(), nil
}

// callVision sends a stage prompt with one or more images to the vision
// model and returns the raw response content.
func (s *System) callVision(
	ctx context.Context,
	stage prompts.Stage,
	payload any,
	images ...workflow.Image,
) (string, error) {
	prompt, err := s.composePrompt(ctx, stage, payload)
	if err != nil {
		return "", err
	}

	a, err := agent.New(&s.agent)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	uris := make([]string, len(images))
	for i, img := range images {
		uri, err := encodeImage(img)
		if err != nil {
			return "", fmt.Errorf("encode image %d: %w", i+1, err)
		}
		uris[i] = uri
	}

	resp, err := a.Vision(ctx, prompt, uris)
	if err != nil {
		return "", fmt.Errorf("vision call: %w", err)
	}

	return resp.Content(), nil
}

// callChat sends a text-only stage prompt to the model and returns the
// raw response content.
func (s *System) callChat(ctx context.Context, stage prompts.Stage, payload any) (string, error) {
	prompt, err := s.composePrompt(ctx, stage, payload)
	if err != nil {
		return "", err
	}

	a, err := agent.New(&s.agent)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	return resp.Content(), nil
}

func orNoReason(reason string) string {
	if reason == "" {
		return noReason
	}
	return reason
}
