package api

import (
	"fmt"

	"github.com/counterfoil/teller/internal/cases"
	"github.com/counterfoil/teller/internal/clearing"
	"github.com/counterfoil/teller/internal/prompts"
	"github.com/counterfoil/teller/internal/vision"
	"github.com/counterfoil/teller/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Cases cases.System
}

// NewDomain creates all domain systems from the API runtime. The vision
// system serves every model-delegated check; the clearing system serves
// account validation; both are bundled into the workflow runtime the
// cases system executes.
func NewDomain(runtime *Runtime) (*Domain, error) {
	promptsSystem := prompts.New()

	visionSystem := vision.New(
		runtime.Agent,
		promptsSystem,
		runtime.Directory,
		runtime.Intake.StaleDays,
		runtime.Logger,
	)

	clearingSystem, err := clearing.New(runtime.Intake.Clearing, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("clearing rule: %w", err)
	}

	rt := &workflow.Runtime{
		Inspector:  visionSystem,
		Extractor:  visionSystem,
		Tampering:  visionSystem,
		Behavior:   visionSystem,
		Signatures: visionSystem,
		Accounts:   clearingSystem,
		Formatter:  visionSystem,
		Directory:  runtime.Directory,
		Assets:     runtime.Assets,
		Logger:     runtime.Logger.With("workflow", "cheque"),
	}

	var advisor cases.Advisor
	if runtime.Intake.LienAdvice {
		advisor = visionSystem
	}

	casesSystem := cases.New(
		runtime.Database.Connection(),
		runtime.Storage,
		rt,
		advisor,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{Cases: casesSystem}, nil
}
