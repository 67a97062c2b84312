package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/counterfoil/teller/internal/clearing"
	"github.com/counterfoil/teller/internal/config"
	"github.com/counterfoil/teller/internal/payers"
	"github.com/counterfoil/teller/internal/prompts"
	"github.com/counterfoil/teller/internal/vision"
	"github.com/counterfoil/teller/internal/workflow"
)

const envAccountRule = "TELLER_INTAKE_ACCOUNT_RULE"

func main() {
	var (
		imagePath  = flag.String("image", "", "Cheque image to process (png, jpeg, or single-page pdf)")
		payersPath = flag.String("payers", "payers.toml", "Payer directory file")
		assetsDir  = flag.String("assets", "signatures", "Reference signature directory")
		staleDays  = flag.Int("stale-days", 180, "Maximum age of the cheque date in days")
		verbose    = flag.Bool("verbose", false, "Log workflow progress to stderr")
	)
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("usage: check -image <cheque> [-payers payers.toml] [-assets signatures]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger := newLogger(*verbose)

	rt, err := buildRuntime(*payersPath, *assetsDir, *staleDays, logger)
	if err != nil {
		log.Fatalf("failed to build runtime: %v", err)
	}

	data, err := os.ReadFile(*imagePath)
	if err != nil {
		log.Fatalf("failed to read cheque image: %v", err)
	}

	img, err := vision.Normalize(data, detectContentType(*imagePath, data))
	if err != nil {
		log.Fatalf("failed to normalize cheque image: %v", err)
	}

	outcome, err := workflow.Execute(context.Background(), rt, workflow.Input{Image: img})
	if err != nil {
		log.Fatalf("workflow failed: %v", err)
	}

	printOutcome(outcome)
}

func newLogger(verbose bool) *slog.Logger {
	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildRuntime(payersPath, assetsDir string, staleDays int, logger *slog.Logger) (*workflow.Runtime, error) {
	agentCfg := gaconfig.AgentConfig{}
	if err := config.FinalizeAgent(&agentCfg); err != nil {
		return nil, fmt.Errorf("agent config: %w", err)
	}

	directory, err := payers.New(&payers.Config{Path: payersPath}, logger)
	if err != nil {
		return nil, err
	}

	clearingCfg := clearing.Config{}
	if err := clearingCfg.Finalize(&clearing.Env{AccountRule: envAccountRule}); err != nil {
		return nil, err
	}

	accounts, err := clearing.New(clearingCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("clearing rule: %w", err)
	}

	visionSystem := vision.New(agentCfg, prompts.New(), directory, staleDays, logger)

	return &workflow.Runtime{
		Inspector:  visionSystem,
		Extractor:  visionSystem,
		Tampering:  visionSystem,
		Behavior:   visionSystem,
		Signatures: visionSystem,
		Accounts:   accounts,
		Formatter:  visionSystem,
		Directory:  directory,
		Assets:     payers.NewDirStore(assetsDir),
		Logger:     logger,
	}, nil
}

func detectContentType(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	}
	return http.DetectContentType(data)
}

func printOutcome(outcome *workflow.Outcome) {
	line := strings.Repeat("=", 50)
	fmt.Println()
	fmt.Println(line)
	fmt.Println("           FINAL CHEQUE PROCESSING OUTCOME")
	fmt.Println(line)
	fmt.Printf("Case: %s\n", outcome.CaseID)
	fmt.Printf("Decision: %s\n", outcome.Decision)
	fmt.Printf("Fraud detected: %t\n", outcome.FraudDetected)

	if len(outcome.Feedback) > 0 {
		fmt.Println("Feedback:")
		for _, entry := range outcome.Feedback {
			fmt.Printf("  - %s\n", entry)
		}
	}

	if fields := outcome.Fields; fields != nil {
		fmt.Println()
		fmt.Println("Extracted details:")
		fmt.Printf("  Payee:           %s\n", fields.Payee)
		fmt.Printf("  Amount:          %.2f\n", fields.Amount)
		fmt.Printf("  Amount in words: %s\n", fields.AmountInWords)
		fmt.Printf("  Date:            %s\n", fields.Date)
		fmt.Printf("  Account:         %s\n", fields.AccountNumber)

		if fields.DateValid {
			fmt.Println("  Date valid:      yes")
		} else {
			fmt.Printf("  Date valid:      no (%s)\n", fields.DateReason)
		}

		if fields.AmountConsistent {
			fmt.Println("  Amounts match:   yes")
		} else {
			fmt.Printf("  Amounts match:   no (%s)\n", fields.AmountReason)
		}
	}

	if len(outcome.Audit.Anomalies) > 0 {
		fmt.Println()
		fmt.Println("Anomalies:")
		for _, anomaly := range outcome.Audit.Anomalies {
			fmt.Printf("  [%s] %s\n", anomaly.Source, anomaly.Details)
		}
	}

	if outcome.Summary != "" {
		fmt.Println()
		fmt.Println("--- Audit Summary ---")
		fmt.Println(outcome.Summary)
	}

	fmt.Println(line)
}
