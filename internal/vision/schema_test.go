package vision

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/counterfoil/teller/internal/workflow"
)

func completenessSystem() *System {
	return &System{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestCheckCompleteness(t *testing.T) {
	complete := func() *workflow.ExtractedFields {
		return &workflow.ExtractedFields{
			Payee:         "Utility Company",
			Amount:        150,
			AccountNumber: "12345678",
			DateValid:     true,
		}
	}

	tests := []struct {
		name          string
		mutate        func(*workflow.ExtractedFields)
		amountPresent bool
		wantErr       bool
	}{
		{
			"complete",
			func(*workflow.ExtractedFields) {},
			true,
			false,
		},
		{
			"zero amount still counts as extracted",
			func(f *workflow.ExtractedFields) { f.Amount = 0 },
			true,
			false,
		},
		{
			"invalid date still counts as validated",
			func(f *workflow.ExtractedFields) { f.DateValid = false },
			true,
			false,
		},
		{
			"missing amount",
			func(*workflow.ExtractedFields) {},
			false,
			true,
		},
		{
			"missing payee",
			func(f *workflow.ExtractedFields) { f.Payee = "" },
			true,
			true,
		},
		{
			"missing account number",
			func(f *workflow.ExtractedFields) { f.AccountNumber = "" },
			true,
			true,
		},
	}

	s := completenessSystem()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := complete()
			tt.mutate(fields)

			err := s.checkCompleteness(context.Background(), fields, tt.amountPresent)
			if tt.wantErr {
				if !errors.Is(err, ErrIncompleteExtraction) {
					t.Errorf("checkCompleteness() error = %v, want ErrIncompleteExtraction", err)
				}
				return
			}
			if err != nil {
				t.Errorf("checkCompleteness() error = %v, want nil", err)
			}
		})
	}
}
