package vision

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/counterfoil/teller/internal/prompts"
	"github.com/counterfoil/teller/internal/workflow"
	"github.com/counterfoil/teller/pkg/formatting"
)

// Amount arrives as a string or a bare number depending on how the
// model transcribed the courtesy box, so it is coerced after parsing.
type textFields struct {
	Payee         string `json:"payee"`
	Date          string `json:"date"`
	Amount        any    `json:"amount"`
	AmountInWords string `json:"amount_in_words"`
	MICRLine      string `json:"micr_line"`
}

type signatureLocation struct {
	SignatureBbox any `json:"signature_bbox"`
}

type validationChecks struct {
	IsAmountConsistent bool   `json:"is_amount_consistent"`
	ValidationReason   string `json:"validation_reason"`
	PayerAccountNumber string `json:"payer_account_number"`
}

// Extract runs the staged extraction: text fields and signature location
// off the image, model-side amount validation over the text fields,
// programmatic date validation, then cleanup and the completeness check.
// A missing or unparseable signature box degrades to no signature rather
// than failing the extraction.
func (s *System) Extract(ctx context.Context, img workflow.Image) (*workflow.ExtractedFields, error) {
	content, err := s.callVision(ctx, prompts.StageExtractText, nil, img)
	if err != nil {
		return nil, fmt.Errorf("extract text fields: %w", err)
	}

	text, err := formatting.Parse[textFields](content)
	if err != nil {
		return nil, fmt.Errorf("parse text fields: %w", err)
	}

	content, err = s.callVision(ctx, prompts.StageExtractSignature, nil, img)
	if err != nil {
		return nil, fmt.Errorf("locate signature: %w", err)
	}

	location, err := formatting.Parse[signatureLocation](content)
	if err != nil {
		return nil, fmt.Errorf("parse signature location: %w", err)
	}

	content, err = s.callChat(ctx, prompts.StageValidate, text)
	if err != nil {
		return nil, fmt.Errorf("validate fields: %w", err)
	}

	checks, err := formatting.Parse[validationChecks](content)
	if err != nil {
		return nil, fmt.Errorf("parse validation: %w", err)
	}

	amount, amountPresent, err := coerceAmount(text.Amount)
	if err != nil {
		return nil, err
	}

	dateValid, dateReason := workflow.ValidateDate(text.Date, time.Now(), s.staleDays)

	fields := &workflow.ExtractedFields{
		Payee:            text.Payee,
		Amount:           amount,
		AmountInWords:    text.AmountInWords,
		Date:             text.Date,
		AccountNumber:    cleanAccount(checks.PayerAccountNumber),
		MICRLine:         text.MICRLine,
		DateValid:        dateValid,
		DateReason:       dateReason,
		AmountConsistent: checks.IsAmountConsistent,
		AmountReason:     checks.ValidationReason,
	}

	if box := coerceBox(location.SignatureBbox); box != nil {
		sig, err := cropSignature(img, box)
		if err != nil {
			s.logger.WarnContext(ctx, "signature crop failed", "error", err)
		} else {
			fields.Signature = sig
		}
	} else if location.SignatureBbox != nil {
		s.logger.WarnContext(ctx, "could not parse signature box", "box", location.SignatureBbox)
	}

	if err := s.checkCompleteness(ctx, fields, amountPresent); err != nil {
		return nil, err
	}

	return fields, nil
}

// cleanAccount strips the quoting and whitespace models occasionally
// wrap around the MICR-parsed account number.
func cleanAccount(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
}

// coerceAmount converts the transcribed courtesy amount to a float.
// String amounts may carry a comma decimal separator. The present flag
// distinguishes an absent amount from a zero one.
func coerceAmount(v any) (float64, bool, error) {
	switch a := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return a, true, nil
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(a), ",", "."), 64)
		if err != nil {
			return 0, false, fmt.Errorf("parse amount %q: %w", a, err)
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("unexpected amount type %T", v)
	}
}

// coerceBox accepts only a four-number list; anything else means no
// usable signature location.
func coerceBox(v any) []float64 {
	items, ok := v.([]any)
	if !ok || len(items) != 4 {
		return nil
	}

	box := make([]float64, 4)
	for i, item := range items {
		f, ok := item.(float64)
		if !ok {
			return nil
		}
		box[i] = f
	}

	return box
}
