package vision

import (
	"context"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/counterfoil/teller/internal/workflow"
)

// Required shape of a completed extraction. The downstream checks cannot
// run without these fields, so an extraction missing any of them is a
// failed step rather than a partial result.
const fieldsSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["payee", "amount", "payer_account_number", "is_date_valid"],
  "properties": {
    "payee": {"type": "string", "minLength": 1},
    "amount": {"type": "number"},
    "payer_account_number": {"type": "string", "minLength": 1},
    "is_date_valid": {"type": "boolean"}
  }
}`

var fieldsSchema = mustCompileFieldsSchema()

func mustCompileFieldsSchema() *jsonschema.Schema {
	const url = "extraction.schema.json"

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	if err := c.AddResource(url, strings.NewReader(fieldsSchemaJSON)); err != nil {
		panic(fmt.Sprintf("extraction schema: %v", err))
	}

	schema, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("extraction schema: %v", err))
	}

	return schema
}

// checkCompleteness validates the merged extraction against the required
// field shape. An amount the model never produced is omitted so the
// schema can catch it.
func (s *System) checkCompleteness(ctx context.Context, fields *workflow.ExtractedFields, amountPresent bool) error {
	merged := map[string]any{
		"payee":                fields.Payee,
		"payer_account_number": fields.AccountNumber,
		"is_date_valid":        fields.DateValid,
	}
	if amountPresent {
		merged["amount"] = fields.Amount
	}

	if err := fieldsSchema.Validate(merged); err != nil {
		s.logger.WarnContext(ctx, "extraction incomplete", "error", err)
		return ErrIncompleteExtraction
	}

	return nil
}
