package prompts

const qualitySpec = `Reply with one JSON object shaped exactly like this:

{
  "is_readable": true,
  "feedback": "<assessment>"
}

Field rules:
- is_readable: true only when every critical field can be read with
  confidence; false when any defect prevents reliable extraction.
- feedback: Brief description of the image quality. When not readable,
  name the specific defect and the affected region (e.g., "courtesy
  amount box is blurred beyond recognition").

Output rules:
- Emit bare JSON with no markdown fences or commentary
- Judge extraction feasibility, not aesthetics`

const extractTextSpec = `Reply with one JSON object shaped exactly like this:

{
  "payee": "<name>",
  "date": "<digits>",
  "amount": "<numeric amount>",
  "amount_in_words": "<written amount>",
  "micr_line": "<full MICR line>"
}

Field rules:
- payee: The payee name exactly as written on the pay line.
- date: The date as a raw string of digits in written order, with no
  separators (e.g., a cheque dated 01/03/2024 reads "01032024").
- amount: The courtesy amount from the amount box.
- amount_in_words: The complete written amount line.
- micr_line: Every symbol of the MICR line, transcribed left to right.

Output rules:
- Emit bare JSON with no markdown fences or commentary
- Use an empty string for a field that is absent or illegible
- Do not infer or correct values; transcribe what is printed`

const extractSignatureSpec = `Reply with one JSON object shaped exactly like this:

{
  "signature_bbox": [0.62, 0.68, 0.93, 0.88]
}

Field rules:
- signature_bbox: Four relative coordinates [x_min, y_min, x_max, y_max],
  each between 0 and 1, tightly enclosing the handwritten signature.
  Use null when no signature is visible.

Output rules:
- Emit bare JSON with no markdown fences or commentary
- Report only one bounding box, for the primary drawer signature`

const validateSpec = `Reply with one JSON object shaped exactly like this:

{
  "is_amount_consistent": true,
  "validation_reason": "<explanation>",
  "payer_account_number": "<digits>"
}

Field rules:
- is_amount_consistent: true when the numeric amount and written amount
  are financially equivalent, false otherwise.
- validation_reason: One sentence explaining the consistency conclusion
  (e.g., "Amounts 150.25 and 'ONE HUNDRED FIFTY & 25/100' are consistent.").
- payer_account_number: The account number parsed from the MICR line,
  digits only.

Output rules:
- Emit bare JSON with no markdown fences or commentary
- Base the consistency verdict solely on the provided values`

const tamperingSpec = `Reply with one JSON object shaped exactly like this:

{
  "is_tampered": false,
  "reason": "<observation>"
}

Field rules:
- is_tampered: true when you suspect deliberate alteration, false otherwise.
- reason: One or two sentences citing the specific visual evidence, or
  confirming the absence of alteration indicators.

Output rules:
- Emit bare JSON with no markdown fences or commentary
- Flag only deliberate alteration, not poor print quality`

const behaviorSpec = `Reply with one JSON object shaped exactly like this:

{
  "is_anomalous": false,
  "reason": "<justification>"
}

Field rules:
- is_anomalous: true when you suspect a behavioral anomaly, false otherwise.
- reason: A brief, one-sentence justification for the conclusion.

Output rules:
- Emit bare JSON with no markdown fences or commentary
- Weigh both the amount check and the payee check in the conclusion`

const signatureSpec = `Reply with one JSON object shaped exactly like this:

{
  "signatures_match": true,
  "reason": "<analysis>"
}

Field rules:
- signatures_match: true when the cheque signature is consistent with
  the reference author, false otherwise.
- reason: One or two sentences naming the features that support the
  conclusion (form, line quality, construction).

Output rules:
- Emit bare JSON with no markdown fences or commentary
- Account for natural variation between genuine signatures`

const summarySpec = `Respond with plain prose, no JSON.

The report should be concise and human-readable: a short overview of the
final outcome, a summary of any anomalies flagged, and a one-sentence
conclusion. Do not invent steps that are not present in the logs.`

const lienSpec = `Reply with one JSON object shaped exactly like this:

{
  "predict_lien": false,
  "reason": "<justification>"
}

Field rules:
- predict_lien: true when a lien marking is advisable before funds release.
- reason: A brief, one-sentence justification for the recommendation.

Output rules:
- Emit bare JSON with no markdown fences or commentary
- The recommendation is advisory; do not reference approval or rejection`

var specs = map[Stage]string{
	StageQuality:          qualitySpec,
	StageExtractText:      extractTextSpec,
	StageExtractSignature: extractSignatureSpec,
	StageValidate:         validateSpec,
	StageTampering:        tamperingSpec,
	StageBehavior:         behaviorSpec,
	StageSignature:        signatureSpec,
	StageSummary:          summarySpec,
	StageLien:             lienSpec,
}

// Spec returns the response specification for a processing stage. The
// spec pins the reply shape the parser expects.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	return lookup(specs, stage)
}
