package cases

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/errgroup"

	"github.com/counterfoil/teller/internal/vision"
	"github.com/counterfoil/teller/internal/workflow"
	"github.com/counterfoil/teller/pkg/pagination"
	"github.com/counterfoil/teller/pkg/query"
	"github.com/counterfoil/teller/pkg/repository"
	"github.com/counterfoil/teller/pkg/storage"
)

const returningColumns = `id, label, filename, content_type, size_bytes, page_count,
			  storage_key, status, decision, feedback, extracted_fields,
			  fraud_detected, anomaly_count, audit_log, audit_summary,
			  lien_advised, lien_reason, received_at, processed_at, updated_at`

type repo struct {
	db         *sql.DB
	storage    storage.System
	rt         *workflow.Runtime
	advisor    Advisor
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a case repository implementing the System interface.
// A nil advisor disables lien advice on approved cheques.
func New(
	db *sql.DB,
	store storage.System,
	rt *workflow.Runtime,
	advisor Advisor,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		rt:         rt,
		advisor:    advisor,
		logger:     logger.With("system", "cases"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Case], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename", "Label")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count cases: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCase)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Case, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCase)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Case, error) {
	pageCount, err := validateCheque(cmd)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	key := buildStorageKey(id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload cheque blob: %w", err)
	}

	q := `
		INSERT INTO cases(id, label, filename, content_type, size_bytes, page_count, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + returningColumns

	insertArgs := []any{
		id,
		caseLabel(id),
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		pageCount,
		key,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanCase)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("case created", "id", c.ID, "case", c.Label, "filename", c.Filename)
	return &c, nil
}

// CreateBatch registers several cheques concurrently. Failures are
// recorded per file and never abort the rest of the batch.
func (r *repo) CreateBatch(ctx context.Context, cmds []CreateCommand) []BatchResult {
	results := make([]BatchResult, len(cmds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(cmds)))

	for i := range cmds {
		g.Go(func() error {
			cmd := cmds[i]

			if err := gctx.Err(); err != nil {
				results[i] = BatchResult{Filename: cmd.Filename, Error: err.Error()}
				return nil
			}

			c, err := r.Create(gctx, cmd)
			if err != nil {
				results[i] = BatchResult{Filename: cmd.Filename, Error: err.Error()}
				return nil
			}

			results[i] = BatchResult{Case: c, Filename: cmd.Filename}
			return nil
		})
	}

	// goroutines record their own failures and always return nil
	_ = g.Wait()
	return results
}

// Download returns the stored cheque blob stream along with the original
// filename for content disposition.
func (r *repo) Download(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, string, error) {
	c, err := r.Find(ctx, id)
	if err != nil {
		return nil, "", err
	}

	blob, err := r.storage.Download(ctx, c.StorageKey)
	if err != nil {
		return nil, "", fmt.Errorf("download cheque blob: %w", err)
	}

	return blob, c.Filename, nil
}

// Process runs the stored cheque through the decision workflow and
// persists the outcome. Reprocessing is allowed and overwrites the
// prior outcome; a failed run restores the previous status.
func (r *repo) Process(ctx context.Context, id uuid.UUID) (*Case, error) {
	c, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.setStatus(ctx, id, StatusProcessing); err != nil {
		return nil, err
	}

	outcome, err := r.run(ctx, c)
	if err != nil {
		r.restoreStatus(ctx, id, c.Status)
		return nil, err
	}

	return r.persistOutcome(ctx, c, outcome)
}

func (r *repo) Report(ctx context.Context, id uuid.UUID) (*Report, error) {
	c, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildReport(c)
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM cases WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, c.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", c.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("case deleted", "id", id)
	return nil
}

// run fetches the stored cheque, normalizes it to a workflow image, and
// executes the decision workflow under the case's stable label.
func (r *repo) run(ctx context.Context, c *Case) (*workflow.Outcome, error) {
	blob, err := r.storage.Download(ctx, c.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("download cheque blob: %w", err)
	}
	defer blob.Body.Close()

	data, err := io.ReadAll(blob.Body)
	if err != nil {
		return nil, fmt.Errorf("read cheque blob: %w", err)
	}

	img, err := vision.Normalize(data, c.ContentType)
	if err != nil {
		return nil, fmt.Errorf("prepare cheque image: %w", err)
	}

	return workflow.Execute(ctx, r.rt, workflow.Input{Image: img, Label: c.Label})
}

func (r *repo) persistOutcome(ctx context.Context, c *Case, outcome *workflow.Outcome) (*Case, error) {
	var lienAdvised *bool
	var lienReason *string
	if r.advisor != nil && outcome.Decision == workflow.DecisionApprove {
		advised, reason := r.advisor.AdviseLien(ctx, outcome.Fields)
		lienAdvised = &advised
		lienReason = &reason
	}

	feedbackJSON, err := json.Marshal(outcome.Feedback)
	if err != nil {
		return nil, fmt.Errorf("marshal feedback: %w", err)
	}

	var fieldsJSON []byte
	if outcome.Fields != nil {
		fieldsJSON, err = json.Marshal(outcome.Fields)
		if err != nil {
			return nil, fmt.Errorf("marshal extracted fields: %w", err)
		}
	}

	auditJSON, err := json.Marshal(outcome.Audit)
	if err != nil {
		return nil, fmt.Errorf("marshal audit log: %w", err)
	}

	q := `
		UPDATE cases
		SET status = $1, decision = $2, feedback = $3, extracted_fields = $4,
			fraud_detected = $5, anomaly_count = $6, audit_log = $7,
			audit_summary = $8, lien_advised = $9, lien_reason = $10,
			processed_at = NOW(), updated_at = NOW()
		WHERE id = $11
		RETURNING ` + returningColumns

	updateArgs := []any{
		statusForDecision(outcome.Decision),
		string(outcome.Decision),
		feedbackJSON,
		fieldsJSON,
		outcome.FraudDetected,
		len(outcome.Audit.Anomalies),
		auditJSON,
		outcome.Summary,
		lienAdvised,
		lienReason,
		c.ID,
	}

	updated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		return repository.QueryOne(ctx, tx, q, updateArgs, scanCase)
	})

	if err != nil {
		r.restoreStatus(ctx, c.ID, c.Status)
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("cheque processed",
		"id", updated.ID,
		"case", updated.Label,
		"decision", outcome.Decision,
		"anomalies", updated.AnomalyCount,
	)
	return &updated, nil
}

func (r *repo) setStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE cases SET status = $1, updated_at = NOW() WHERE id = $2",
			status, id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

// restoreStatus is best-effort compensation after a failed run.
func (r *repo) restoreStatus(ctx context.Context, id uuid.UUID, status string) {
	if err := r.setStatus(ctx, id, status); err != nil {
		r.logger.Warn("status restore failed", "id", id, "status", status, "error", err)
	}
}

// validateCheque enforces the intake contract: PNG, JPEG, or a
// single-page PDF.
func validateCheque(cmd CreateCommand) (*int, error) {
	switch cmd.ContentType {
	case "image/png", "image/jpeg":
		return nil, nil
	case "application/pdf":
		count, err := api.PageCount(bytes.NewReader(cmd.Data), nil)
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable PDF", ErrInvalidFile)
		}
		if count != 1 {
			return nil, fmt.Errorf("%w: got %d pages", ErrMultiPagePDF, count)
		}
		return &count, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, cmd.ContentType)
	}
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("cheques/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "cheque"
	}
	return url.PathEscape(name)
}

func workerCount(n int) int {
	return max(min(runtime.NumCPU(), n), 1)
}
