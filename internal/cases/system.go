package cases

import (
	"context"

	"github.com/google/uuid"

	"github.com/counterfoil/teller/pkg/pagination"
	"github.com/counterfoil/teller/pkg/storage"
)

// System defines the public contract for cheque case domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Case], error)

	Find(ctx context.Context, id uuid.UUID) (*Case, error)
	Create(ctx context.Context, cmd CreateCommand) (*Case, error)
	CreateBatch(ctx context.Context, cmds []CreateCommand) []BatchResult
	Download(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, string, error)
	Process(ctx context.Context, id uuid.UUID) (*Case, error)
	Report(ctx context.Context, id uuid.UUID) (*Report, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
