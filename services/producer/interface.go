package producer

import (
	"context"

	"github.com/Azarenkov/aitu-web-app/models"
)

// ProducerService drives the fetch-compare-notify-persist pipeline over
// pages of registered accounts.
type ProducerService interface {
	// ProcessNext pulls one page of accounts starting at offset, processes
	// it and returns the offset for the following call. An exhausted
	// registry returns 0 so the next call restarts the poll cycle.
	ProcessNext(ctx context.Context, limit, offset int64) (int64, error)
	// ProcessBatch runs the per-account pipeline for every account in the
	// batch, sequentially. Per-account failures are logged and never abort
	// sibling accounts.
	ProcessBatch(ctx context.Context, batch []models.Token)
}
