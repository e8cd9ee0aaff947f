package driving

import (
	"context"

	"github.com/haldane-labs/tuberag/internal/core/domain"
)

// SystemService reports pipeline state to external actors.
type SystemService interface {
	// Info returns readiness, chunk count and configured model names.
	// Never returns an error; failures are reported in the Status and
	// Error fields so health endpoints stay alive.
	Info(ctx context.Context) domain.SystemInfo

	// Videos lists the distinct source videos in the store,
	// first-seen order.
	Videos(ctx context.Context) ([]domain.SourceRef, error)
}
