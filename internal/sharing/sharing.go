package sharing

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("sharing is not available")

// Options describe the shared payload, mirroring the platform share sheet.
type Options struct {
	Title    string
	MimeType string
}

// Gateway is the platform sharing capability. Implementations are acquired per
// call; no handle is retained by callers.
type Gateway interface {
	IsAvailable(ctx context.Context) bool
	Share(ctx context.Context, url string, opts Options) error
}
