package runner

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/component-manager/dirio"
)

// Log records start requests and logs them. It serves each request's
// outgoing directory with an optional Directory, which makes it usable both
// as a dry-run backend for the CLI and as a test double.
type Log struct {
	logger *zap.Logger

	// Outgoing, when set, is attached to every started instance's outgoing
	// server end.
	Outgoing dirio.Directory

	mu     sync.Mutex
	starts []StartRequest
}

// NewLog creates a recording runner. A nil logger disables logging.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// Start implements Runner.
func (l *Log) Start(ctx context.Context, req StartRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.logger.Info("start component",
		zap.String("resolved_url", req.ResolvedURL),
		zap.Int("namespace_entries", len(req.Namespace.Entries())))

	if l.Outgoing != nil && req.Outgoing != nil {
		req.Outgoing.Serve(l.Outgoing)
	}

	l.mu.Lock()
	l.starts = append(l.starts, req)
	l.mu.Unlock()
	return nil
}

// Starts returns a copy of the recorded start requests.
func (l *Log) Starts() []StartRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]StartRequest, len(l.starts))
	copy(out, l.starts)
	return out
}
