package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded digests. It is used
// when Discord (or another notification backend) is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards digests with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendDigest logs and discards a digest.
func (n *NoOpNotifier) SendDigest(_ context.Context, digest *Digest) error {
	expired := 0
	if digest.Loss != nil {
		expired = digest.Loss.Count
	}
	n.log.Debug("digest discarded (no backend configured)",
		"mode", digest.Mode,
		"markdowns", len(digest.Markdowns),
		"expired", expired,
	)
	return nil
}
