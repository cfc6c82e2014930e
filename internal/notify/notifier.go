// Package notify defines the notification interface and implementations
// for markdown digest delivery.
package notify

import (
	"context"
	"time"

	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// Digest summarizes the current markdown picture: the deepest discounts on
// active stock and the value already lost to expiry.
type Digest struct {
	Mode        domain.Mode
	Markdowns   []domain.ScoredItem
	Loss        *domain.LossReport
	GeneratedAt time.Time
}

// Empty reports whether the digest has nothing worth sending.
func (d *Digest) Empty() bool {
	return len(d.Markdowns) == 0 && (d.Loss == nil || d.Loss.Count == 0)
}

// Notifier defines the interface for sending markdown digests.
type Notifier interface {
	SendDigest(ctx context.Context, digest *Digest) error
}
