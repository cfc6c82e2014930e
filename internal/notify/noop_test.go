package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

func TestNoOpNotifier_SendDigest(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := n.SendDigest(context.Background(), &Digest{
		Mode:      domain.ModeGreedy,
		Markdowns: []domain.ScoredItem{testMarkdown("SKU-1", 30)},
		Loss:      testLoss(),
	})
	require.NoError(t, err)
}

func TestNoOpNotifier_SendDigest_Empty(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, n.SendDigest(context.Background(), &Digest{}))
}

func TestDigest_Empty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		digest Digest
		want   bool
	}{
		{"nothing", Digest{}, true},
		{"zero loss", Digest{Loss: &domain.LossReport{}}, true},
		{"markdowns", Digest{Markdowns: []domain.ScoredItem{testMarkdown("SKU-1", 10)}}, false},
		{"loss only", Digest{Loss: testLoss()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.digest.Empty())
		})
	}
}

// compile-time interface checks.
var (
	_ Notifier = (*NoOpNotifier)(nil)
	_ Notifier = (*DiscordNotifier)(nil)
)
