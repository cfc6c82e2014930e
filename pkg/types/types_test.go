package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  domain.Mode
	}{
		{"greedy", domain.ModeGreedy},
		{"ml", domain.ModeML},
		{"ML", domain.ModeML},
		{" ml ", domain.ModeML},
		{"", domain.ModeGreedy},
		{"xgboost", domain.ModeGreedy},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domain.ParseMode(tt.input))
		})
	}
}

func TestParseSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  domain.Segment
	}{
		{"expired", domain.SegmentExpired},
		{"near_expiry", domain.SegmentNearExpiry},
		{"low_turnover", domain.SegmentLowTurnover},
		{"High_Pressure", domain.SegmentHighPressure},
		{"all", domain.SegmentAll},
		{"", domain.SegmentAll},
		{"clearance", domain.SegmentAll},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domain.ParseSegment(tt.input))
		})
	}
}

func TestInventoryItem_IsSlow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  bool
	}{
		{"slow", true},
		{"SLOW", true},
		{" Slow ", true},
		{"fast", false},
		{"medium", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			item := domain.InventoryItem{TurnoverLabel: tt.label}
			assert.Equal(t, tt.want, item.IsSlow())
		})
	}
}
