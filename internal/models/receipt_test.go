package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmissionReceipt(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	r := NewSubmissionReceipt("ann", "hello", "2026-10-17T12:00:00.000Z", now)

	_, err := uuid.Parse(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann", r.Name)
	assert.Equal(t, "hello", r.Comment)
	assert.Equal(t, now, r.SubmittedAt)
}

func TestSubmissionReceipt_IsRecent(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	window := 5 * time.Minute

	tests := []struct {
		submittedAt time.Time
		name        string
		want        bool
	}{
		{name: "just now", submittedAt: now, want: true},
		{name: "inside window", submittedAt: now.Add(-4 * time.Minute), want: true},
		{name: "exactly at window", submittedAt: now.Add(-window), want: false},
		{name: "stale", submittedAt: now.Add(-time.Hour), want: false},
		{name: "zero time", submittedAt: time.Time{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := SubmissionReceipt{SubmittedAt: tt.submittedAt}
			assert.Equal(t, tt.want, r.IsRecent(now, window))
		})
	}
}

func TestSubmissionReceipt_PendingRecord(t *testing.T) {
	r := SubmissionReceipt{Name: "ann", Comment: "hello", ClientTimestamp: "T1"}
	rec := r.PendingRecord()

	assert.True(t, rec.IsPending())
	assert.Equal(t, "_T1", rec.Key())
	assert.False(t, rec.Blocked)
}
