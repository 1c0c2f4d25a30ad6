package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/commentfeed/internal/models"
)

func TestLatestReceipt(t *testing.T) {
	_, ok := LatestReceipt(nil)
	assert.False(t, ok)

	latest, ok := LatestReceipt([]models.SubmissionReceipt{{ID: "1"}, {ID: "2"}})
	assert.True(t, ok)
	assert.Equal(t, "2", latest.ID)
}
