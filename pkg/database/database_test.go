package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuarterBounds(t *testing.T) {
	tests := []struct {
		now       time.Time
		wantStart time.Time
	}{
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 5, 17, 9, 0, 0, 0, time.UTC), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 9, 30, 23, 0, 0, 0, time.UTC), time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC), time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		start, end := QuarterBounds(tt.now)
		assert.Equal(t, tt.wantStart, start)
		assert.Equal(t, tt.wantStart.AddDate(0, 3, 0).Add(-time.Second), end)
		assert.False(t, tt.now.Before(start))
		assert.False(t, tt.now.After(end))
	}
}
