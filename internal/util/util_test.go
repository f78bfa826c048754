package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05T10:30", time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)},
		{"2024-03-05T10:30:15", time.Date(2024, 3, 5, 10, 30, 15, 0, time.UTC)},
		{"2024-03-05T10:30:15Z", time.Date(2024, 3, 5, 10, 30, 15, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %v", tt.in, got)
	}

	for _, bad := range []string{"", "not-a-date", "2024-13-01", "05/03/2024"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestNormalizeTimeRange(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	r, err := NormalizeTimeRange("2w", "", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -14), r.Since)
	assert.True(t, r.Until.IsZero())

	r, err = NormalizeTimeRange("2024-06-01", "2024-01-01", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.Since, "reversed bounds are swapped")
	assert.True(t, r.Contains(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))

	_, err = NormalizeTimeRange("yesterday", "", now)
	assert.ErrorContains(t, err, "invalid --since")

	r, err = NormalizeTimeRange("", "", now)
	require.NoError(t, err)
	assert.True(t, r.IsZero())
}

func TestScoreCompletions(t *testing.T) {
	tags := []string{"react", "carreira", "ia", "pwa", "javascript"}
	assert.Equal(t, tags, ScoreCompletions("", tags, 3))
	got := ScoreCompletions("rct", tags, 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "react", got[0])
	assert.Empty(t, ScoreCompletions("zzz", tags, 3))

	got = ScoreCompletions("IA", tags, 0)
	require.NotEmpty(t, got)
	assert.Equal(t, "ia", got[0])
	assert.Contains(t, got, "carreira")
}
