package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, []string{"8-K"}, s.FormTypes)
	assert.Positive(t, s.RateLimit)
	assert.Positive(t, s.RetryMax)
	assert.Positive(t, s.Workers)
	assert.Empty(t, s.Identity, "identity must be configured explicitly")
	assert.False(t, s.Schedule.Enabled)
}

func TestSettings_Validate(t *testing.T) {
	valid := DefaultSettings()
	valid.Identity = "Example Corp admin@example.com"
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Settings)
		want   error
	}{
		{
			name:   "missing identity",
			mutate: func(s *Settings) { s.Identity = "" },
			want:   ErrNoIdentity,
		},
		{
			name:   "whitespace identity",
			mutate: func(s *Settings) { s.Identity = "   " },
			want:   ErrNoIdentity,
		},
		{
			name:   "zero rate limit",
			mutate: func(s *Settings) { s.RateLimit = 0 },
			want:   ErrInvalidInput,
		},
		{
			name:   "zero retries",
			mutate: func(s *Settings) { s.RetryMax = 0 },
			want:   ErrInvalidInput,
		},
		{
			name:   "zero workers",
			mutate: func(s *Settings) { s.Workers = 0 },
			want:   ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := valid
			tc.mutate(&s)
			assert.ErrorIs(t, s.Validate(), tc.want)
		})
	}
}
