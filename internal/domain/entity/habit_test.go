package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Frequency
		wantErr bool
	}{
		{input: "daily", want: FrequencyDaily},
		{input: "weekly", want: FrequencyWeekly},
		{input: "monthly", want: FrequencyMonthly},
		{input: "hourly", wantErr: true},
		{input: "Daily", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFrequency(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserPatch_Empty(t *testing.T) {
	name := "alice"
	assert.True(t, UserPatch{}.Empty())
	assert.False(t, UserPatch{Username: &name}.Empty())
}
