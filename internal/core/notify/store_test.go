package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "info", want: LevelInfo},
		{in: "ERROR", want: LevelError},
		{in: " warning ", want: LevelWarning},
		{in: "warn", want: LevelWarning},
		{in: "debug", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown level")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter(t *testing.T) {
	items := []Notification{
		{ID: 3, Level: LevelError, Message: "Failed to delete record."},
		{ID: 2, Level: LevelInfo, Message: "record 4 saved"},
		{ID: 1, Level: LevelError, Message: "Failed to load data."},
	}

	got := Filter(items, LevelError)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)

	assert.Empty(t, Filter(items, LevelWarning))
	assert.NotNil(t, Filter(nil, LevelInfo))
}
