package workflow

import (
	"testing"
	"time"

	"translation-tracker/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeadline(t *testing.T) {
	d, err := ParseDeadline(" 2099-03-01 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2099, 3, 1, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2099-13-01", "01.03.2099", "2099-3-1"} {
		_, err := ParseDeadline(bad)
		assert.ErrorIs(t, err, apperr.ErrValidation, bad)
	}
}

func TestFutureDeadline(t *testing.T) {
	e := New(nil, nil, nil).WithClock(func() time.Time { return testNow })

	tests := []struct {
		wantErr error
		date    string
	}{
		{date: "2025-06-02"},
		{date: "2099-01-01"},
		{date: "2025-06-01", wantErr: apperr.ErrInvalidDeadline}, // midnight today is already past
		{date: "2020-01-01", wantErr: apperr.ErrInvalidDeadline},
		{date: "tomorrow", wantErr: apperr.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			_, err := e.futureDeadline(tt.date)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
