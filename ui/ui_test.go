package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"10", 10 * time.Minute, true},
		{" 60 ", 60 * time.Minute, true},
		{"02:30", 2*time.Minute + 30*time.Second, true},
		{"0:45", 45 * time.Second, true},
		{"10:00", 10 * time.Minute, true},
		{"", 0, false},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"1:60", 0, false},
		{"1:-1", 0, false},
		{"1:2:3", 0, false},
		{"0:00", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parseDuration(tc.input)
			if tc.ok {
				assert.NoError(t, err)
				assert.Equal(t, tc.want, got)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
