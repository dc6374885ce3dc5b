package torch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeReader struct {
	data map[string][]byte
}

func (f fakeReader) ReadFile(name string) ([]byte, error) {
	if data, ok := f.data[name]; ok {
		return data, nil
	}
	return nil, errors.New("not found")
}

func TestLoadPolicy(t *testing.T) {
	reader := fakeReader{data: map[string][]byte{
		"assets/torch_config.json": []byte(`{
			"warning_fraction": 0.25,
			"default_label": "candle",
			"default_duration_min": 15
		}`),
	}}

	p := LoadPolicy(reader)
	assert.Equal(t, 0.25, p.WarningFraction)
	assert.Equal(t, "candle", p.DefaultLabel)
	assert.Equal(t, 15*time.Minute, p.DefaultTotal)
}

func TestLoadPolicyFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name   string
		reader fakeReader
	}{
		{"missing asset", fakeReader{}},
		{"garbage", fakeReader{data: map[string][]byte{
			"assets/torch_config.json": []byte("not json"),
		}}},
		{"out of range values", fakeReader{data: map[string][]byte{
			"assets/torch_config.json": []byte(`{"warning_fraction":3.0,"default_label":"","default_duration_min":-5}`),
		}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, DefaultPolicy(), LoadPolicy(tc.reader))
		})
	}
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "10:00", FormatRemaining(10*time.Minute))
	assert.Equal(t, "00:59", FormatRemaining(59*time.Second))
	assert.Equal(t, "00:01", FormatRemaining(300*time.Millisecond), "partial seconds round up")
	assert.Equal(t, "00:00", FormatRemaining(0))
	assert.Equal(t, "00:00", FormatRemaining(-time.Second))
}
