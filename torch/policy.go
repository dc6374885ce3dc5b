package torch

import (
	"encoding/json"
	"log"
	"time"
)

// ContentReader is the interface for reading embedded application assets.
type ContentReader interface {
	ReadFile(name string) ([]byte, error)
}

// Policy holds the tunable product parameters of the timer core: the
// warning threshold and the defaults offered for a new torch.
type Policy struct {
	// WarningFraction is the remaining fraction of the total burn time at
	// or below which a timer reports AlertWarning.
	WarningFraction float64

	DefaultLabel string
	DefaultTotal time.Duration
}

// DefaultPolicy mirrors the shipped assets/torch_config.json and is used
// when the asset cannot be read or parsed.
func DefaultPolicy() Policy {
	return Policy{
		WarningFraction: 0.1,
		DefaultLabel:    "torch",
		DefaultTotal:    60 * time.Minute,
	}
}

type policyFile struct {
	WarningFraction    float64 `json:"warning_fraction"`
	DefaultLabel       string  `json:"default_label"`
	DefaultDurationMin int     `json:"default_duration_min"`
}

// LoadPolicy reads the policy from assets/torch_config.json. Any problem
// with the asset is logged and the default policy returned; a broken
// config never keeps the app from starting.
func LoadPolicy(reader ContentReader) Policy {
	data, err := reader.ReadFile("assets/torch_config.json")
	if err != nil {
		log.Printf("Failed to read torch config, using defaults: %v", err)
		return DefaultPolicy()
	}

	var f policyFile
	if err := json.Unmarshal(data, &f); err != nil {
		log.Printf("Failed to parse torch config, using defaults: %v", err)
		return DefaultPolicy()
	}

	p := DefaultPolicy()
	if f.WarningFraction > 0 && f.WarningFraction < 1 {
		p.WarningFraction = f.WarningFraction
	}
	if f.DefaultLabel != "" {
		p.DefaultLabel = f.DefaultLabel
	}
	if f.DefaultDurationMin > 0 {
		p.DefaultTotal = time.Duration(f.DefaultDurationMin) * time.Minute
	}
	return p
}
