package backend

import (
	"math/rand"
	"time"
)

const (
	DefaultPerItem = 3 * time.Second
	DefaultJitter  = 2 * time.Second
)

// Timing controls simulated cook duration: items*PerItem + uniform[0, Jitter).
type Timing struct {
	PerItem time.Duration `yaml:"perItem" json:"perItem"`
	Jitter  time.Duration `yaml:"jitter" json:"jitter"`
}

// DefaultTiming returns the production timing
func DefaultTiming() Timing {
	return Timing{PerItem: DefaultPerItem, Jitter: DefaultJitter}
}

// Duration returns the cook time for the given number of items
func (t Timing) Duration(items int) time.Duration {
	d := time.Duration(items) * t.PerItem
	if t.Jitter > 0 {
		d += time.Duration(rand.Int63n(int64(t.Jitter)))
	}
	return d
}
