package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFreeze(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	restore := Freeze(at)
	assert.Equal(t, at, Now())
	assert.Equal(t, time.Duration(0), Since(at))
	restore()
	assert.NotEqual(t, at, Now())
}
