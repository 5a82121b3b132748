package backend

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	testCases := []struct {
		input  string
		expect Kind
		hasErr bool
	}{
		{input: "parallel", expect: KindParallel},
		{input: " Timer ", expect: KindTimer},
		{input: "worker", hasErr: true},
		{input: "", hasErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			kind, err := ParseKind(testCase.input)
			if testCase.hasErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, kind)
		})
	}
}

func TestTiming_Duration(t *testing.T) {
	fixed := Timing{PerItem: 10 * time.Millisecond}
	assert.Equal(t, 30*time.Millisecond, fixed.Duration(3))

	jittered := DefaultTiming()
	for i := 0; i < 100; i++ {
		d := jittered.Duration(2)
		assert.GreaterOrEqual(t, d, 6*time.Second)
		assert.Less(t, d, 8*time.Second)
	}
}

func TestHandle_ReleaseOnce(t *testing.T) {
	calls := 0
	h := NewHandle(func() { calls++ })
	assert.False(t, h.Released())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Release()
		}()
	}
	wg.Wait()
	assert.True(t, h.Released())
	assert.Equal(t, 1, calls)
}
