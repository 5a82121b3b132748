package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/brigade/service/messaging"
)

type ticket struct {
	OrderID int
	Items   []string
}

func TestQueue(t *testing.T) {
	queue := NewQueue[ticket](DefaultConfig())
	ctx := context.Background()
	payload := ticket{OrderID: 1, Items: []string{"eggs", "toast"}}

	err := queue.Publish(ctx, &payload)
	require.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	require.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, payload, *message.T())

	assert.NoError(t, message.Ack())
	assert.ErrorIs(t, message.Ack(), ErrAlreadyProcessed)
	assert.ErrorIs(t, message.Nack(nil), ErrAlreadyProcessed)
}

func TestQueue_FIFO(t *testing.T) {
	queue := NewQueue[ticket](DefaultConfig())
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		require.NoError(t, queue.Publish(ctx, &ticket{OrderID: i}))
	}
	for i := 1; i <= 5; i++ {
		message, err := queue.Consume(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, message.T().OrderID)
		assert.NoError(t, message.Ack())
	}
}

func TestQueueNack(t *testing.T) {
	queue := NewQueue[ticket](DefaultConfig())
	ctx := context.Background()
	require.NoError(t, queue.Publish(ctx, &ticket{OrderID: 41}))
	require.NoError(t, queue.Publish(ctx, &ticket{OrderID: 42}))

	first, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, 41, first.T().OrderID)
	assert.NoError(t, first.Nack(fmt.Errorf("burnt")))
	assert.ErrorIs(t, first.Nack(nil), ErrAlreadyProcessed)
	assert.ErrorIs(t, first.Ack(), ErrAlreadyProcessed)

	// redelivered behind the message already queued
	var got []int
	for i := 0; i < 2; i++ {
		message, err := queue.Consume(ctx)
		require.NoError(t, err)
		got = append(got, message.T().OrderID)
		assert.NoError(t, message.Ack())
	}
	assert.Equal(t, []int{42, 41}, got)
}

func TestQueueUnbounded(t *testing.T) {
	var testCases = []struct {
		description string
		buffer      int
		count       int
	}{
		{description: "fits the buffer", buffer: 4, count: 3},
		{description: "spills past the buffer", buffer: 1, count: 50},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			queue := NewQueue[ticket](Config{QueueBuffer: testCase.buffer, Unbounded: true})
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			for i := 1; i <= testCase.count; i++ {
				require.NoError(t, queue.Publish(ctx, &ticket{OrderID: i}))
			}
			assert.Equal(t, testCase.count, queue.Size())
			for i := 1; i <= testCase.count; i++ {
				message, err := queue.Consume(ctx)
				require.NoError(t, err)
				assert.Equal(t, i, message.T().OrderID)
			}
			assert.Equal(t, 0, queue.Size())
			require.NoError(t, queue.Close())
			assert.ErrorIs(t, queue.Publish(ctx, &ticket{OrderID: 99}), messaging.ErrQueueClosed)
		})
	}
}

func TestQueueConcurrency(t *testing.T) {
	queue := NewQueue[ticket](DefaultConfig())
	ctx := context.Background()
	producers := 10
	perProducer := 10

	var wg sync.WaitGroup
	var consumed int
	var consumedMu sync.Mutex

	wg.Add(producers * 2)
	for i := 0; i < producers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				message, err := queue.Consume(ctx)
				if !assert.NoError(t, err) {
					return
				}
				assert.NoError(t, message.Ack())
				consumedMu.Lock()
				consumed++
				consumedMu.Unlock()
			}
		}()
	}
	for i := 0; i < producers; i++ {
		go func(producerID int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				assert.NoError(t, queue.Publish(ctx, &ticket{OrderID: producerID*100 + j}))
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("test timed out")
	}
	assert.Equal(t, producers*perProducer, consumed)
	assert.Equal(t, 0, queue.Size())
}

func TestQueueContextCancellation(t *testing.T) {
	queue := NewQueue[ticket](DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, queue.Publish(ctx, &ticket{OrderID: 1}), context.Canceled)

	timeoutCtx, cancelTimeout := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelTimeout()
	_, err := queue.Consume(timeoutCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// still usable afterwards
	require.NoError(t, queue.Publish(context.Background(), &ticket{OrderID: 2}))
	message, err := queue.Consume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, message.T().OrderID)
}

func TestQueueClose(t *testing.T) {
	config := DefaultConfig()
	config.QueueBuffer = 1
	queue := NewQueue[ticket](config)
	ctx := context.Background()
	require.NoError(t, queue.Publish(ctx, &ticket{OrderID: 1}))

	blocked := make(chan error, 1)
	go func() { blocked <- queue.Publish(ctx, &ticket{OrderID: 2}) }()

	consumer := make(chan error, 1)
	go func() {
		// drain the buffered message, then wait for close
		if _, err := queue.Consume(ctx); err != nil {
			consumer <- err
			return
		}
		_, err := queue.Consume(ctx)
		consumer <- err
	}()

	time.Sleep(20 * time.Millisecond)
	assert.NoError(t, queue.Close())
	assert.NoError(t, queue.Close())
	assert.True(t, queue.Closed())

	select {
	case err := <-consumer:
		// the blocked publisher may have slipped its message in before close
		if err != nil {
			assert.ErrorIs(t, err, messaging.ErrQueueClosed)
		}
	case <-time.After(time.Second):
		t.Fatal("consumer not released by close")
	}
	select {
	case err := <-blocked:
		if err != nil {
			assert.ErrorIs(t, err, messaging.ErrQueueClosed)
		}
	case <-time.After(time.Second):
		t.Fatal("publisher not released by close")
	}
	assert.ErrorIs(t, queue.Publish(ctx, &ticket{OrderID: 3}), messaging.ErrQueueClosed)
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, messaging.ErrQueueClosed)
}
