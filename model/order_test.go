package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseItems(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []string
	}{
		{name: "two items", input: "eggs, toast", expect: []string{"eggs", "toast"}},
		{name: "single", input: "  soup ", expect: []string{"soup"}},
		{name: "empty", input: "", expect: nil},
		{name: "whitespace", input: "   ", expect: nil},
		{name: "only commas", input: " , ,, ", expect: nil},
		{name: "empty fragment dropped", input: "eggs, , toast,", expect: []string{"eggs", "toast"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ParseItems(tc.input))
		})
	}
}

func TestOrder_Lifecycle(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	order := NewOrder(1, []string{"eggs", "toast"}, at)
	assert.Equal(t, StatusWaiting, order.Status)
	assert.Equal(t, 0, order.Chef)

	order.Start(2, at)
	assert.Equal(t, StatusCooking, order.Status)
	assert.Equal(t, 2, order.Chef)
	assert.Equal(t, 1, order.Attempts)

	order.Requeue()
	assert.Equal(t, StatusWaiting, order.Status)
	assert.Equal(t, 0, order.Chef)

	order.Start(1, at)
	assert.Equal(t, 2, order.Attempts)
	order.Complete(at)
	assert.Equal(t, StatusCompleted, order.Status)
	assert.Equal(t, 0, order.Chef)
	assert.NotNil(t, order.FinishedAt)
	assert.Equal(t, "#1: eggs, toast", order.Label())
}

func TestOrder_Clone(t *testing.T) {
	at := time.Now()
	order := NewOrder(7, []string{"tea"}, at)
	order.Start(1, at)
	clone := order.Clone()
	clone.Items[0] = "coffee"
	*clone.StartedAt = at.Add(time.Hour)
	assert.Equal(t, "tea", order.Items[0])
	assert.Equal(t, at, *order.StartedAt)
	assert.Nil(t, (*Order)(nil).Clone())
}

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		from, to Status
		expect   bool
	}{
		{StatusWaiting, StatusCooking, true},
		{StatusWaiting, StatusCancelled, true},
		{StatusWaiting, StatusCompleted, false},
		{StatusCooking, StatusCompleted, true},
		{StatusCooking, StatusCancelled, true},
		{StatusCooking, StatusWaiting, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusCancelled, false},
		{Status("burnt"), StatusWaiting, false},
	}
	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.expect, CanTransition(tc.from, tc.to))
		})
	}
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusCooking.IsTerminal())
	assert.True(t, SourceCooking.IsValid())
	assert.False(t, Source("order").IsValid())
}

func TestSnapshot_Lookup(t *testing.T) {
	snap := &Snapshot{
		Waiting:   []*Order{{ID: 3, Status: StatusWaiting}},
		Cooking:   []*Order{{ID: 2, Status: StatusCooking, Chef: 1}},
		Completed: []*Order{{ID: 1, Status: StatusCompleted}},
		Chefs:     []*Chef{{ID: 1, OrderID: 2}, {ID: 2, Idle: true}},
	}
	order, status, ok := snap.Lookup(2)
	assert.True(t, ok)
	assert.Equal(t, StatusCooking, status)
	assert.Equal(t, 1, order.Chef)
	_, _, ok = snap.Lookup(9)
	assert.False(t, ok)
	assert.Equal(t, 1, snap.IdleChefs())
	assert.Equal(t, 2, snap.Chef(1).OrderID)
	assert.Nil(t, snap.Chef(5))
}
