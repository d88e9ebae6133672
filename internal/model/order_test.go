package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivering, OrderStatusDelivered,
		OrderStatusCancelled,
	} {
		assert.True(t, ValidOrderStatus(s), "%s should be known", s)
	}

	assert.False(t, ValidOrderStatus("SHIPPED"))
	assert.False(t, ValidOrderStatus(""))
	assert.False(t, ValidOrderStatus("pending"), "statuses are uppercase")
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusConfirmed, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusReady, OrderStatusDelivering, true},
		{OrderStatusDelivering, OrderStatusDelivered, true},

		// skipping ahead
		{OrderStatusPending, OrderStatusPreparing, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		// moving backward
		{OrderStatusReady, OrderStatusPreparing, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		// self transition
		{OrderStatusPending, OrderStatusPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCancellableFromAnyNonTerminalState(t *testing.T) {
	nonTerminal := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivering,
	}
	for _, s := range nonTerminal {
		assert.True(t, CanTransition(s, OrderStatusCancelled), "%s should be cancellable", s)
	}

	assert.False(t, CanTransition(OrderStatusDelivered, OrderStatusCancelled), "cannot un-deliver")
	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusPending), "cancelled is terminal")
	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusCancelled))
}
