package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrderStatus(t *testing.T) {
	// WAITING có thể đi mọi hướng
	assert.True(t, CanTransitionOrderStatus(OrderStatusWaiting, OrderStatusApproved))
	assert.True(t, CanTransitionOrderStatus(OrderStatusWaiting, OrderStatusCompleted))
	assert.True(t, CanTransitionOrderStatus(OrderStatusWaiting, OrderStatusCanceled))

	// APPROVED chỉ tiến tới COMPLETED/CANCELED
	assert.True(t, CanTransitionOrderStatus(OrderStatusApproved, OrderStatusCompleted))
	assert.True(t, CanTransitionOrderStatus(OrderStatusApproved, OrderStatusCanceled))
	assert.False(t, CanTransitionOrderStatus(OrderStatusApproved, OrderStatusWaiting))

	// COMPLETED/CANCELED là trạng thái cuối
	assert.False(t, CanTransitionOrderStatus(OrderStatusCompleted, OrderStatusCanceled))
	assert.False(t, CanTransitionOrderStatus(OrderStatusCompleted, OrderStatusWaiting))
	assert.False(t, CanTransitionOrderStatus(OrderStatusCanceled, OrderStatusApproved))

	// Giữ nguyên trạng thái luôn hợp lệ
	assert.True(t, CanTransitionOrderStatus(OrderStatusCompleted, OrderStatusCompleted))
	assert.True(t, CanTransitionOrderStatus(OrderStatusCanceled, OrderStatusCanceled))
}

func TestIsValidOrderStatus(t *testing.T) {
	assert.True(t, IsValidOrderStatus(OrderStatusWaiting))
	assert.True(t, IsValidOrderStatus(OrderStatusCompleted))
	assert.False(t, IsValidOrderStatus("SHIPPED"))
	assert.False(t, IsValidOrderStatus(""))
	assert.False(t, IsValidOrderStatus("completed"))
}

func TestNormalizePaymentType(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"CASH", PaymentTypeCash, true},
		{"cash", PaymentTypeCash, true},
		{" vnpay ", PaymentTypeVNPay, true},
		{"credit card", PaymentTypeCreditCard, true},
		{"BITCOIN", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizePaymentType(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestOrderTotalAmount(t *testing.T) {
	order := Order{
		OrderDetails: []OrderDetail{
			{Price: 100, Discount: 10, Quantity: 2}, // 180
			{Price: 50, Quantity: 3},                // 150
			{Price: 200, Discount: 75, Quantity: 1}, // 50
		},
	}

	assert.Equal(t, float64(380), order.TotalAmount())
}

func TestOrderTotalAmountEmpty(t *testing.T) {
	order := Order{}
	assert.Zero(t, order.TotalAmount())
}
