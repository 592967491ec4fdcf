package handler

import (
	"testing"
	"time"

	"shop_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderAt(year int, month time.Month, status string, details ...model.OrderDetail) model.Order {
	order := model.Order{
		Status:       status,
		OrderDetails: details,
	}
	order.CreatedAt = time.Date(year, month, 15, 10, 0, 0, 0, time.UTC)
	return order
}

func TestCalculateMonthlyRevenueEmpty(t *testing.T) {
	result := CalculateMonthlyRevenue(nil)
	assert.Empty(t, result)
}

func TestCalculateMonthlyRevenueOnlyCompleted(t *testing.T) {
	orders := []model.Order{
		orderAt(2025, time.March, model.OrderStatusCompleted,
			model.OrderDetail{Price: 100, Discount: 10, Quantity: 2}),
		orderAt(2025, time.March, model.OrderStatusWaiting,
			model.OrderDetail{Price: 500, Quantity: 1}),
		orderAt(2025, time.March, model.OrderStatusCanceled,
			model.OrderDetail{Price: 500, Quantity: 1}),
	}

	result := CalculateMonthlyRevenue(orders)
	require.Contains(t, result, 2025)

	// 100 * 90% * 2 = 180, đơn WAITING/CANCELED không tính
	assert.Equal(t, float64(180), result[2025][3])
}

func TestCalculateMonthlyRevenueFillsAllMonths(t *testing.T) {
	orders := []model.Order{
		orderAt(2025, time.June, model.OrderStatusCompleted,
			model.OrderDetail{Price: 50, Quantity: 1}),
	}

	result := CalculateMonthlyRevenue(orders)
	require.Contains(t, result, 2025)
	assert.Len(t, result[2025], 12)

	for month := 1; month <= 12; month++ {
		if month == 6 {
			assert.Equal(t, float64(50), result[2025][month])
		} else {
			assert.Zero(t, result[2025][month])
		}
	}
}

func TestCalculateMonthlyRevenueMultipleYears(t *testing.T) {
	orders := []model.Order{
		orderAt(2024, time.December, model.OrderStatusCompleted,
			model.OrderDetail{Price: 200, Quantity: 1}),
		orderAt(2025, time.January, model.OrderStatusCompleted,
			model.OrderDetail{Price: 300, Quantity: 2}),
		orderAt(2025, time.January, model.OrderStatusCompleted,
			model.OrderDetail{Price: 100, Discount: 50, Quantity: 1}),
	}

	result := CalculateMonthlyRevenue(orders)
	require.Len(t, result, 2)
	assert.Equal(t, float64(200), result[2024][12])
	assert.Equal(t, float64(650), result[2025][1]) // 600 + 50
}
