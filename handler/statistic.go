package handler

import (
	"shop_manager/constants"
	"shop_manager/database"
	"shop_manager/model"
	"shop_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// CalculateMonthlyRevenue gom doanh thu theo năm/tháng từ các đơn COMPLETED.
// Doanh thu mỗi đơn = Σ price*(100-discount)/100*quantity trên orderDetails (snapshot).
// Mọi năm xuất hiện đều có đủ 12 tháng, tháng không có doanh số mặc định 0.
func CalculateMonthlyRevenue(orders []model.Order) map[int]map[int]float64 {
	monthlyRevenue := map[int]map[int]float64{}

	for _, order := range orders {
		if order.Status != model.OrderStatusCompleted {
			continue
		}

		year := order.CreatedAt.Year()
		month := int(order.CreatedAt.Month())

		revenue := float64(0)
		for _, detail := range order.OrderDetails {
			revenue += detail.Price * (100 - detail.Discount) / 100 * float64(detail.Quantity)
		}

		if monthlyRevenue[year] == nil {
			monthlyRevenue[year] = map[int]float64{}
		}
		monthlyRevenue[year][month] += revenue
	}

	// Đảm bảo các tháng không có doanh số cũng xuất hiện
	for year := range monthlyRevenue {
		for month := 1; month <= 12; month++ {
			if _, ok := monthlyRevenue[year][month]; !ok {
				monthlyRevenue[year][month] = 0
			}
		}
	}

	return monthlyRevenue
}

func GetMonthlyRevenue(c *fiber.Ctx) error {
	var orders []model.Order
	if err := database.DB.
		Preload("OrderDetails").
		Where("status = ?", model.OrderStatusCompleted).
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusOK).JSON(CalculateMonthlyRevenue(orders))
}

// GetOrderStatusCounts đếm số đơn theo trạng thái
func GetOrderStatusCounts(c *fiber.Ctx) error {
	type statusCount struct {
		Status string
		Count  int64
	}

	var counts []statusCount
	if err := database.DB.Model(&model.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	formatted := fiber.Map{}
	for _, item := range counts {
		formatted[item.Status] = item.Count
	}

	return c.JSON(formatted)
}
