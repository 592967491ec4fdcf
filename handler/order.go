package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shop_manager/constants"
	"shop_manager/database"
	"shop_manager/helper"
	"shop_manager/model"
	"shop_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func stockErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, helper.ErrProductNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	case errors.Is(err, helper.ErrVariantNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VARIANT_NOT_FOUND, err)
	case errors.Is(err, helper.ErrStockUnavailable):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.STOCK_UNAVAILABLE, err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
}

// GetOrders trả về toàn bộ đơn hàng. Giá trong orderDetails là snapshot tại thời
// điểm đặt, không đọc lại giá hiện tại của catalog.
func GetOrders(c *fiber.Ctx) error {
	var orders []model.Order
	if err := database.DB.
		Preload("OrderDetails").
		Preload("Customer").
		Preload("Employee").
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(orders)
}

// GetOrdersByCustomer: không có đơn không phải lỗi, trả ok=false kèm message
func GetOrdersByCustomer(c *fiber.Ctx) error {
	customerId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing customer id"))
	}

	var orders []model.Order
	if err := database.DB.
		Preload("OrderDetails").
		Preload("Customer").
		Where("customer_id = ?", customerId).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if len(orders) > 0 {
		return c.JSON(fiber.Map{"ok": true, "results": orders})
	}

	return c.JSON(fiber.Map{"ok": false, "message": constants.NO_ORDERS_FOR_CUSTOMER})
}

// CreateOrder tạo đơn hàng và trừ tồn kho cho từng dòng trong MỘT transaction:
// một dòng lỗi (hết hàng, sai size) thì toàn bộ đơn rollback, tồn kho không đổi.
func CreateOrder(c *fiber.Ctx) error {
	input, ok := c.Locals("orderInput").(*model.CreateOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	paymentType := model.PaymentTypeCash
	if input.PaymentType != "" {
		paymentType, _ = model.NormalizePaymentType(input.PaymentType)
	}
	status := model.OrderStatusWaiting
	if input.Status != "" {
		status = input.Status
	}

	order := model.Order{
		PublicCode:      fmt.Sprintf("ORD-%s", strings.ToUpper(strings.Split(uuid.NewString(), "-")[0])),
		Description:     input.Description,
		CreatedDate:     time.Now(),
		ShippedDate:     input.ShippedDate,
		Email:           input.Email,
		PhoneNumber:     input.PhoneNumber,
		PaymentType:     paymentType,
		Status:          status,
		ShippingAddress: input.ShippingAddress,
		CustomerID:      input.CustomerId,
		EmployeeID:      input.EmployeeId,
	}

	var stockErr error
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, detailInput := range input.OrderDetails {
			var product model.Product
			if err := tx.First(&product, "id = ?", detailInput.ProductId).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					stockErr = helper.ErrProductNotFound
					return stockErr
				}
				return err
			}

			// Snapshot giá/tên/ảnh tại thời điểm đặt; giảm giá dòng đơn tối đa 75%
			discount := product.Discount
			if discount > 75 {
				discount = 75
			}

			detail := model.OrderDetail{
				ProductID:   product.ID,
				ProductName: product.ProductName,
				ImageUrl:    product.ImageUrl,
				Quantity:    detailInput.Quantity,
				Price:       product.Price,
				Discount:    discount,
				Size:        detailInput.Size,
				SizeID:      product.SizeID,
			}
			if stock, err := helper.CurrentStock(tx, product.ID, detailInput.Size); err == nil {
				detail.Stock = utils.Ptr(stock)
			}
			order.OrderDetails = append(order.OrderDetails, detail)
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, detail := range order.OrderDetails {
			if err := helper.AdjustStock(tx, detail.ProductID, detail.Quantity, helper.StockDecrease, detail.Size); err != nil {
				stockErr = err
				return err
			}
		}
		return nil
	})

	if err != nil {
		if stockErr != nil {
			return stockErrorResponse(c, stockErr)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	for _, detail := range order.OrderDetails {
		BroadcastProductStock(detail.ProductID)
	}

	items := make([]utils.OrderConfirmationItem, 0, len(order.OrderDetails))
	for _, detail := range order.OrderDetails {
		items = append(items, utils.OrderConfirmationItem{
			ProductName: detail.ProductName,
			Size:        detail.Size,
			Quantity:    detail.Quantity,
			Price:       detail.Price,
			Discount:    detail.Discount,
		})
	}
	utils.SendOrderConfirmationEmail(order.Email, utils.OrderConfirmationData{
		OrderCode:       order.PublicCode,
		CustomerName:    order.Email,
		ShippingAddress: order.ShippingAddress,
		PaymentType:     order.PaymentType,
		TotalAmount:     order.TotalAmount(),
		Items:           items,
	})

	return c.JSON(order)
}

// UpdateOrder cập nhật từng phần. Chuyển trạng thái đi qua máy trạng thái;
// chuyển sang CANCELED sẽ hoàn trả tồn kho đúng một lần (guard bằng stock_returned).
func UpdateOrder(c *fiber.Ctx) error {
	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing order id"))
	}
	input, ok := c.Locals("orderUpdateInput").(*model.UpdateOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	db := database.DB

	var order model.Order
	if err := db.Preload("OrderDetails").First(&order, "id = ?", orderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	updates := map[string]interface{}{}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ShippingAddress != nil {
		updates["shipping_address"] = *input.ShippingAddress
	}
	if input.EmployeeId != nil {
		updates["employee_id"] = *input.EmployeeId
	}
	if input.ShippedDate != nil {
		if input.ShippedDate.Before(order.CreatedDate) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ORDER_INVALID_SHIPPED, nil)
		}
		updates["shipped_date"] = *input.ShippedDate
	}

	cancel := false
	if input.Status != nil {
		newStatus := *input.Status
		if !model.IsValidOrderStatus(newStatus) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ORDER_INVALID_STATUS, nil)
		}
		if !model.CanTransitionOrderStatus(order.Status, newStatus) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ORDER_INVALID_TRANSITION,
				fmt.Errorf("%s -> %s", order.Status, newStatus))
		}
		updates["status"] = newStatus
		cancel = newStatus == model.OrderStatusCanceled && order.Status != model.OrderStatusCanceled
	}

	var stockErr error
	err := db.Transaction(func(tx *gorm.DB) error {
		if cancel {
			// Lật cờ stock_returned bằng conditional update trước khi cộng kho:
			// hai request hủy/hoàn kho chạy song song thì chỉ một bên thắng row
			// lock, bên kia thấy RowsAffected=0 và không cộng kho lần hai
			flip := tx.Model(&model.Order{}).
				Where("id = ? AND stock_returned = ?", order.ID, false).
				Update("stock_returned", true)
			if flip.Error != nil {
				return flip.Error
			}
			if flip.RowsAffected == 1 {
				for _, detail := range order.OrderDetails {
					if err := helper.AdjustStock(tx, detail.ProductID, detail.Quantity, helper.StockIncrease, detail.Size); err != nil {
						stockErr = err
						return err
					}
				}
			}
		}
		return tx.Model(&order).Updates(updates).Error
	})
	if err != nil {
		if stockErr != nil {
			return stockErrorResponse(c, stockErr)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if cancel {
		for _, detail := range order.OrderDetails {
			BroadcastProductStock(detail.ProductID)
		}
	}

	return c.JSON(fiber.Map{"ok": true, "message": "Updated"})
}

// DeleteOrder xóa đơn hàng, KHÔNG hoàn trả tồn kho (hoàn trả là nghiệp vụ hủy đơn)
func DeleteOrder(c *fiber.Ctx) error {
	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing order id"))
	}

	db := database.DB

	var order model.Order
	if err := db.Preload("OrderDetails").First(&order, "id = ?", orderId).Error; err != nil {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"ok": false, "message": "Object not found"})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&model.OrderDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"ok": true, "result": order})
}

// ReturnStock hoàn trả tồn kho cho đơn bị hủy. Idempotent: gọi lần hai không
// cộng kho thêm lần nữa nhờ cờ stock_returned đã persist.
func ReturnStock(c *fiber.Ctx) error {
	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing order id"))
	}

	db := database.DB

	var order model.Order
	if err := db.Preload("OrderDetails").First(&order, "id = ?", orderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	if order.StockReturned {
		return c.JSON(fiber.Map{"ok": true, "message": constants.ORDER_STOCK_RETURNED})
	}

	alreadyReturned := false
	var stockErr error
	err := db.Transaction(func(tx *gorm.DB) error {
		// Conditional update là guard thật sự: pre-read ở trên chỉ là fast path,
		// hai request song song cùng qua được pre-read nhưng chỉ một bên lật
		// được cờ và cộng kho
		flip := tx.Model(&model.Order{}).
			Where("id = ? AND stock_returned = ?", order.ID, false).
			Update("stock_returned", true)
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			alreadyReturned = true
			return nil
		}
		for _, detail := range order.OrderDetails {
			if err := helper.AdjustStock(tx, detail.ProductID, detail.Quantity, helper.StockIncrease, detail.Size); err != nil {
				stockErr = err
				return err
			}
		}
		return nil
	})
	if err != nil {
		if stockErr != nil {
			return stockErrorResponse(c, stockErr)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if alreadyReturned {
		return c.JSON(fiber.Map{"ok": true, "message": constants.ORDER_STOCK_RETURNED})
	}

	for _, detail := range order.OrderDetails {
		BroadcastProductStock(detail.ProductID)
	}

	return c.JSON(fiber.Map{"ok": true, "message": constants.ORDER_STOCK_RESTORED})
}
