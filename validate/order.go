package validate

import (
	"fmt"
	"time"

	"shop_manager/constants"
	"shop_manager/model"
	"shop_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateOrderInput

		// Parse JSON từ request body vào struct
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		// Validate input
		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if !utils.IsValidEmail(input.Email) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": constants.INVALID_EMAIL,
				"field": "emailOrder",
			})
		}
		if input.PhoneNumber != "" && !utils.IsValidPhone(input.PhoneNumber) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Số điện thoại không hợp lệ",
				"field": "phoneNumberOrder",
			})
		}

		// Hình thức thanh toán: chấp nhận hoa/thường, rỗng thì mặc định CASH
		if input.PaymentType != "" {
			normalized, ok := model.NormalizePaymentType(input.PaymentType)
			if !ok {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": constants.ORDER_INVALID_PAYMENT,
					"field": "paymentType",
				})
			}
			input.PaymentType = normalized
		}

		if input.Status != "" && !model.IsValidOrderStatus(input.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": constants.ORDER_INVALID_STATUS,
				"field": "status",
			})
		}

		// Ngày giao dự kiến không được ở quá khứ
		if input.ShippedDate != nil && input.ShippedDate.Before(time.Now()) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": constants.ORDER_INVALID_SHIPPED,
				"field": "shippedDate",
			})
		}

		// Save input to context locals
		c.Locals("orderInput", &input)

		// Continue to next handler
		return c.Next()
	}
}

func UpdateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateOrderInput

		// Parse JSON từ request body vào struct
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		// Validate input
		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if input.Status != nil && !model.IsValidOrderStatus(*input.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": constants.ORDER_INVALID_STATUS,
				"field": "status",
			})
		}

		// Save input to context locals
		c.Locals("orderUpdateInput", &input)

		// Continue to next handler
		return c.Next()
	}
}
