package validate

import (
	"fmt"

	"shop_manager/model"

	"github.com/gofiber/fiber/v2"
)

func AddToCart() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AddToCartInput

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

		// Save input to context locals
		c.Locals("cartInput", &input)

		// Continue to next handler
		return c.Next()
	}
}

func UpdateCartItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateCartItemInput

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

		// Save input to context locals
		c.Locals("cartUpdateInput", &input)

		// Continue to next handler
		return c.Next()
	}
}
