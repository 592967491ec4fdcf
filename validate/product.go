package validate

import (
	"fmt"

	"shop_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateProduct() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateProductInput

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

		// Size không được trùng nhãn
		seen := map[string]bool{}
		for _, detail := range input.Sizes {
			if seen[detail.Size] {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": fmt.Sprintf("Size %s bị lặp lại", detail.Size),
					"field": "sizes",
				})
			}
			seen[detail.Size] = true
		}

		// Save input to context locals
		c.Locals("productInput", &input)

		// Continue to next handler
		return c.Next()
	}
}

func UpdateProduct() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateProductInput

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
		c.Locals("productUpdateInput", &input)

		// Continue to next handler
		return c.Next()
	}
}
