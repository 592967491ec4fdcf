package handler

import (
	"errors"

	"shop_manager/constants"
	"shop_manager/database"
	"shop_manager/model"
	"shop_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// cartAvailableStock: sản phẩm không size dùng tồn kho phẳng, có size thì cộng
// tồn của các size (giỏ hàng chưa chọn size, size chọn lúc đặt đơn)
func cartAvailableStock(db *gorm.DB, product *model.Product) int {
	if product.SizeID == nil {
		return product.StockQuantity
	}

	var total int64
	db.Model(&model.SizeDetail{}).
		Where("size_id = ?", *product.SizeID).
		Select("COALESCE(SUM(stock), 0)").
		Scan(&total)
	return int(total)
}

// GetCartDetail trả về giỏ hàng của khách kèm sản phẩm và tổng số lượng
func GetCartDetail(c *fiber.Ctx) error {
	customerId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing customer id"))
	}

	var cart model.Cart
	if err := database.DB.
		Preload("CartDetails").
		Preload("CartDetails.Product").
		Preload("Customer").
		Where("customer_id = ?", customerId).
		First(&cart).Error; err != nil {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"code": 404, "message": "Không tìm thấy"})
	}

	total := 0
	for _, detail := range cart.CartDetails {
		total += detail.Quantity
	}

	return c.JSON(fiber.Map{
		"code":    200,
		"payload": fiber.Map{"found": cart, "total": total},
	})
}

// AddToCart thêm sản phẩm vào giỏ; mỗi khách một giỏ, tạo mới khi thêm lần đầu.
// Sản phẩm đã có trong giỏ thì cộng dồn số lượng, không vượt tồn kho.
func AddToCart(c *fiber.Ctx) error {
	input, ok := c.Locals("cartInput").(*model.AddToCartInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	db := database.DB

	var customer model.Customer
	if err := db.First(&customer, "id = ? AND is_active IS true", input.CustomerId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CUSTOMER_NOT_FOUND, err)
	}

	var product model.Product
	if err := db.First(&product, "id = ?", input.ProductId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	available := cartAvailableStock(db, &product)
	if input.Quantity > available {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.STOCK_UNAVAILABLE, nil)
	}

	var cart model.Cart
	err := db.Preload("CartDetails").Where("customer_id = ?", input.CustomerId).First(&cart).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		// Chưa có giỏ hàng
		cart = model.Cart{
			CustomerID: input.CustomerId,
			CartDetails: []model.CartDetail{
				{ProductID: input.ProductId, Quantity: input.Quantity},
			},
		}
		if err := db.Create(&cart).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		return c.JSON(fiber.Map{"code": 200, "message": constants.CART_ADDED, "payload": cart})
	}

	// Giỏ hàng đã tồn tại
	var existing *model.CartDetail
	for i := range cart.CartDetails {
		if cart.CartDetails[i].ProductID == input.ProductId {
			existing = &cart.CartDetails[i]
			break
		}
	}

	if existing == nil {
		detail := model.CartDetail{CartID: cart.ID, ProductID: input.ProductId, Quantity: input.Quantity}
		if err := db.Create(&detail).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	} else {
		nextQuantity := existing.Quantity + input.Quantity
		if nextQuantity > available {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.STOCK_UNAVAILABLE, nil)
		}
		if err := db.Model(existing).Update("quantity", nextQuantity).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	db.Preload("CartDetails").First(&cart, "id = ?", cart.ID)
	return c.JSON(fiber.Map{"code": 200, "message": constants.CART_ADDED, "payload": cart})
}

// UpdateCartItem đặt lại số lượng một sản phẩm trong giỏ
func UpdateCartItem(c *fiber.Ctx) error {
	customerId, _ := c.ParamsInt("customerId")
	productId, _ := c.ParamsInt("productId")

	input, ok := c.Locals("cartUpdateInput").(*model.UpdateCartItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	db := database.DB

	var cart model.Cart
	if err := db.Where("customer_id = ?", customerId).First(&cart).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CART_NOT_FOUND, err)
	}

	var detail model.CartDetail
	if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, productId).First(&detail).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CART_PRODUCT_NOT_FOUND, err)
	}

	var product model.Product
	if err := db.First(&product, "id = ?", productId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	if input.Quantity > cartAvailableStock(db, &product) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.STOCK_UNAVAILABLE, nil)
	}

	if err := db.Model(&detail).Update("quantity", input.Quantity).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	db.Preload("CartDetails").First(&cart, "id = ?", cart.ID)
	return c.JSON(fiber.Map{"code": 200, "message": constants.CART_UPDATED, "payload": cart})
}

// RemoveCartItem xóa một sản phẩm khỏi giỏ
func RemoveCartItem(c *fiber.Ctx) error {
	customerId, _ := c.ParamsInt("customerId")
	productId, _ := c.ParamsInt("productId")

	db := database.DB

	var cart model.Cart
	if err := db.Where("customer_id = ?", customerId).First(&cart).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CART_NOT_FOUND, err)
	}

	if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, productId).Delete(&model.CartDetail{}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"code": 200, "message": constants.CART_REMOVED})
}

// ClearCart xóa toàn bộ sản phẩm trong giỏ
func ClearCart(c *fiber.Ctx) error {
	customerId, _ := c.ParamsInt("customerId")

	db := database.DB

	var cart model.Cart
	if err := db.Where("customer_id = ?", customerId).First(&cart).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CART_NOT_FOUND, err)
	}

	if err := db.Where("cart_id = ?", cart.ID).Delete(&model.CartDetail{}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"code": 200, "message": constants.CART_REMOVED})
}
