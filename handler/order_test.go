package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"shop_manager/constants"
	"shop_manager/database"
	"shop_manager/model"
	"shop_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func orderTestSetup(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Size{},
		&model.SizeDetail{},
		&model.Product{},
		&model.Customer{},
		&model.Employee{},
		&model.Order{},
		&model.OrderDetail{},
	))

	database.DB = db

	app := fiber.New()
	app.Patch("/order/:orderId", validate.GetById("orderId"), validate.UpdateOrder(), UpdateOrder)
	app.Patch("/order/return-stock/:orderId", validate.GetById("orderId"), ReturnStock)
	return app
}

func seedOrderWithStock(t *testing.T, stock, quantity int) (model.Product, model.Order) {
	t.Helper()

	product := model.Product{
		ProductName:   "Quần jean slim",
		Code:          "quan-jean-slim",
		Price:         350000,
		StockQuantity: stock,
	}
	require.NoError(t, database.DB.Create(&product).Error)

	order := model.Order{
		PublicCode:      "ORD-TEST0001",
		Email:           "khach@example.com",
		ShippingAddress: "12 Nguyễn Huệ, Q1",
		PaymentType:     model.PaymentTypeCash,
		Status:          model.OrderStatusWaiting,
		OrderDetails: []model.OrderDetail{
			{
				ProductID:   product.ID,
				ProductName: product.ProductName,
				Quantity:    quantity,
				Price:       product.Price,
			},
		},
	}
	require.NoError(t, database.DB.Create(&order).Error)
	return product, order
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, fiber.Map) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result fiber.Map
	require.NoError(t, json.Unmarshal(raw, &result))
	return resp.StatusCode, result
}

func productStock(t *testing.T, productId uint) int {
	t.Helper()

	var product model.Product
	require.NoError(t, database.DB.First(&product, "id = ?", productId).Error)
	return product.StockQuantity
}

func TestReturnStockIdempotent(t *testing.T) {
	app := orderTestSetup(t)
	product, order := seedOrderWithStock(t, 5, 3)

	path := "/order/return-stock/" + itoa(order.ID)

	// Lần đầu: cộng kho đúng một lần
	status, result := doJSON(t, app, http.MethodPatch, path, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, constants.ORDER_STOCK_RESTORED, result["message"])
	assert.Equal(t, 8, productStock(t, product.ID))

	// Gọi lại: cờ stock_returned đã persist, không cộng kho lần hai
	status, result = doJSON(t, app, http.MethodPatch, path, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, constants.ORDER_STOCK_RETURNED, result["message"])
	assert.Equal(t, 8, productStock(t, product.ID))
}

func TestReturnStockGuardWhenFlagFlippedConcurrently(t *testing.T) {
	app := orderTestSetup(t)
	product, order := seedOrderWithStock(t, 5, 3)

	// Một request khác đã lật cờ sau pre-read nhưng trước transaction:
	// conditional update phải thấy RowsAffected=0 và bỏ qua cộng kho
	require.NoError(t, database.DB.Model(&model.Order{}).
		Where("id = ?", order.ID).
		Update("stock_returned", true).Error)

	status, result := doJSON(t, app, http.MethodPatch, "/order/return-stock/"+itoa(order.ID), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, constants.ORDER_STOCK_RETURNED, result["message"])
	assert.Equal(t, 5, productStock(t, product.ID))
}

func TestCancelThenReturnStockRestoresOnce(t *testing.T) {
	app := orderTestSetup(t)
	product, order := seedOrderWithStock(t, 5, 3)

	// Hủy đơn: hoàn kho và lật cờ trong cùng transaction
	status, _ := doJSON(t, app, http.MethodPatch, "/order/"+itoa(order.ID), `{"status":"CANCELED"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 8, productStock(t, product.ID))

	var reloaded model.Order
	require.NoError(t, database.DB.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, model.OrderStatusCanceled, reloaded.Status)
	assert.True(t, reloaded.StockReturned)

	// Hoàn kho sau khi đã hủy: không cộng thêm
	status, result := doJSON(t, app, http.MethodPatch, "/order/return-stock/"+itoa(order.ID), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, constants.ORDER_STOCK_RETURNED, result["message"])
	assert.Equal(t, 8, productStock(t, product.ID))
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
