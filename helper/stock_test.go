package helper

import (
	"testing"

	"shop_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func stockTestDB(t *testing.T) *gorm.DB {
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
	))
	return db
}

func seedPlainProduct(t *testing.T, db *gorm.DB, stock int) model.Product {
	t.Helper()

	product := model.Product{
		ProductName:   "Quần jean slim",
		Code:          "quan-jean-slim",
		Price:         350000,
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedSizedProduct(t *testing.T, db *gorm.DB, stocks map[string]int) model.Product {
	t.Helper()

	size := model.Size{ProductName: "Áo thun basic"}
	for label, stock := range stocks {
		size.Sizes = append(size.Sizes, model.SizeDetail{Size: label, Stock: stock})
	}
	require.NoError(t, db.Create(&size).Error)

	product := model.Product{
		ProductName: "Áo thun basic",
		Code:        "ao-thun-basic",
		Price:       120000,
		SizeID:      &size.ID,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestAdjustStockRoundTrip(t *testing.T) {
	db := stockTestDB(t)
	product := seedPlainProduct(t, db, 10)

	// Đặt hàng: -3
	require.NoError(t, AdjustStock(db, product.ID, 3, StockDecrease, ""))
	stock, err := CurrentStock(db, product.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 7, stock)

	// Hoàn trả: +3, về đúng tồn kho ban đầu
	require.NoError(t, AdjustStock(db, product.ID, 3, StockIncrease, ""))
	stock, err = CurrentStock(db, product.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 10, stock)
}

func TestAdjustStockRoundTripSized(t *testing.T) {
	db := stockTestDB(t)
	product := seedSizedProduct(t, db, map[string]int{"S": 20, "M": 25})

	require.NoError(t, AdjustStock(db, product.ID, 5, StockDecrease, "M"))
	stock, err := CurrentStock(db, product.ID, "M")
	require.NoError(t, err)
	assert.Equal(t, 20, stock)

	// Size khác không bị đụng tới
	stock, err = CurrentStock(db, product.ID, "S")
	require.NoError(t, err)
	assert.Equal(t, 20, stock)

	require.NoError(t, AdjustStock(db, product.ID, 5, StockIncrease, "M"))
	stock, err = CurrentStock(db, product.ID, "M")
	require.NoError(t, err)
	assert.Equal(t, 25, stock)
}

func TestAdjustStockUnavailableNoMutation(t *testing.T) {
	db := stockTestDB(t)
	product := seedPlainProduct(t, db, 2)

	err := AdjustStock(db, product.ID, 3, StockDecrease, "")
	assert.ErrorIs(t, err, ErrStockUnavailable)

	// Từ chối mà không mutate
	stock, err := CurrentStock(db, product.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, stock)
}

func TestAdjustStockUnavailableSizedNoMutation(t *testing.T) {
	db := stockTestDB(t)
	product := seedSizedProduct(t, db, map[string]int{"L": 1})

	err := AdjustStock(db, product.ID, 2, StockDecrease, "L")
	assert.ErrorIs(t, err, ErrStockUnavailable)

	stock, err := CurrentStock(db, product.ID, "L")
	require.NoError(t, err)
	assert.Equal(t, 1, stock)
}

func TestAdjustStockProductNotFound(t *testing.T) {
	db := stockTestDB(t)

	err := AdjustStock(db, 999, 1, StockDecrease, "")
	assert.ErrorIs(t, err, ErrProductNotFound)

	err = AdjustStock(db, 999, 1, StockDecrease, "M")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAdjustStockVariantNotFound(t *testing.T) {
	db := stockTestDB(t)

	// Sản phẩm không có bảng size nhưng yêu cầu size: lỗi cứng, không im lặng bỏ qua
	plain := seedPlainProduct(t, db, 10)
	err := AdjustStock(db, plain.ID, 1, StockDecrease, "M")
	assert.ErrorIs(t, err, ErrVariantNotFound)

	// Có bảng size nhưng sai nhãn
	sized := seedSizedProduct(t, db, map[string]int{"S": 5})
	err = AdjustStock(db, sized.ID, 1, StockDecrease, "XXL")
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestAdjustStockIncreaseHasNoGuard(t *testing.T) {
	db := stockTestDB(t)
	product := seedPlainProduct(t, db, 0)

	// Hoàn trả không bị chặn bởi guard stock >= quantity
	require.NoError(t, AdjustStock(db, product.ID, 4, StockIncrease, ""))
	stock, err := CurrentStock(db, product.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 4, stock)
}
