package helper

import (
	"errors"

	"shop_manager/model"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("size variant not found")
	ErrStockUnavailable = errors.New("stock unavailable")
)

// Dấu điều chỉnh tồn kho
const (
	StockDecrease = -1 // đặt hàng
	StockIncrease = 1  // hủy đơn / hoàn trả
)

// AdjustStock điều chỉnh tồn kho cho một dòng đơn hàng, chạy trong transaction của caller.
// Không size: tăng/giảm trực tiếp trên products.stock_quantity bằng một UPDATE nguyên tử.
// Có size: tăng/giảm trên đúng dòng size_details của Size mà sản phẩm tham chiếu.
// Giảm tồn kho được guard bằng điều kiện stock >= quantity ngay trong UPDATE,
// tránh race read-modify-write khi hai đơn cùng đặt một sản phẩm.
func AdjustStock(tx *gorm.DB, productId uint, quantity int, sign int, sizeLabel string) error {
	if quantity <= 0 {
		return nil
	}

	if sizeLabel == "" {
		query := tx.Model(&model.Product{}).Where("id = ?", productId)
		if sign < 0 {
			query = query.Where("stock_quantity >= ?", quantity)
		}
		result := query.UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", sign*quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Product{}).Where("id = ?", productId).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrProductNotFound
			}
			return ErrStockUnavailable
		}
		return nil
	}

	var product model.Product
	if err := tx.First(&product, "id = ?", productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if product.SizeID == nil {
		return ErrVariantNotFound
	}

	query := tx.Model(&model.SizeDetail{}).Where("size_id = ? AND size = ?", *product.SizeID, sizeLabel)
	if sign < 0 {
		query = query.Where("stock >= ?", quantity)
	}
	result := query.UpdateColumn("stock", gorm.Expr("stock + ?", sign*quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&model.SizeDetail{}).Where("size_id = ? AND size = ?", *product.SizeID, sizeLabel).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrVariantNotFound
		}
		return ErrStockUnavailable
	}
	return nil
}

// CurrentStock đọc tồn kho hiện tại của sản phẩm (hoặc của một size) để broadcast
func CurrentStock(db *gorm.DB, productId uint, sizeLabel string) (int, error) {
	var product model.Product
	if err := db.First(&product, "id = ?", productId).Error; err != nil {
		return 0, err
	}

	if sizeLabel == "" || product.SizeID == nil {
		return product.StockQuantity, nil
	}

	var detail model.SizeDetail
	if err := db.Where("size_id = ? AND size = ?", *product.SizeID, sizeLabel).First(&detail).Error; err != nil {
		return 0, err
	}
	return detail.Stock, nil
}
