package database

import (
	"errors"
	"log"

	"shop_manager/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456cn"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456cn"
	}

	employees := []model.Employee{
		{FirstName: "Quản", LastName: "Trị", Email: "admin@webshop.vn", Password: HashPassword, IsAdmin: true},
	}
	for _, employee := range employees {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.Employee{Email: employee.Email}).FirstOrCreate(&employee).Error; err != nil {
			log.Println("failed to seed data for employee:", employee.Email, "error:", err)
		}
	}

	customers := []model.Customer{
		{FirstName: "Khách", LastName: "Demo", Email: "customer@webshop.vn", Phone: "0912345678", Address: "Hà Nội", Password: HashPassword},
	}
	for _, customer := range customers {
		if err := db.Where(model.Customer{Email: customer.Email}).FirstOrCreate(&customer).Error; err != nil {
			log.Println("failed to seed data for customer:", customer.Email, "error:", err)
		}
	}

	categories := []model.Category{
		{Name: "Áo", Description: "Áo thun, áo sơ mi"},
		{Name: "Giày", Description: "Giày thể thao, giày da"},
		{Name: "Phụ kiện", Description: "Mũ, túi, thắt lưng"},
	}
	for i := range categories {
		if err := db.Where(model.Category{Name: categories[i].Name}).FirstOrCreate(&categories[i]).Error; err != nil {
			log.Println("failed to seed data for category:", categories[i].Name, "error:", err)
		}
	}

	// Sản phẩm không size: tồn kho phẳng trên products.stock_quantity
	simpleProducts := []model.Product{
		{ProductName: "Mũ lưỡi trai", Price: 120000, Discount: 0, StockQuantity: 50, CategoryID: categories[2].ID},
		{ProductName: "Thắt lưng da", Price: 350000, Discount: 10, StockQuantity: 30, CategoryID: categories[2].ID},
	}
	for _, product := range simpleProducts {
		product.Code = slug.Make(product.ProductName)
		if err := db.Where(model.Product{Code: product.Code}).FirstOrCreate(&product).Error; err != nil {
			log.Println("failed to seed data for product:", product.ProductName, "error:", err)
		}
	}

	// Sản phẩm có size: tồn kho theo từng SizeDetail
	var existing model.Product
	sizedCode := slug.Make("Áo thun basic")
	if err := db.Where(model.Product{Code: sizedCode}).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		size := model.Size{
			ProductName: "Áo thun basic",
			Sizes: []model.SizeDetail{
				{Size: "S", Stock: 20},
				{Size: "M", Stock: 25},
				{Size: "L", Stock: 15},
			},
		}
		if err := db.Create(&size).Error; err != nil {
			log.Println("failed to seed size document:", err)
			return
		}
		product := model.Product{
			ProductName: "Áo thun basic",
			Code:        sizedCode,
			Price:       190000,
			Discount:    5,
			CategoryID:  categories[0].ID,
			SizeID:      &size.ID,
		}
		if err := db.Create(&product).Error; err != nil {
			log.Println("failed to seed sized product:", err)
		}
	}
}
