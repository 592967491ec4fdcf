package model

type Category struct {
	DTO
	Name        string `gorm:"not null;unique" json:"name"`
	Description string `json:"description"`
}

type Product struct {
	DTO
	ProductName   string    `gorm:"not null" json:"productName"`
	Code          string    `gorm:"not null;unique" json:"code"`
	Price         float64   `gorm:"default:0" json:"price"`
	Discount      float64   `gorm:"default:0" json:"discount"` // 0-100 (%)
	StockQuantity int       `gorm:"default:0" json:"stockQuantity"`
	ImageUrl      string    `json:"imageUrl"`
	CategoryID    uint      `gorm:"not null" json:"categoryId"`
	Category      *Category `json:"category,omitempty"`
	SizeID        *uint     `json:"sizeId,omitempty"` // Sản phẩm có size quản lý tồn kho theo Size
	Size          *Size     `json:"size,omitempty"`
}

type SizeDetailInput struct {
	Size  string `json:"size" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
}

type CreateProductInput struct {
	ProductName string            `json:"productName" validate:"required"`
	Price       float64           `json:"price" validate:"gte=0"`
	Discount    float64           `json:"discount" validate:"gte=0,lte=100"`
	Stock       int               `json:"stockQuantity" validate:"gte=0"`
	ImageUrl    string            `json:"imageUrl"`
	CategoryId  uint              `json:"categoryId" validate:"required,gt=0"`
	Sizes       []SizeDetailInput `json:"sizes" validate:"dive"`
}

type UpdateProductInput struct {
	ProductName *string  `json:"productName"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Discount    *float64 `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Stock       *int     `json:"stockQuantity" validate:"omitempty,gte=0"`
	ImageUrl    *string  `json:"imageUrl"`
	CategoryId  *uint    `json:"categoryId" validate:"omitempty,gt=0"`
}

type FilterProduct struct {
	Pagination
	SearchKey  string `query:"searchKey"`
	CategoryId uint   `query:"categoryId"`
}
