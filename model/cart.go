package model

// Cart: mỗi khách hàng có tối đa một giỏ hàng, tạo khi thêm sản phẩm lần đầu
type Cart struct {
	DTO
	CustomerID  uint         `gorm:"not null;uniqueIndex" json:"customerId"`
	Customer    *Customer    `json:"customer,omitempty"`
	CartDetails []CartDetail `gorm:"foreignKey:CartID" json:"cartDetails"`
}

type CartDetail struct {
	DTO
	CartID    uint     `gorm:"not null;index" json:"-"`
	ProductID uint     `gorm:"not null" json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
}

type AddToCartInput struct {
	CustomerId uint `json:"customerId" validate:"required,gt=0"`
	ProductId  uint `json:"productId" validate:"required,gt=0"`
	Quantity   int  `json:"quantity" validate:"required,gt=0"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}
