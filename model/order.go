package model

import (
	"strings"
	"time"
)

// Trạng thái đơn hàng
const (
	OrderStatusWaiting   = "WAITING"
	OrderStatusApproved  = "APPROVED"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCanceled  = "CANCELED"
)

// Hình thức thanh toán
const (
	PaymentTypeCash       = "CASH"
	PaymentTypeCreditCard = "CREDIT CARD"
	PaymentTypeVNPay      = "VNPAY"
)

type Order struct {
	DTO
	PublicCode      string        `gorm:"unique;size:20" json:"publicCode"` // Mã đơn hàng công khai (ORD-XXXXXX)
	Description     string        `json:"description"`
	CreatedDate     time.Time     `json:"createdDate"`
	ShippedDate     *time.Time    `json:"shippedDate,omitempty"` // Không được trước CreatedDate
	Email           string        `gorm:"not null" json:"emailOrder"`
	PhoneNumber     string        `json:"phoneNumberOrder"`
	PaymentType     string        `gorm:"default:CASH" json:"paymentType"`
	Status          string        `gorm:"default:WAITING" json:"status"`
	ShippingAddress string        `gorm:"not null" json:"shippingAddress"`
	CustomerID      *uint         `json:"customerId,omitempty"` // Có thể null nếu khách vãng lai (guest)
	Customer        *Customer     `json:"customer,omitempty"`
	EmployeeID      *uint         `json:"employeeId,omitempty"`
	Employee        *Employee     `json:"employee,omitempty"`
	StockReturned   bool          `gorm:"default:false" json:"stockReturned"` // Đã hoàn trả tồn kho khi hủy đơn
	OrderDetails    []OrderDetail `gorm:"foreignKey:OrderId" json:"orderDetails"`
}

// OrderDetail là snapshot tại thời điểm đặt hàng, không đọc lại giá từ catalog
type OrderDetail struct {
	DTO
	OrderId     uint    `gorm:"not null;index" json:"-"`
	ProductID   uint    `gorm:"not null" json:"productId"`
	ProductName string  `gorm:"not null" json:"productName"`
	ImageUrl    string  `json:"imageUrl"`
	Quantity    int     `json:"quantity"`
	Price       float64 `gorm:"default:0" json:"price"`
	Discount    float64 `gorm:"default:0" json:"discount"` // 0-75 (%)
	SizeID      *uint   `json:"sizeId,omitempty"`
	Size        string  `json:"size,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
}

// Máy trạng thái: WAITING/APPROVED có thể chuyển tiếp, COMPLETED/CANCELED là trạng thái cuối
var orderTransitions = map[string][]string{
	OrderStatusWaiting:  {OrderStatusApproved, OrderStatusCompleted, OrderStatusCanceled},
	OrderStatusApproved: {OrderStatusCompleted, OrderStatusCanceled},
}

func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusWaiting, OrderStatusApproved, OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}

func CanTransitionOrderStatus(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NormalizePaymentType chấp nhận input không phân biệt hoa thường ("cash" → "CASH")
func NormalizePaymentType(value string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	switch normalized {
	case PaymentTypeCash, PaymentTypeCreditCard, PaymentTypeVNPay:
		return normalized, true
	}
	return "", false
}

// TotalAmount tính tổng tiền đơn hàng từ snapshot
func (o *Order) TotalAmount() float64 {
	total := float64(0)
	for _, detail := range o.OrderDetails {
		total += detail.Price * (100 - detail.Discount) / 100 * float64(detail.Quantity)
	}
	return total
}

type OrderDetailInput struct {
	ProductId uint   `json:"productId" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Size      string `json:"size"`
}

type CreateOrderInput struct {
	Description     string             `json:"description"`
	ShippedDate     *time.Time         `json:"shippedDate"`
	Email           string             `json:"emailOrder" validate:"required"`
	PhoneNumber     string             `json:"phoneNumberOrder"`
	PaymentType     string             `json:"paymentType"`
	Status          string             `json:"status"`
	ShippingAddress string             `json:"shippingAddress" validate:"required"`
	CustomerId      *uint              `json:"customerId"`
	EmployeeId      *uint              `json:"employeeId"`
	OrderDetails    []OrderDetailInput `json:"orderDetails" validate:"required,min=1,dive"`
}

type UpdateOrderInput struct {
	Description     *string    `json:"description"`
	ShippedDate     *time.Time `json:"shippedDate"`
	Status          *string    `json:"status"`
	ShippingAddress *string    `json:"shippingAddress"`
	EmployeeId      *uint      `json:"employeeId"`
}
