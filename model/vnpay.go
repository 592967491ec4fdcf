package model

// Trạng thái thanh toán
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"
	PaymentStatusExpired = "EXPIRED"
)

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	APIURL     string // merchant_webapi cho querydr/refund
	ReturnURL  string
	IPNURL     string
}

type PaymentRequest struct {
	Amount    int64  `json:"amount"` // VND, chưa nhân 100
	OrderInfo string `json:"orderInfo"`
	OrderType string `json:"orderType"`
	Locale    string `json:"locale"`
	TxnRef    string `json:"txnRef"`
	IPAddr    string `json:"ipAddr"`
}

type PaymentResponse struct {
	// IsVerified: chữ ký hợp lệ. Tách riêng khỏi ResponseCode vì gateway
	// cũng có thể trả mã "97" trong một message ký đúng.
	IsVerified   bool   `json:"isVerified"`
	IsSuccess    bool   `json:"isSuccess"`
	TxnRef       string `json:"txnRef"`
	Amount       int64  `json:"amount"`
	ResponseCode string `json:"responseCode"` // 00=Success
	Status       string `json:"status"`
	Message      string `json:"message"`
}

// Payment theo dõi một giao dịch VNPay của đơn hàng, khóa theo PaymentCode (vnp_TxnRef)
type Payment struct {
	DTO
	OrderId     uint    `gorm:"not null" json:"orderId"`
	Amount      float64 `gorm:"not null" json:"amount"`
	PaymentCode string  `gorm:"unique" json:"paymentCode"`
	Status      string  `gorm:"default:PENDING" json:"status"`
	Method      string  `json:"method"` // VNPAY

	Order Order `gorm:"foreignKey:OrderId" json:"-"`
}

type CreatePaymentInput struct {
	OrderId   uint   `json:"orderId" validate:"required,gt=0"`
	Method    string `json:"method" validate:"required,oneof=VNPAY"`
	OrderType string `json:"orderType"`
	Locale    string `json:"language"`
}

type QueryTransactionInput struct {
	PaymentCode string `json:"orderId" validate:"required"`
	TransDate   string `json:"transDate" validate:"required,len=14"`
}

type RefundTransactionInput struct {
	PaymentCode string `json:"orderId" validate:"required"`
	TransDate   string `json:"transDate" validate:"required,len=14"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	TransType   string `json:"transType" validate:"required,oneof=02 03"`
	CreateBy    string `json:"user" validate:"required"`
}
