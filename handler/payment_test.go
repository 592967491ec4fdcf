package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"shop_manager/database"
	"shop_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func paymentTestSetup(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Customer{},
		&model.Employee{},
		&model.Order{},
		&model.OrderDetail{},
		&model.Payment{},
	))

	database.DB = db
	vnpayService = testVNPay()

	app := fiber.New()
	app.Get("/vnpay_ipn", VNPayIPN)
	return app
}

func seedPendingPayment(t *testing.T, code string, amount float64) model.Order {
	t.Helper()

	order := model.Order{
		PublicCode:      "ORD-" + code,
		Email:           "khach@example.com",
		ShippingAddress: "12 Nguyễn Huệ, Q1",
		PaymentType:     model.PaymentTypeVNPay,
		Status:          model.OrderStatusWaiting,
	}
	require.NoError(t, database.DB.Create(&order).Error)

	payment := model.Payment{
		OrderId:     order.ID,
		Amount:      amount,
		PaymentCode: code,
		Status:      model.PaymentStatusPending,
		Method:      "VNPAY",
	}
	require.NoError(t, database.DB.Create(&payment).Error)
	return order
}

func signedIPNQuery(txnRef, amount, responseCode string) string {
	v := testVNPay()
	params := url.Values{}
	params.Add("vnp_TxnRef", txnRef)
	params.Add("vnp_Amount", amount)
	params.Add("vnp_ResponseCode", responseCode)
	hash := v.SignParams(params)
	return params.Encode() + "&vnp_SecureHash=" + hash
}

func doIPN(t *testing.T, app *fiber.App, query string) fiber.Map {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/vnpay_ipn?"+query, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result fiber.Map
	require.NoError(t, json.Unmarshal(body, &result))
	return result
}

func TestVNPayIPNResubmission(t *testing.T) {
	app := paymentTestSetup(t)
	order := seedPendingPayment(t, "PAY_20250101_aaaa1111", 150000)

	query := signedIPNQuery("PAY_20250101_aaaa1111", "15000000", "00")

	// Lần đầu: ghi nhận thanh toán, duyệt đơn
	result := doIPN(t, app, query)
	assert.Equal(t, "00", result["RspCode"])

	var payment model.Payment
	require.NoError(t, database.DB.Where("payment_code = ?", "PAY_20250101_aaaa1111").First(&payment).Error)
	assert.Equal(t, model.PaymentStatusPaid, payment.Status)

	var reloaded model.Order
	require.NoError(t, database.DB.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, model.OrderStatusApproved, reloaded.Status)

	// Gửi lại đúng callback: đã xử lý rồi, trả 02 và không đổi trạng thái
	result = doIPN(t, app, query)
	assert.Equal(t, "02", result["RspCode"])

	require.NoError(t, database.DB.Where("payment_code = ?", "PAY_20250101_aaaa1111").First(&payment).Error)
	assert.Equal(t, model.PaymentStatusPaid, payment.Status)
}

func TestVNPayIPNUnknownTxnRef(t *testing.T) {
	app := paymentTestSetup(t)

	result := doIPN(t, app, signedIPNQuery("PAY_20250101_zzzz9999", "15000000", "00"))
	assert.Equal(t, "01", result["RspCode"])
}

func TestVNPayIPNAmountMismatch(t *testing.T) {
	app := paymentTestSetup(t)
	seedPendingPayment(t, "PAY_20250101_bbbb2222", 150000)

	// vnp_Amount không khớp số tiền đã ghi nhận
	result := doIPN(t, app, signedIPNQuery("PAY_20250101_bbbb2222", "9999900", "00"))
	assert.Equal(t, "04", result["RspCode"])

	var payment model.Payment
	require.NoError(t, database.DB.Where("payment_code = ?", "PAY_20250101_bbbb2222").First(&payment).Error)
	assert.Equal(t, model.PaymentStatusPending, payment.Status)
}

func TestVNPayIPNChecksumFailed(t *testing.T) {
	app := paymentTestSetup(t)
	seedPendingPayment(t, "PAY_20250101_cccc3333", 150000)

	query := "vnp_TxnRef=PAY_20250101_cccc3333&vnp_Amount=15000000&vnp_ResponseCode=00&vnp_SecureHash=deadbeef"
	result := doIPN(t, app, query)
	assert.Equal(t, "97", result["RspCode"])
}

func TestVNPayIPNGatewayCode97IsNotChecksumFailure(t *testing.T) {
	app := paymentTestSetup(t)
	order := seedPendingPayment(t, "PAY_20250101_dddd4444", 150000)

	// Message ký đúng nhưng gateway báo mã 97: là tiền lệ thanh toán thất bại,
	// không phải lỗi chữ ký phía mình
	result := doIPN(t, app, signedIPNQuery("PAY_20250101_dddd4444", "15000000", "97"))
	assert.Equal(t, "00", result["RspCode"])

	var payment model.Payment
	require.NoError(t, database.DB.Where("payment_code = ?", "PAY_20250101_dddd4444").First(&payment).Error)
	assert.Equal(t, model.PaymentStatusFailed, payment.Status)

	// Đơn không được duyệt khi thanh toán thất bại
	var reloaded model.Order
	require.NoError(t, database.DB.First(&reloaded, "id = ?", order.ID).Error)
	assert.Equal(t, model.OrderStatusWaiting, reloaded.Status)
}
