package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"

	"shop_manager/constants"
	"shop_manager/database"
	"shop_manager/model"
	"shop_manager/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func queryValues(c *fiber.Ctx) url.Values {
	query := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		query.Add(string(key), string(value))
	})
	return query
}

// CreatePayment tạo URL thanh toán VNPay cho một đơn hàng đang chờ
func CreatePayment(c *fiber.Ctx) error {
	var input model.CreatePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	validate := validator.New()
	if err := validate.Struct(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB

	var order model.Order
	if err := db.Preload("OrderDetails").
		Where("id = ? AND status IN ?", input.OrderId, []string{model.OrderStatusWaiting, model.OrderStatusApproved}).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PAYMENT_INVALID_ORDER, err)
	}
	if order.PaymentType != model.PaymentTypeVNPay {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PAYMENT_INVALID_ORDER, errors.New("order payment type is not VNPAY"))
	}

	paymentCode := NewTxnRef()
	amount := order.TotalAmount()

	req := model.PaymentRequest{
		Amount:    int64(amount),
		OrderInfo: fmt.Sprintf("Thanh toan don hang %s", order.PublicCode),
		OrderType: input.OrderType,
		Locale:    input.Locale,
		TxnRef:    paymentCode,
		IPAddr:    c.IP(),
	}

	paymentUrl, err := vnpayService.BuildPaymentUrl(req)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.PAYMENT_URL_FAILED, err)
	}

	payment := model.Payment{
		OrderId:     order.ID,
		Amount:      amount,
		PaymentCode: paymentCode,
		Status:      model.PaymentStatusPending,
		Method:      input.Method,
	}
	if err := db.Create(&payment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// QR để quét thanh toán trên mobile
	qrBase64 := ""
	if qrBytes, err := utils.GenerateQRCode(paymentUrl, 400); err == nil {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	return c.JSON(fiber.Map{
		"message":     "Tạo thanh toán thành công",
		"urlPay":      paymentUrl,
		"paymentCode": paymentCode,
		"qrCode":      qrBase64,
	})
}

// VNPayReturn xử lý redirect từ trình duyệt sau khi thanh toán
func VNPayReturn(c *fiber.Ctx) error {
	query := queryValues(c)

	// Sai chữ ký: trả mã cố định 97, không tiết lộ thêm
	if !vnpayService.VerifyParams(query) {
		return c.JSON(fiber.Map{"code": "97"})
	}

	result := vnpayService.VerifyReturnUrl(query)
	if result.IsSuccess {
		return c.Redirect(fmt.Sprintf("%s/success?orderCode=%s", os.Getenv("WEBSHOP_URL"), result.TxnRef))
	}
	return c.Redirect(fmt.Sprintf("%s/payment-failed?code=%s", os.Getenv("WEBSHOP_URL"), result.ResponseCode))
}

// VNPayIPN là callback server-to-server có thẩm quyền, phải idempotent.
// RspCode: 00 thành công, 01 không tìm thấy giao dịch, 02 đã xử lý trước đó,
// 04 sai số tiền, 97 sai chữ ký.
func VNPayIPN(c *fiber.Ctx) error {
	query := queryValues(c)
	result := vnpayService.VerifyIPN(query)

	if !result.IsVerified {
		return c.JSON(fiber.Map{"RspCode": "97", "Message": "Checksum failed"})
	}

	db := database.DB

	var payment model.Payment
	if err := db.Where("payment_code = ?", result.TxnRef).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"RspCode": "01", "Message": "Order not found"})
		}
		return c.JSON(fiber.Map{"RspCode": "99", "Message": "Unknown error"})
	}

	if result.Amount != int64(payment.Amount) {
		return c.JSON(fiber.Map{"RspCode": "04", "Message": "Amount invalid"})
	}

	if payment.Status != model.PaymentStatusPending {
		return c.JSON(fiber.Map{
			"RspCode": "02",
			"Message": "This order has been updated to the payment status",
		})
	}

	newStatus := model.PaymentStatusFailed
	if result.IsSuccess {
		newStatus = model.PaymentStatusPaid
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&payment).Update("status", newStatus).Error; err != nil {
			return err
		}
		if newStatus == model.PaymentStatusPaid {
			var order model.Order
			if err := tx.First(&order, "id = ?", payment.OrderId).Error; err != nil {
				return err
			}
			if model.CanTransitionOrderStatus(order.Status, model.OrderStatusApproved) {
				if err := tx.Model(&order).Update("status", model.OrderStatusApproved).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return c.JSON(fiber.Map{"RspCode": "99", "Message": "Unknown error"})
	}

	return c.JSON(fiber.Map{"RspCode": "00", "Message": "Success"})
}

// QueryTransaction truy vấn trạng thái giao dịch tại gateway (querydr)
func QueryTransaction(c *fiber.Ctx) error {
	var input model.QueryTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	validate := validator.New()
	if err := validate.Struct(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	body := vnpayService.BuildQueryRequest(input.PaymentCode, input.TransDate, c.IP())
	result, err := vnpayService.CallGatewayAPI(body)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.PAYMENT_GATEWAY_FAILED, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

// RefundTransaction gửi yêu cầu hoàn tiền sang gateway
func RefundTransaction(c *fiber.Ctx) error {
	var input model.RefundTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	validate := validator.New()
	if err := validate.Struct(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	body := vnpayService.BuildRefundRequest(input.PaymentCode, input.TransDate, input.Amount, input.TransType, input.CreateBy, c.IP())
	result, err := vnpayService.CallGatewayAPI(body)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, constants.PAYMENT_GATEWAY_FAILED, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, result)
}
