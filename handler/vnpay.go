package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"shop_manager/model"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// VNPay Service
type VNPay struct {
	Config model.VNPayConfig
}

var vnpayService *VNPay

// InitVNPay đọc cấu hình gateway một lần duy nhất, gọi từ main sau khi load env
func InitVNPay() {
	vnpayService = NewVNPay()
}

func NewVNPay() *VNPay {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Không tìm thấy file .env, dùng biến môi trường hệ thống...")
	}
	return &VNPay{
		Config: model.VNPayConfig{
			TmnCode:    os.Getenv("VNP_TMNCODE"),
			HashSecret: os.Getenv("VNP_HASHSECRET"),
			BaseURL:    os.Getenv("VNP_URL"),
			APIURL:     os.Getenv("VNP_API"),
			ReturnURL:  os.Getenv("WEBSHOP_URL") + "/payment",
			IPNURL:     os.Getenv("APP_URL") + "/api/v1/payment/vnpay_ipn",
		},
	}
}

func NewVNPayWithConfig(config model.VNPayConfig) *VNPay {
	return &VNPay{Config: config}
}

// SignParams ký bộ tham số theo chuẩn VNPay: loại vnp_SecureHash/vnp_SecureHashType,
// sort key tăng dần, serialize k=v&... có URL-encode, HMAC-SHA512 hex thường.
// url.Values.Encode() đã sort key sẵn.
func (v *VNPay) SignParams(params url.Values) string {
	data := url.Values{}
	for key, values := range params {
		if key == "vnp_SecureHash" || key == "vnp_SecureHashType" {
			continue
		}
		for _, value := range values {
			data.Add(key, value)
		}
	}
	return v.hmacSHA512(data.Encode())
}

// VerifyParams so sánh chính xác hash được gửi với hash tính lại
func (v *VNPay) VerifyParams(params url.Values) bool {
	secureHash := params.Get("vnp_SecureHash")
	if secureHash == "" {
		return false
	}
	return secureHash == v.SignParams(params)
}

// NewTxnRef sinh mã giao dịch duy nhất (PAY_YYYYMMDD_xxxxxxxx)
func NewTxnRef() string {
	return fmt.Sprintf("PAY_%s_%s", time.Now().Format("20060102"), strings.Split(uuid.NewString(), "-")[0])
}

// BuildPaymentUrl dựng URL redirect sang cổng thanh toán
func (v *VNPay) BuildPaymentUrl(req model.PaymentRequest) (string, error) {
	locale := req.Locale
	if locale == "" {
		locale = "vn"
	}

	now := time.Now()
	params := url.Values{}
	params.Add("vnp_Version", "2.1.0")
	params.Add("vnp_Command", "pay")
	params.Add("vnp_TmnCode", v.Config.TmnCode)
	params.Add("vnp_Locale", locale)
	params.Add("vnp_CurrCode", "VND")
	params.Add("vnp_TxnRef", req.TxnRef)
	params.Add("vnp_OrderInfo", req.OrderInfo)
	params.Add("vnp_OrderType", req.OrderType)
	params.Add("vnp_Amount", strconv.FormatInt(req.Amount*100, 10)) // VND * 100
	params.Add("vnp_ReturnUrl", v.Config.ReturnURL)
	params.Add("vnp_IpAddr", req.IPAddr)
	params.Add("vnp_CreateDate", now.Format("20060102150405"))
	params.Add("vnp_ExpireDate", now.Add(15*time.Minute).Format("20060102150405"))
	params.Add("vnp_BankCode", "NCB")

	query := params.Encode()
	hash := v.SignParams(params)
	fullQuery := query + "&vnp_SecureHash=" + hash

	return v.Config.BaseURL + "?" + fullQuery, nil
}

// VerifyReturnUrl xác thực callback phía trình duyệt (Return URL)
func (v *VNPay) VerifyReturnUrl(query url.Values) model.PaymentResponse {
	if !v.VerifyParams(query) {
		return model.PaymentResponse{IsVerified: false, IsSuccess: false, Message: "Invalid hash"}
	}

	responseCode := query.Get("vnp_ResponseCode")
	txnRef := query.Get("vnp_TxnRef")
	amount, _ := strconv.ParseInt(query.Get("vnp_Amount"), 10, 64)

	if responseCode == "00" {
		return model.PaymentResponse{
			IsVerified:   true,
			IsSuccess:    true,
			TxnRef:       txnRef,
			Amount:       amount / 100,
			ResponseCode: responseCode,
			Status:       model.PaymentStatusPaid,
		}
	}

	return model.PaymentResponse{
		IsVerified:   true,
		IsSuccess:    false,
		TxnRef:       txnRef,
		Amount:       amount / 100,
		ResponseCode: responseCode,
		Status:       model.PaymentStatusFailed,
		Message:      "Payment failed",
	}
}

// VerifyIPN xác thực callback server-to-server (authoritative)
func (v *VNPay) VerifyIPN(query url.Values) model.PaymentResponse {
	if !v.VerifyParams(query) {
		return model.PaymentResponse{IsVerified: false, IsSuccess: false, Message: "Invalid IPN hash"}
	}

	responseCode := query.Get("vnp_ResponseCode")
	amount, _ := strconv.ParseInt(query.Get("vnp_Amount"), 10, 64)

	return model.PaymentResponse{
		IsVerified:   true,
		IsSuccess:    responseCode == "00",
		TxnRef:       query.Get("vnp_TxnRef"),
		Amount:       amount / 100,
		ResponseCode: responseCode,
	}
}

// BuildQueryRequest dựng body đã ký cho lệnh querydr.
// Chuỗi ký theo thứ tự pipe cố định của giao thức, KHÔNG theo sort key:
// requestId|version|command|tmnCode|txnRef|transactionDate|createDate|ipAddr|orderInfo
func (v *VNPay) BuildQueryRequest(txnRef, transDate, ipAddr string) map[string]string {
	requestId := strings.Split(uuid.NewString(), "-")[0]
	createDate := time.Now().Format("20060102150405")
	orderInfo := "Truy van GD ma:" + txnRef

	data := strings.Join([]string{
		requestId, "2.1.0", "querydr", v.Config.TmnCode,
		txnRef, transDate, createDate, ipAddr, orderInfo,
	}, "|")

	return map[string]string{
		"vnp_RequestId":       requestId,
		"vnp_Version":         "2.1.0",
		"vnp_Command":         "querydr",
		"vnp_TmnCode":         v.Config.TmnCode,
		"vnp_TxnRef":          txnRef,
		"vnp_OrderInfo":       orderInfo,
		"vnp_TransactionDate": transDate,
		"vnp_CreateDate":      createDate,
		"vnp_IpAddr":          ipAddr,
		"vnp_SecureHash":      v.hmacSHA512(data),
	}
}

// BuildRefundRequest dựng body đã ký cho lệnh refund.
// requestId|version|command|tmnCode|transType|txnRef|amount|transactionNo|transactionDate|createBy|createDate|ipAddr|orderInfo
func (v *VNPay) BuildRefundRequest(txnRef, transDate string, amount int64, transType, createBy, ipAddr string) map[string]string {
	requestId := strings.Split(uuid.NewString(), "-")[0]
	createDate := time.Now().Format("20060102150405")
	orderInfo := "Hoan tien GD ma:" + txnRef
	amountStr := strconv.FormatInt(amount*100, 10)
	transactionNo := "0"

	data := strings.Join([]string{
		requestId, "2.1.0", "refund", v.Config.TmnCode,
		transType, txnRef, amountStr, transactionNo,
		transDate, createBy, createDate, ipAddr, orderInfo,
	}, "|")

	return map[string]string{
		"vnp_RequestId":       requestId,
		"vnp_Version":         "2.1.0",
		"vnp_Command":         "refund",
		"vnp_TmnCode":         v.Config.TmnCode,
		"vnp_TransactionType": transType,
		"vnp_TxnRef":          txnRef,
		"vnp_Amount":          amountStr,
		"vnp_TransactionNo":   transactionNo,
		"vnp_CreateBy":        createBy,
		"vnp_OrderInfo":       orderInfo,
		"vnp_TransactionDate": transDate,
		"vnp_CreateDate":      createDate,
		"vnp_IpAddr":          ipAddr,
		"vnp_SecureHash":      v.hmacSHA512(data),
	}
}

// CallGatewayAPI gửi body đã ký sang merchant_webapi và đọc JSON trả về
func (v *VNPay) CallGatewayAPI(body map[string]string) (map[string]interface{}, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(v.Config.APIURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("gateway returned non-JSON body: %w", err)
	}
	return result, nil
}

// Helpers
func (v *VNPay) hmacSHA512(data string) string {
	h := hmac.New(sha512.New, []byte(v.Config.HashSecret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
