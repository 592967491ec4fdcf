package handler

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"shop_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVNPay() *VNPay {
	return NewVNPayWithConfig(model.VNPayConfig{
		TmnCode:    "DEMOTMN1",
		HashSecret: "DEMOSECRETKEY123456789",
		BaseURL:    "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		APIURL:     "https://sandbox.vnpayment.vn/merchant_webapi/api/transaction",
		ReturnURL:  "http://localhost:5173/payment",
		IPNURL:     "http://localhost:8002/api/v1/payment/vnpay_ipn",
	})
}

func TestSignParamsDeterministic(t *testing.T) {
	v := testVNPay()

	params := url.Values{}
	params.Add("vnp_TxnRef", "PAY_20250101_abcd1234")
	params.Add("vnp_Amount", "1500000")
	params.Add("vnp_OrderInfo", "Thanh toan don hang ORD-ABCD1234")

	first := v.SignParams(params)
	second := v.SignParams(params)

	assert.Equal(t, first, second)
	assert.Len(t, first, 128) // SHA-512 hex
	assert.Equal(t, strings.ToLower(first), first)
}

func TestSignParamsIgnoresSecureHashFields(t *testing.T) {
	v := testVNPay()

	params := url.Values{}
	params.Add("vnp_TxnRef", "PAY_20250101_abcd1234")
	params.Add("vnp_Amount", "1500000")
	base := v.SignParams(params)

	params.Add("vnp_SecureHash", "deadbeef")
	params.Add("vnp_SecureHashType", "HmacSHA512")

	assert.Equal(t, base, v.SignParams(params))
}

func TestVerifyParams(t *testing.T) {
	v := testVNPay()

	params := url.Values{}
	params.Add("vnp_TxnRef", "PAY_20250101_abcd1234")
	params.Add("vnp_Amount", "1500000")
	params.Add("vnp_ResponseCode", "00")
	params.Set("vnp_SecureHash", v.SignParams(params))

	assert.True(t, v.VerifyParams(params))

	// Sửa một field bất kỳ phải làm hash lệch
	params.Set("vnp_Amount", "9999900")
	assert.False(t, v.VerifyParams(params))

	// Thiếu hash
	params.Del("vnp_SecureHash")
	assert.False(t, v.VerifyParams(params))
}

func TestVerifyParamsRejectsWrongSecret(t *testing.T) {
	v := testVNPay()

	params := url.Values{}
	params.Add("vnp_TxnRef", "PAY_20250101_abcd1234")
	params.Set("vnp_SecureHash", v.SignParams(params))

	other := NewVNPayWithConfig(model.VNPayConfig{HashSecret: "ANOTHERSECRET"})
	assert.False(t, other.VerifyParams(params))
}

func TestBuildPaymentUrl(t *testing.T) {
	v := testVNPay()

	rawUrl, err := v.BuildPaymentUrl(model.PaymentRequest{
		Amount:    150000,
		OrderInfo: "Thanh toan don hang ORD-ABCD1234",
		OrderType: "other",
		TxnRef:    "PAY_20250101_abcd1234",
		IPAddr:    "127.0.0.1",
	})
	require.NoError(t, err)

	parsed, err := url.Parse(rawUrl)
	require.NoError(t, err)
	assert.Equal(t, "sandbox.vnpayment.vn", parsed.Host)

	query, err := url.ParseQuery(parsed.RawQuery)
	require.NoError(t, err)

	assert.Equal(t, "2.1.0", query.Get("vnp_Version"))
	assert.Equal(t, "pay", query.Get("vnp_Command"))
	assert.Equal(t, "VND", query.Get("vnp_CurrCode"))
	assert.Equal(t, "15000000", query.Get("vnp_Amount")) // VND * 100
	assert.Equal(t, "vn", query.Get("vnp_Locale"))
	assert.Equal(t, "PAY_20250101_abcd1234", query.Get("vnp_TxnRef"))
	assert.Equal(t, v.Config.ReturnURL, query.Get("vnp_ReturnUrl"))

	// CreateDate/ExpireDate đúng format và cách nhau 15 phút
	createDate, err := time.Parse("20060102150405", query.Get("vnp_CreateDate"))
	require.NoError(t, err)
	expireDate, err := time.Parse("20060102150405", query.Get("vnp_ExpireDate"))
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, expireDate.Sub(createDate))

	// URL trả về phải tự verify được
	assert.True(t, v.VerifyParams(query))
}

func TestNewTxnRefFormat(t *testing.T) {
	ref := NewTxnRef()

	parts := strings.Split(ref, "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "PAY", parts[0])
	assert.Equal(t, time.Now().Format("20060102"), parts[1])
	assert.Len(t, parts[2], 8)

	assert.NotEqual(t, ref, NewTxnRef())
}

func TestVerifyReturnUrl(t *testing.T) {
	v := testVNPay()

	params := url.Values{}
	params.Add("vnp_TxnRef", "PAY_20250101_abcd1234")
	params.Add("vnp_Amount", "15000000")
	params.Add("vnp_ResponseCode", "00")
	params.Set("vnp_SecureHash", v.SignParams(params))

	result := v.VerifyReturnUrl(params)
	assert.True(t, result.IsSuccess)
	assert.Equal(t, model.PaymentStatusPaid, result.Status)
	assert.Equal(t, int64(150000), result.Amount)

	// Mã lỗi từ gateway
	params.Set("vnp_ResponseCode", "24")
	params.Set("vnp_SecureHash", v.SignParams(params))
	result = v.VerifyReturnUrl(params)
	assert.False(t, result.IsSuccess)
	assert.Equal(t, model.PaymentStatusFailed, result.Status)

	// Hash sai
	params.Set("vnp_SecureHash", "deadbeef")
	result = v.VerifyReturnUrl(params)
	assert.False(t, result.IsVerified)
	assert.False(t, result.IsSuccess)
}

func TestVerifyIPNSignatureFlagIndependentOfResponseCode(t *testing.T) {
	v := testVNPay()

	// Gateway trả mã "97" trong một message ký ĐÚNG: phải phân biệt được
	// với trường hợp sai chữ ký
	params := url.Values{}
	params.Add("vnp_TxnRef", "PAY_20250101_abcd1234")
	params.Add("vnp_Amount", "15000000")
	params.Add("vnp_ResponseCode", "97")
	params.Set("vnp_SecureHash", v.SignParams(params))

	result := v.VerifyIPN(params)
	assert.True(t, result.IsVerified)
	assert.False(t, result.IsSuccess)
	assert.Equal(t, "97", result.ResponseCode)

	// Sai chữ ký thật sự
	params.Set("vnp_SecureHash", "deadbeef")
	result = v.VerifyIPN(params)
	assert.False(t, result.IsVerified)
}

func TestBuildQueryRequestSignature(t *testing.T) {
	v := testVNPay()

	body := v.BuildQueryRequest("PAY_20250101_abcd1234", "20250101103000", "127.0.0.1")

	assert.Equal(t, "querydr", body["vnp_Command"])
	assert.Equal(t, "2.1.0", body["vnp_Version"])
	assert.Equal(t, v.Config.TmnCode, body["vnp_TmnCode"])

	// Chuỗi ký theo thứ tự pipe cố định, không sort key
	expected := v.hmacSHA512(strings.Join([]string{
		body["vnp_RequestId"], "2.1.0", "querydr", v.Config.TmnCode,
		body["vnp_TxnRef"], body["vnp_TransactionDate"], body["vnp_CreateDate"],
		body["vnp_IpAddr"], body["vnp_OrderInfo"],
	}, "|"))
	assert.Equal(t, expected, body["vnp_SecureHash"])
}

func TestBuildRefundRequestSignature(t *testing.T) {
	v := testVNPay()

	body := v.BuildRefundRequest("PAY_20250101_abcd1234", "20250101103000", 150000, "02", "admin", "127.0.0.1")

	assert.Equal(t, "refund", body["vnp_Command"])
	assert.Equal(t, "02", body["vnp_TransactionType"])
	assert.Equal(t, "15000000", body["vnp_Amount"]) // VND * 100
	assert.Equal(t, "0", body["vnp_TransactionNo"])

	expected := v.hmacSHA512(strings.Join([]string{
		body["vnp_RequestId"], "2.1.0", "refund", v.Config.TmnCode,
		"02", body["vnp_TxnRef"], body["vnp_Amount"], body["vnp_TransactionNo"],
		body["vnp_TransactionDate"], body["vnp_CreateBy"], body["vnp_CreateDate"],
		body["vnp_IpAddr"], body["vnp_OrderInfo"],
	}, "|"))
	assert.Equal(t, expected, body["vnp_SecureHash"])
}
