package constants

// Thông báo chung
const (
	ERROR_INPUT              = "Dữ liệu đầu vào không hợp lệ"
	ERROR_INTERNAL_ERROR     = "Lỗi hệ thống, vui lòng thử lại sau"
	DATA_INPUT_IS_NOT_NUMBER = "Tham số phải là số"
	NOT_ADMIN                = "Không có quyền truy cập"
	MISSING_LOGIN_INPUT      = "Thiếu thông tin đăng nhập"
	INVALID_EMAIL            = "Email không hợp lệ"
	INVALID_PASSWORD         = "Mật khẩu không đúng"
	ACCOUNT_NOT_ACTIVE       = "Tài khoản đã bị khóa"
)

// Đơn hàng
const (
	ORDER_NOT_FOUND          = "Đơn hàng không tồn tại"
	ORDER_INVALID_STATUS     = "Trạng thái đơn hàng không hợp lệ"
	ORDER_INVALID_TRANSITION = "Không thể chuyển trạng thái đơn hàng"
	ORDER_INVALID_PAYMENT    = "Hình thức thanh toán không hợp lệ"
	ORDER_INVALID_SHIPPED    = "Ngày giao hàng không được trước ngày tạo đơn"
	ORDER_STOCK_RETURNED     = "Đơn hàng đã được hoàn trả tồn kho trước đó"
	ORDER_STOCK_RESTORED     = "Đã hoàn trả số lượng sản phẩm thành công"
	NO_ORDERS_FOR_CUSTOMER   = "No orders found for the customer"
)

// Sản phẩm / tồn kho
const (
	PRODUCT_NOT_FOUND  = "Sản phẩm không tồn tại"
	VARIANT_NOT_FOUND  = "Không tìm thấy kích thước của sản phẩm"
	STOCK_UNAVAILABLE  = "Sản phẩm vượt quá số lượng cho phép"
	CATEGORY_NOT_FOUND = "Danh mục không tồn tại"
)

// Giỏ hàng
const (
	CART_NOT_FOUND         = "Giỏ hàng không tồn tại"
	CART_PRODUCT_NOT_FOUND = "Sản phẩm không tồn tại trong giỏ hàng"
	CART_ADDED             = "Thêm sản phẩm thành công"
	CART_UPDATED           = "Cập nhật số lượng sản phẩm thành công"
	CART_REMOVED           = "Xóa thành công"
)

// Khách hàng
const (
	CUSTOMER_NOT_FOUND   = "Khách hàng không tồn tại hoặc đã bị xóa"
	EMAIL_ALREADY_EXISTS = "Email đã được sử dụng"
	PHONE_ALREADY_EXISTS = "Số điện thoại đã được sử dụng"
	EMPLOYEE_NOT_FOUND   = "Nhân viên không tồn tại"
)

// Thanh toán VNPay
const (
	PAYMENT_NOT_FOUND      = "Không tìm thấy giao dịch thanh toán"
	PAYMENT_INVALID_ORDER  = "Đơn hàng không hợp lệ để thanh toán"
	PAYMENT_URL_FAILED     = "Lỗi tạo payment URL"
	PAYMENT_GATEWAY_FAILED = "Cổng thanh toán trả về lỗi"
)
