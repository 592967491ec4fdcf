package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"time"

	"shop_manager/constants"
	"shop_manager/database"
	"shop_manager/helper"
	"shop_manager/model"
	"shop_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/jordan-wright/email"
	"gorm.io/gorm"
)

func Register(c *fiber.Ctx) error {
	input, ok := c.Locals("registerInput").(*model.RegisterCustomerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	emailExists, err := helper.CheckByEmailCustomer(input.Email, nil)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if emailExists {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.EMAIL_ALREADY_EXISTS, errors.New("email exists"))
	}

	if input.Phone != "" {
		phoneExists, err := helper.CheckByPhoneNumberCustomer(input.Phone, nil)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if phoneExists {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.PHONE_ALREADY_EXISTS, errors.New("phone exists"))
		}
	}

	hashed, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	customer := model.Customer{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		Password:  hashed,
		IsActive:  true,
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, customer)
}

func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	loginInput := new(LoginInput)

	if err := c.BodyParser(loginInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}

	// Manual validation
	if loginInput.Email == "" || loginInput.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("email and password are required"))
	}
	if !utils.IsValidEmail(loginInput.Email) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_EMAIL, errors.New("malformed email"))
	}

	customer, err := helper.GetCustomerByEmail(loginInput.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if customer == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_EMAIL, errors.New("email not exists"))
	}

	if !helper.CheckPasswordHash(loginInput.Password, customer.Password) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INVALID_PASSWORD, errors.New("password does not match email"))
	}

	if !customer.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("active false"))
	}

	tokenClaim := model.TokenClaim{
		CustomerId: customer.ID,
		Email:      customer.Email,
	}

	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Set access token vào HTTPOnly cookie
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false, // nếu deploy HTTPS thì true
		Path:     "/",
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false,
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"message": "login success",
		"customer": fiber.Map{
			"id":        customer.ID,
			"email":     customer.Email,
			"firstName": customer.FirstName,
			"lastName":  customer.LastName,
		},
	})
}

func LoginEmployee(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	loginInput := new(LoginInput)

	if err := c.BodyParser(loginInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}
	if loginInput.Email == "" || loginInput.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("email and password are required"))
	}

	employee, err := helper.GetEmployeeByEmail(loginInput.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if employee == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_EMAIL, errors.New("email not exists"))
	}

	if !helper.CheckPasswordHash(loginInput.Password, employee.Password) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INVALID_PASSWORD, errors.New("password does not match email"))
	}

	if !employee.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("active false"))
	}

	tokenClaim := model.TokenClaim{
		EmployeeId: employee.ID,
		Email:      employee.Email,
	}

	token, err := helper.GenerateAccessToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	refreshToken, err := helper.GenerateRefreshToken(tokenClaim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false,
		Path:     "/",
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		SameSite: "None",
		Secure:   false,
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"message": "login success",
		"employee": fiber.Map{
			"id":      employee.ID,
			"email":   employee.Email,
			"isAdmin": employee.IsAdmin,
		},
	})
}

// ForgotPassword sinh token khôi phục và gửi liên kết qua email
func ForgotPassword(c *fiber.Ctx) error {
	input, ok := c.Locals("forgotPasswordInput").(*model.ForgotPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	db := database.DB

	var customer model.Customer
	if err := db.Where("email = ?", input.Email).First(&customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CUSTOMER_NOT_FOUND, err)
	}

	// Tạo token khôi phục
	tokenBytes := make([]byte, 16)
	if _, err := rand.Read(tokenBytes); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	token := hex.EncodeToString(tokenBytes)

	resetToken := model.PasswordResetToken{
		CustomerId: customer.ID,
		Token:      token,
		ExpiresAt:  time.Now().Add(1 * time.Hour), // Hết hạn sau 1 giờ
	}
	if err := db.Create(&resetToken).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Gửi email với liên kết khôi phục
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", os.Getenv("WEBSHOP_URL"), token)
	e := email.NewEmail()
	e.From = os.Getenv("SMTP_FROM")
	e.To = []string{customer.Email}
	e.Subject = "Khôi phục mật khẩu"
	e.Text = []byte(fmt.Sprintf("Nhấp vào liên kết để đặt lại mật khẩu: %s", resetLink))

	smtpHost := os.Getenv("SMTP_HOST")
	addr := fmt.Sprintf("%s:%s", smtpHost, os.Getenv("SMTP_PORT"))
	if err := e.Send(addr, smtp.PlainAuth("", os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), smtpHost)); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể gửi email", err)
	}

	return c.JSON(fiber.Map{"message": "Liên kết khôi phục đã được gửi tới email"})
}

// ResetPassword đổi mật khẩu bằng token một lần còn hạn
func ResetPassword(c *fiber.Ctx) error {
	input, ok := c.Locals("resetPasswordInput").(*model.ResetPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	db := database.DB

	var resetToken model.PasswordResetToken
	if err := db.Where("token = ? AND expires_at > ?", input.Token, time.Now()).First(&resetToken).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Token không hợp lệ hoặc đã hết hạn", err)
	}

	var customer model.Customer
	if err := db.First(&customer, "id = ?", resetToken.CustomerId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CUSTOMER_NOT_FOUND, err)
	}

	hashed, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&customer).Update("password", hashed).Error; err != nil {
			return err
		}
		// Token dùng một lần
		return tx.Delete(&resetToken).Error
	}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"message": "Đặt lại mật khẩu thành công"})
}

func Logout(c *fiber.Ctx) error {
	c.ClearCookie("access_token", "refresh_token")
	return c.JSON(fiber.Map{"message": "logout success"})
}

func GetCustomers(c *fiber.Ctx) error {
	_, isAdmin := helper.GetInfoEmployeeFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
	}

	pagination := new(model.Pagination)
	if err := c.QueryParser(pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB

	var totalCount int64
	if err := db.Model(&model.Customer{}).Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var customers []model.Customer
	query := utils.ApplyPagination(db.Model(&model.Customer{}), pagination.Limit, pagination.Page)
	if err := query.Order("created_at desc").Find(&customers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       customers,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

func GetCustomerById(c *fiber.Ctx) error {
	customerId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing customer id"))
	}

	var customer model.Customer
	if err := database.DB.First(&customer, "id = ?", customerId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CUSTOMER_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

func UpdateCustomer(c *fiber.Ctx) error {
	customerId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing customer id"))
	}
	input, ok := c.Locals("customerUpdateInput").(*model.UpdateCustomerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	var customer model.Customer
	if err := database.DB.First(&customer, "id = ?", customerId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CUSTOMER_NOT_FOUND, err)
	}

	if input.Phone != nil && *input.Phone != customer.Phone {
		if !utils.IsValidPhone(*input.Phone) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("malformed phone number"))
		}
		phoneExists, err := helper.CheckByPhoneNumberCustomer(*input.Phone, &customer.ID)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if phoneExists {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.PHONE_ALREADY_EXISTS, errors.New("phone exists"))
		}
	}

	if err := copier.CopyWithOption(&customer, input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Save(&customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

func GetEmployees(c *fiber.Ctx) error {
	_, isAdmin := helper.GetInfoEmployeeFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
	}

	var employees []model.Employee
	if err := database.DB.Order("created_at desc").Find(&employees).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, employees)
}
