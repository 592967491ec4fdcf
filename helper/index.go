package helper

import (
	"errors"
	"fmt"
	"os"
	"time"

	"shop_manager/database"
	"shop_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetCustomerByEmail(e string) (*model.Customer, error) {
	db := database.DB
	var customer model.Customer
	if err := db.Where(&model.Customer{Email: e}).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func GetEmployeeByEmail(e string) (*model.Employee, error) {
	db := database.DB
	var employee model.Employee
	if err := db.Where(&model.Employee{Email: e}).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["email"] = tokenClaim.Email
	claims["customerId"] = tokenClaim.CustomerId
	claims["employeeId"] = tokenClaim.EmployeeId
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["email"] = tokenClaim.Email
	claims["customerId"] = tokenClaim.CustomerId
	claims["employeeId"] = tokenClaim.EmployeeId
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Xác thực thuật toán ký là HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})

	return token, err
}

// GetInfoCustomerFromToken lấy claim từ token đã qua middleware, kèm customer trong DB nếu có
func GetInfoCustomerFromToken(c *fiber.Ctx) (model.TokenClaim, model.Customer) {
	var claim model.TokenClaim
	var customer model.Customer

	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return claim, customer
	}
	tokenClaim, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return claim, customer
	}

	if v, ok := tokenClaim["customerId"].(float64); ok {
		claim.CustomerId = uint(v)
	}
	if v, ok := tokenClaim["employeeId"].(float64); ok {
		claim.EmployeeId = uint(v)
	}
	if v, ok := tokenClaim["email"].(string); ok {
		claim.Email = v
	}

	if claim.CustomerId > 0 {
		database.DB.First(&customer, "id = ?", claim.CustomerId)
	}

	return claim, customer
}

// GetInfoEmployeeFromToken trả về claim và cờ admin cho các endpoint quản trị
func GetInfoEmployeeFromToken(c *fiber.Ctx) (model.TokenClaim, bool) {
	var claim model.TokenClaim

	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return claim, false
	}
	tokenClaim, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return claim, false
	}

	if v, ok := tokenClaim["employeeId"].(float64); ok {
		claim.EmployeeId = uint(v)
	}
	if v, ok := tokenClaim["email"].(string); ok {
		claim.Email = v
	}

	if claim.EmployeeId == 0 {
		return claim, false
	}

	var employee model.Employee
	if err := database.DB.First(&employee, "id = ?", claim.EmployeeId).Error; err != nil {
		return claim, false
	}
	return claim, employee.IsAdmin && employee.IsActive
}
