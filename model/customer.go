package model

import "time"

type Customer struct {
	DTO
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `gorm:"not null;unique" json:"email"`
	Phone     string     `json:"phoneNumber"`
	Address   string     `json:"address"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	Password  string     `json:"-"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
}

type Employee struct {
	DTO
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `gorm:"not null;unique" json:"email"`
	Phone     string     `json:"phoneNumber"`
	Address   string     `json:"address"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	Password  string     `json:"-"`
	IsAdmin   bool       `gorm:"default:false" json:"isAdmin"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
}

type RegisterCustomerInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phoneNumber"`
	Address   string `json:"address"`
	Password  string `json:"password" validate:"required,min=6"`
}

type UpdateCustomerInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phoneNumber"`
	Address   *string `json:"address"`
}

// PasswordResetToken: token một lần cho flow quên mật khẩu, hết hạn sau 1 giờ
type PasswordResetToken struct {
	DTO
	CustomerId uint      `gorm:"not null;index" json:"customerId"`
	Token      string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
