package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"nguyen.van.a@gmail.com",
		"a-b@shop.vn",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), "email %q", email)
	}

	invalid := []string{
		"",
		"useratexample.com",
		"user@",
		"@example.com",
		"user@example",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), "email %q", email)
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{
		"0912345678",
		"0321234567",
		"0987654321",
		"0561234567",
	}
	for _, phone := range valid {
		assert.True(t, IsValidPhone(phone), "phone %q", phone)
	}

	invalid := []string{
		"",
		"012345",
		"0123456789", // đầu số 12 không tồn tại
		"abcdefghij",
		"09123456789", // thừa một số
	}
	for _, phone := range invalid {
		assert.False(t, IsValidPhone(phone), "phone %q", phone)
	}
}

func TestIsValidValueOfConstant(t *testing.T) {
	statuses := []string{"WAITING", "APPROVED", "COMPLETED", "CANCELED"}

	assert.True(t, IsValidValueOfConstant("COMPLETED", statuses))
	assert.False(t, IsValidValueOfConstant("completed", statuses))
	assert.False(t, IsValidValueOfConstant("", statuses))
	assert.False(t, IsValidValueOfConstant("SHIPPED", nil))
}
