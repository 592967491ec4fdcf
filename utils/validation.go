package utils

import "regexp"

// Regex theo đúng định dạng đơn hàng: email chuẩn, số di động Việt Nam
var (
	emailRegex = regexp.MustCompile(`^([\w-.]+@([\w-]+\.)+[\w-]{2,4})?$`)
	phoneRegex = regexp.MustCompile(`^(0?)(3[2-9]|5[689]|7[06-9]|8[0-689]|9[0-46-9])[0-9]{7}$`)
)

func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func IsValidValueOfConstant(value string, constantValues []string) bool {
	for _, v := range constantValues {
		if v == value {
			return true
		}
	}
	return false
}
