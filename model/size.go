package model

// Size là tài liệu tồn kho theo kích thước, được Product tham chiếu qua SizeID
type Size struct {
	DTO
	ProductName string       `gorm:"not null" json:"productName"`
	Sizes       []SizeDetail `gorm:"foreignKey:SizeID" json:"sizes"`
}

type SizeDetail struct {
	DTO
	SizeID uint   `gorm:"not null;index" json:"-"`
	Size   string `json:"size"` // Nhãn kích thước (S, M, L, 39, 40...)
	Stock  int    `gorm:"default:0" json:"stock"`
}
