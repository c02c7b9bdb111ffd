package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	SellerID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name          string     `gorm:"type:varchar(255);not null"`
	Description   string     `gorm:"type:text"`
	NutritionInfo string     `gorm:"type:text"`
	Images        StringList `gorm:"type:json"`
	Price         float64    `gorm:"type:decimal(10,2);not null"`
	Unit          string     `gorm:"type:varchar(30);not null"`
	Quantity      int        `gorm:"not null;default:0"`
	Status        string     `gorm:"type:varchar(20);not null;default:'in_stock'"`
	PostedAt      time.Time  `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Seller *UserModel `gorm:"foreignKey:SellerID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
