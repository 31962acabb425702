package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction — запись о движении денежных средств. Все внешние ключи
// защищены от каскадного удаления (RESTRICT).
type Transaction struct {
	ID            uint            `gorm:"primaryKey"`
	CreatedDate   time.Time       `gorm:"type:date;index;not null"` // дата операции, без времени
	StatusID      uint            `gorm:"index;not null"`
	Status        Status          `gorm:"constraint:OnDelete:RESTRICT"`
	TypeID        uint            `gorm:"index;not null"`
	Type          Type            `gorm:"constraint:OnDelete:RESTRICT"`
	CategoryID    uint            `gorm:"index;not null"`
	Category      Category        `gorm:"constraint:OnDelete:RESTRICT"`
	SubcategoryID uint            `gorm:"index;not null"`
	Subcategory   Subcategory     `gorm:"constraint:OnDelete:RESTRICT"`
	Amount        decimal.Decimal `gorm:"type:numeric(15,2);not null"` // сумма в рублях
	Comment       string          `gorm:"size:500"`                    // опциональный комментарий
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
