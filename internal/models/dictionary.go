package models

import "time"

// Справочники: статус, тип, категория, подкатегория.
// Удаление всегда RESTRICT — элемент с зависимостями удалить нельзя.

type Status struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Type struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Category — уникальность имени в пределах типа, не глобально.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;uniqueIndex:idx_categories_name_type"`
	TypeID    uint   `gorm:"not null;index;uniqueIndex:idx_categories_name_type"`
	Type      Type   `gorm:"constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subcategory — уникальность имени в пределах категории.
type Subcategory struct {
	ID         uint     `gorm:"primaryKey"`
	Name       string   `gorm:"size:100;not null;uniqueIndex:idx_subcategories_name_category"`
	CategoryID uint     `gorm:"not null;index;uniqueIndex:idx_subcategories_name_category"`
	Category   Category `gorm:"constraint:OnDelete:RESTRICT"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
