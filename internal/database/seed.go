package database

import (
	"cashflow-backend/internal/models"

	"gorm.io/gorm"
)

// Начальное наполнение справочников. Повторный запуск ничего не дублирует:
// каждая запись ищется по имени (и родителю) перед созданием.
func SeedDictionaries(db *gorm.DB) error {
	statuses := []string{"Бизнес", "Личное", "Налог"}
	for _, name := range statuses {
		if err := db.Where(models.Status{Name: name}).FirstOrCreate(&models.Status{}, models.Status{Name: name}).Error; err != nil {
			return err
		}
	}

	types := []string{"Пополнение", "Списание"}
	for _, name := range types {
		if err := db.Where(models.Type{Name: name}).FirstOrCreate(&models.Type{}, models.Type{Name: name}).Error; err != nil {
			return err
		}
	}

	incomeCategories := map[string][]string{
		"Зарплата":   {"Аванс", "Премия"},
		"Инвестиции": {"Акции", "Облигации", "Депозиты"},
		"Фриланс":    {"Разработка", "Дизайн", "Консультации"},
	}
	expenseCategories := map[string][]string{
		"Инфраструктура": {"VPS", "Proxy", "Хостинг", "Домены"},
		"Маркетинг":      {"Farpost", "Avito", "Контекстная реклама", "SMM"},
		"Продукты":       {"Супермаркет", "Рынок", "Доставка"},
		"Транспорт":      {"Бензин", "Общественный транспорт", "Такси"},
		"Развлечения":    {"Кино", "Рестораны", "Концерты"},
	}

	if err := seedCategoryTree(db, "Пополнение", incomeCategories); err != nil {
		return err
	}
	return seedCategoryTree(db, "Списание", expenseCategories)
}

func seedCategoryTree(db *gorm.DB, typeName string, tree map[string][]string) error {
	var t models.Type
	if err := db.First(&t, "name = ?", typeName).Error; err != nil {
		return err
	}

	for catName, subcats := range tree {
		var cat models.Category
		if err := db.Where(models.Category{Name: catName, TypeID: t.ID}).
			FirstOrCreate(&cat, models.Category{Name: catName, TypeID: t.ID}).Error; err != nil {
			return err
		}
		for _, subName := range subcats {
			if err := db.Where(models.Subcategory{Name: subName, CategoryID: cat.ID}).
				FirstOrCreate(&models.Subcategory{}, models.Subcategory{Name: subName, CategoryID: cat.ID}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
