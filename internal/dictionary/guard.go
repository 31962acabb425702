package dictionary

import (
	"cashflow-backend/internal/ledger"
	"cashflow-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Проверки целостности перед изменяющими операциями. Все функции только
// читают состояние; вызывающая сторона обязана выполнять проверку и запись
// внутри одной транзакции БД, иначе между проверкой и записью возможна
// вставка зависимой строки.

// максимум 13 целых разрядов: сумма строго меньше 10^13
var maxAmount = decimal.New(1, 13)

// CanDelete возвращает ошибку ReferencedByDependents, если на элемент
// справочника ссылается хотя бы одна зависимая строка: на статус и
// подкатегорию — транзакции, на тип — категории и транзакции, на
// категорию — подкатегории и транзакции.
func CanDelete(tx *gorm.DB, kind Kind, id uint) error {
	var deps int64

	switch kind {
	case KindStatus:
		n, err := countWhere(tx, &models.Transaction{}, "status_id = ?", id)
		if err != nil {
			return err
		}
		deps = n
	case KindType:
		n, err := countWhere(tx, &models.Category{}, "type_id = ?", id)
		if err != nil {
			return err
		}
		m, err := countWhere(tx, &models.Transaction{}, "type_id = ?", id)
		if err != nil {
			return err
		}
		deps = n + m
	case KindCategory:
		n, err := countWhere(tx, &models.Subcategory{}, "category_id = ?", id)
		if err != nil {
			return err
		}
		m, err := countWhere(tx, &models.Transaction{}, "category_id = ?", id)
		if err != nil {
			return err
		}
		deps = n + m
	case KindSubcategory:
		n, err := countWhere(tx, &models.Transaction{}, "subcategory_id = ?", id)
		if err != nil {
			return err
		}
		deps = n
	}

	if deps > 0 {
		return dependentsError(kind)
	}
	return nil
}

func dependentsError(kind Kind) error {
	switch kind {
	case KindStatus:
		return ledger.New(ledger.KindReferencedByDependents, "Нельзя удалить статус, так как он используется в транзакциях!")
	case KindType:
		return ledger.New(ledger.KindReferencedByDependents, "Нельзя удалить тип, так как он используется в категориях или транзакциях!")
	case KindCategory:
		return ledger.New(ledger.KindReferencedByDependents, "Нельзя удалить категорию, так как она используется в подкатегориях или транзакциях!")
	default:
		return ledger.New(ledger.KindReferencedByDependents, "Нельзя удалить подкатегорию, так как она используется в транзакциях!")
	}
}

// ValidateChain проверяет согласованность цепочки тип → категория →
// подкатегория: категория должна принадлежать выбранному типу,
// подкатегория — выбранной категории. Отсутствующая категория или
// подкатегория — тоже рассогласование.
func ValidateChain(tx *gorm.DB, typeID, categoryID, subcategoryID uint) error {
	var cat models.Category
	if err := tx.First(&cat, "id = ?", categoryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ledger.New(ledger.KindChainMismatch, "Категория не принадлежит выбранному типу операции")
		}
		return err
	}
	if cat.TypeID != typeID {
		return ledger.New(ledger.KindChainMismatch, "Категория не принадлежит выбранному типу операции")
	}

	var sub models.Subcategory
	if err := tx.First(&sub, "id = ?", subcategoryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ledger.New(ledger.KindChainMismatch, "Подкатегория не принадлежит выбранной категории")
		}
		return err
	}
	if sub.CategoryID != categoryID {
		return ledger.New(ledger.KindChainMismatch, "Подкатегория не принадлежит выбранной категории")
	}
	return nil
}

// ValidateAmount: сумма строго больше нуля, не более двух знаков после
// запятой и не более 13 целых разрядов (numeric(15,2)).
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Cmp(decimal.Zero) <= 0 {
		return ledger.New(ledger.KindInvalidAmount, "Сумма должна быть больше нуля")
	}
	if amount.Exponent() < -2 {
		return ledger.New(ledger.KindInvalidAmount, "Сумма не может содержать больше двух знаков после запятой")
	}
	if amount.Cmp(maxAmount) >= 0 {
		return ledger.New(ledger.KindInvalidAmount, "Сумма слишком велика")
	}
	return nil
}

func countWhere(tx *gorm.DB, model any, query string, args ...any) (int64, error) {
	var n int64
	if err := tx.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
