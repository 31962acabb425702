package transaction

import (
	"math"
	"time"

	"cashflow-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const PageSize = 25

// Имена типов операций, по которым считается приход и расход.
const (
	TypeIncome  = "Пополнение"
	TypeExpense = "Списание"
)

// Filter — необязательные условия выборки, объединяются через AND.
// Нулевое значение поля означает «без ограничения»; фильтр по
// несуществующему id просто не находит строк.
type Filter struct {
	DateFrom      *time.Time
	DateTo        *time.Time
	StatusID      uint
	TypeID        uint
	CategoryID    uint
	SubcategoryID uint
}

func (f Filter) apply(q *gorm.DB) *gorm.DB {
	if f.DateFrom != nil {
		q = q.Where("transactions.created_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("transactions.created_date <= ?", *f.DateTo)
	}
	if f.StatusID != 0 {
		q = q.Where("transactions.status_id = ?", f.StatusID)
	}
	if f.TypeID != 0 {
		q = q.Where("transactions.type_id = ?", f.TypeID)
	}
	if f.CategoryID != 0 {
		q = q.Where("transactions.category_id = ?", f.CategoryID)
	}
	if f.SubcategoryID != 0 {
		q = q.Where("transactions.subcategory_id = ?", f.SubcategoryID)
	}
	return q
}

// Page — страница выборки вместе с данными пагинации.
type Page struct {
	Items       []models.Transaction
	TotalRows   int64
	TotalPages  int
	CurrentPage int
	PageSize    int
}

// List возвращает страницу отфильтрованных транзакций в порядке
// (дата операции убыв., id убыв.). Номер страницы с единицы; номер за
// пределами диапазона прижимается к последней странице, ноль и
// отрицательные — к первой.
func (s *Store) List(f Filter, page int) (*Page, error) {
	total, err := s.Count(f)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(PageSize)))

	// пустая выборка ведёт себя как одна страница
	last := totalPages
	if last < 1 {
		last = 1
	}
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}

	var items []models.Transaction
	err = f.apply(s.db.Model(&models.Transaction{})).
		Preload("Status").
		Preload("Type").
		Preload("Category").
		Preload("Subcategory").
		Order("created_date desc, id desc").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &Page{
		Items:       items,
		TotalRows:   total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    PageSize,
	}, nil
}

// ListAll — весь отфильтрованный набор без пагинации (для выгрузки).
func (s *Store) ListAll(f Filter) ([]models.Transaction, error) {
	var items []models.Transaction
	err := f.apply(s.db.Model(&models.Transaction{})).
		Preload("Status").
		Preload("Type").
		Preload("Category").
		Preload("Subcategory").
		Order("created_date desc, id desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) Count(f Filter) (int64, error) {
	var n int64
	if err := f.apply(s.db.Model(&models.Transaction{})).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Totals — приход, расход и баланс по набору фильтров. Отсутствие строк
// даёт нули, не null.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

func (s *Store) Totals(f Filter) (*Totals, error) {
	type row struct {
		TypeName string          `gorm:"column:type_name"`
		Total    decimal.Decimal `gorm:"column:total"`
	}
	var rows []row

	err := f.apply(s.db.Model(&models.Transaction{})).
		Select("types.name as type_name, COALESCE(SUM(transactions.amount), 0) as total").
		Joins("JOIN types ON types.id = transactions.type_id").
		Group("types.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	t := &Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, r := range rows {
		switch r.TypeName {
		case TypeIncome:
			t.Income = r.Total
		case TypeExpense:
			t.Expense = r.Total
		}
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t, nil
}

// CategoryStat — строка сводки «топ категорий»: группировка по
// (категория, тип), сортировка по сумме убыв., равные суммы — по id
// категории для стабильного порядка.
type CategoryStat struct {
	CategoryID  uint            `json:"category_id" gorm:"column:category_id"`
	Category    string          `json:"category" gorm:"column:category_name"`
	Type        string          `json:"type" gorm:"column:type_name"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"column:total_amount"`
	Count       int64           `json:"count" gorm:"column:cnt"`
}

func (s *Store) TopCategories(f Filter, limit int) ([]CategoryStat, error) {
	stats := make([]CategoryStat, 0)
	err := f.apply(s.db.Model(&models.Transaction{})).
		Select("categories.id as category_id, categories.name as category_name, types.name as type_name, SUM(transactions.amount) as total_amount, COUNT(transactions.id) as cnt").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Joins("JOIN types ON types.id = transactions.type_id").
		Group("categories.id, categories.name, types.name").
		Order("total_amount desc, category_id asc").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
