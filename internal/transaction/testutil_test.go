package transaction

import (
	"testing"
	"time"

	"cashflow-backend/internal/database"
	"cashflow-backend/internal/ledger"
	"cashflow-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fixture — минимальный набор справочников: по одной цепочке
// тип → категория → подкатегория для прихода и расхода.
type fixture struct {
	db      *gorm.DB
	store   *Store
	status  models.Status
	income  models.Type
	expense models.Type
	salary  models.Category    // под типом «Пополнение»
	food    models.Category    // под типом «Списание»
	advance models.Subcategory // под категорией «Зарплата»
	market  models.Subcategory // под категорией «Продукты»
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("не удалось открыть тестовую БД: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("не удалось получить соединение: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("миграция тестовой БД: %v", err)
	}

	f := &fixture{db: db, store: NewStore(db)}

	f.status = models.Status{Name: "Бизнес"}
	f.income = models.Type{Name: TypeIncome}
	f.expense = models.Type{Name: TypeExpense}
	for _, m := range []any{&f.status, &f.income, &f.expense} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("подготовка справочников: %v", err)
		}
	}

	f.salary = models.Category{Name: "Зарплата", TypeID: f.income.ID}
	f.food = models.Category{Name: "Продукты", TypeID: f.expense.ID}
	for _, m := range []any{&f.salary, &f.food} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("подготовка категорий: %v", err)
		}
	}

	f.advance = models.Subcategory{Name: "Аванс", CategoryID: f.salary.ID}
	f.market = models.Subcategory{Name: "Супермаркет", CategoryID: f.food.ID}
	for _, m := range []any{&f.advance, &f.market} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("подготовка подкатегорий: %v", err)
		}
	}

	return f
}

// incomeFields — валидные поля приходной транзакции.
func (f *fixture) incomeFields(amount string, day *time.Time) Fields {
	return Fields{
		CreatedDate:   day,
		StatusID:      f.status.ID,
		TypeID:        f.income.ID,
		CategoryID:    f.salary.ID,
		SubcategoryID: f.advance.ID,
		Amount:        decimal.RequireFromString(amount),
	}
}

func (f *fixture) expenseFields(amount string, day *time.Time) Fields {
	return Fields{
		CreatedDate:   day,
		StatusID:      f.status.ID,
		TypeID:        f.expense.ID,
		CategoryID:    f.food.ID,
		SubcategoryID: f.market.ID,
		Amount:        decimal.RequireFromString(amount),
	}
}

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func assertKind(t *testing.T, err error, kind ledger.Kind) {
	t.Helper()
	le, ok := ledger.AsError(err)
	if !ok {
		t.Fatalf("ожидалась ошибка вида %s, получено: %v", kind, err)
	}
	if le.Kind != kind {
		t.Fatalf("ожидался вид %s, получен %s (%s)", kind, le.Kind, le.Message)
	}
}
