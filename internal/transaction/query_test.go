package transaction

import (
	"testing"
	"time"

	"cashflow-backend/internal/models"

	"github.com/shopspring/decimal"
)

func TestListDateRangeAndOrdering(t *testing.T) {
	f := newFixture(t)

	mustCreate := func(fields Fields) uint {
		t.Helper()
		created, err := f.store.Create(fields)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		return created.ID
	}

	dec := mustCreate(f.incomeFields("10.00", day(2023, time.December, 31)))
	jan5 := mustCreate(f.incomeFields("20.00", day(2024, time.January, 5)))
	jan20a := mustCreate(f.expenseFields("30.00", day(2024, time.January, 20)))
	jan20b := mustCreate(f.expenseFields("40.00", day(2024, time.January, 20)))
	feb := mustCreate(f.incomeFields("50.00", day(2024, time.February, 1)))

	from := *day(2024, time.January, 1)
	to := *day(2024, time.January, 31)
	page, err := f.store.List(Filter{DateFrom: &from, DateTo: &to}, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if page.TotalRows != 3 {
		t.Fatalf("в январе должно быть 3 записи, найдено %d", page.TotalRows)
	}
	// (дата убыв., id убыв.): обе записи за 20-е, новая раньше
	wantOrder := []uint{jan20b, jan20a, jan5}
	for i, want := range wantOrder {
		if page.Items[i].ID != want {
			t.Fatalf("позиция %d: id %d, ожидался %d", i, page.Items[i].ID, want)
		}
	}
	for _, item := range page.Items {
		if item.ID == dec || item.ID == feb {
			t.Error("запись вне диапазона попала в выборку")
		}
	}
}

func TestListPaginationClamp(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 30; i++ {
		if _, err := f.store.Create(f.incomeFields("10.00", day(2024, time.January, 1+i%28))); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}

	page1, err := f.store.List(Filter{}, 1)
	if err != nil {
		t.Fatalf("List(1): %v", err)
	}
	if len(page1.Items) != 25 || page1.TotalRows != 30 || page1.TotalPages != 2 {
		t.Fatalf("страница 1: %d строк, всего %d, страниц %d", len(page1.Items), page1.TotalRows, page1.TotalPages)
	}

	page2, err := f.store.List(Filter{}, 2)
	if err != nil {
		t.Fatalf("List(2): %v", err)
	}
	if len(page2.Items) != 5 || page2.CurrentPage != 2 {
		t.Fatalf("страница 2: %d строк, текущая %d", len(page2.Items), page2.CurrentPage)
	}

	// номер за пределами диапазона прижимается к последней странице
	page99, err := f.store.List(Filter{}, 99)
	if err != nil {
		t.Fatalf("List(99): %v", err)
	}
	if page99.CurrentPage != 2 || len(page99.Items) != 5 {
		t.Fatalf("страница 99 должна стать страницей 2, получено %d (%d строк)", page99.CurrentPage, len(page99.Items))
	}

	// ноль и отрицательные — первая страница
	page0, err := f.store.List(Filter{}, 0)
	if err != nil {
		t.Fatalf("List(0): %v", err)
	}
	if page0.CurrentPage != 1 || len(page0.Items) != 25 {
		t.Fatalf("страница 0 должна стать страницей 1, получено %d", page0.CurrentPage)
	}
}

func TestListEmpty(t *testing.T) {
	f := newFixture(t)

	page, err := f.store.List(Filter{}, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalRows != 0 || page.TotalPages != 0 || page.CurrentPage != 1 || len(page.Items) != 0 {
		t.Fatalf("пустая выборка: %+v", page)
	}
}

func TestListEmptyPageClamp(t *testing.T) {
	f := newFixture(t)

	// пустая выборка ведёт себя как одна страница: запредельный номер
	// прижимается к первой
	page, err := f.store.List(Filter{}, 99)
	if err != nil {
		t.Fatalf("List(99): %v", err)
	}
	if page.CurrentPage != 1 || page.TotalRows != 0 || len(page.Items) != 0 {
		t.Fatalf("страница 99 пустой выборки должна стать страницей 1, получено %d", page.CurrentPage)
	}
}

func TestFilterByUnknownID(t *testing.T) {
	f := newFixture(t)

	if _, err := f.store.Create(f.incomeFields("10.00", nil)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// фильтр по несуществующему статусу — ноль строк, не ошибка
	page, err := f.store.List(Filter{StatusID: 9999}, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalRows != 0 {
		t.Fatalf("ожидалось 0 строк, найдено %d", page.TotalRows)
	}
}

func TestTotals(t *testing.T) {
	f := newFixture(t)

	empty, err := f.store.Totals(Filter{})
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if !empty.Income.IsZero() || !empty.Expense.IsZero() || !empty.Balance.IsZero() {
		t.Fatalf("без транзакций все суммы должны быть нулями: %+v", empty)
	}

	if _, err := f.store.Create(f.incomeFields("100.00", day(2024, time.January, 1))); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.store.Create(f.expenseFields("40.00", day(2024, time.February, 1))); err != nil {
		t.Fatalf("Create: %v", err)
	}

	totals, err := f.store.Totals(Filter{})
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if !totals.Income.Equal(decimal.RequireFromString("100")) {
		t.Errorf("приход %s", totals.Income)
	}
	if !totals.Expense.Equal(decimal.RequireFromString("40")) {
		t.Errorf("расход %s", totals.Expense)
	}
	if !totals.Balance.Equal(decimal.RequireFromString("60")) {
		t.Errorf("баланс %s", totals.Balance)
	}

	// отфильтрованная статистика считается по той же выборке, что и список
	from := *day(2024, time.February, 1)
	filtered, err := f.store.Totals(Filter{DateFrom: &from})
	if err != nil {
		t.Fatalf("Totals(фильтр): %v", err)
	}
	if !filtered.Income.IsZero() || !filtered.Expense.Equal(decimal.RequireFromString("40")) {
		t.Errorf("фильтрованные итоги: %+v", filtered)
	}
	if !filtered.Balance.Equal(decimal.RequireFromString("-40")) {
		t.Errorf("фильтрованный баланс %s", filtered.Balance)
	}
}

func TestTopCategories(t *testing.T) {
	f := newFixture(t)

	// вторая расходная категория, чтобы было что ранжировать
	taxi := addExpenseCategory(t, f, "Транспорт", "Такси")

	for i := 0; i < 3; i++ {
		if _, err := f.store.Create(f.expenseFields("100.00", day(2024, time.January, 1+i))); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := f.store.Create(taxi("500.00", day(2024, time.January, 10))); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.store.Create(f.incomeFields("50.00", day(2024, time.January, 15))); err != nil {
		t.Fatalf("Create: %v", err)
	}

	stats, err := f.store.TopCategories(Filter{}, 10)
	if err != nil {
		t.Fatalf("TopCategories: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("ожидалось 3 группы, получено %d", len(stats))
	}

	if stats[0].Category != "Транспорт" || !stats[0].TotalAmount.Equal(decimal.RequireFromString("500")) || stats[0].Count != 1 {
		t.Errorf("первая строка: %+v", stats[0])
	}
	if stats[1].Category != "Продукты" || !stats[1].TotalAmount.Equal(decimal.RequireFromString("300")) || stats[1].Count != 3 {
		t.Errorf("вторая строка: %+v", stats[1])
	}
	if stats[2].Category != "Зарплата" || stats[2].Type != TypeIncome {
		t.Errorf("третья строка: %+v", stats[2])
	}

	// limit ограничивает выдачу
	top1, err := f.store.TopCategories(Filter{}, 1)
	if err != nil {
		t.Fatalf("TopCategories(1): %v", err)
	}
	if len(top1) != 1 || top1[0].Category != "Транспорт" {
		t.Fatalf("limit=1: %+v", top1)
	}
}

// addExpenseCategory добавляет расходную категорию с подкатегорией и
// возвращает конструктор полей транзакции для неё.
func addExpenseCategory(t *testing.T, f *fixture, catName, subName string) func(amount string, d *time.Time) Fields {
	t.Helper()

	cat := models.Category{Name: catName, TypeID: f.expense.ID}
	if err := f.db.Create(&cat).Error; err != nil {
		t.Fatalf("подготовка категории: %v", err)
	}
	sub := models.Subcategory{Name: subName, CategoryID: cat.ID}
	if err := f.db.Create(&sub).Error; err != nil {
		t.Fatalf("подготовка подкатегории: %v", err)
	}

	return func(amount string, d *time.Time) Fields {
		fields := f.expenseFields(amount, d)
		fields.CategoryID = cat.ID
		fields.SubcategoryID = sub.ID
		return fields
	}
}
