package transaction

import (
	"fmt"
	"strconv"
	"time"

	"cashflow-backend/internal/ledger"
	"cashflow-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Request struct {
	CreatedDate   *string         `json:"created_date"` // "ГГГГ-ММ-ДД", при создании пустая дата означает сегодня
	StatusID      uint            `json:"status_id"`
	TypeID        uint            `json:"type_id"`
	CategoryID    uint            `json:"category_id"`
	SubcategoryID uint            `json:"subcategory_id"`
	Amount        decimal.Decimal `json:"amount"`
	Comment       string          `json:"comment"`
}

type Response struct {
	ID            uint            `json:"id"`
	CreatedDate   string          `json:"created_date"`
	StatusID      uint            `json:"status_id"`
	Status        string          `json:"status"`
	TypeID        uint            `json:"type_id"`
	Type          string          `json:"type"`
	CategoryID    uint            `json:"category_id"`
	Category      string          `json:"category"`
	SubcategoryID uint            `json:"subcategory_id"`
	Subcategory   string          `json:"subcategory"`
	Amount        decimal.Decimal `json:"amount"`
	Comment       string          `json:"comment"`
}

// PaginatedResponse — стандартная форма постраничного ответа.
type PaginatedResponse struct {
	Data        []Response `json:"data"`
	TotalRows   int64      `json:"totalRows"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	PageSize    int        `json:"pageSize"`
}

type StatsResponse struct {
	TotalCount    int64          `json:"total_count"`
	FilteredCount int64          `json:"filtered_count"`
	Overall       *Totals        `json:"overall"`
	Filtered      *Totals        `json:"filtered"`
	TopCategories []CategoryStat `json:"top_categories"`
}

func toResponse(t *models.Transaction) Response {
	return Response{
		ID:            t.ID,
		CreatedDate:   t.CreatedDate.Format("2006-01-02"),
		StatusID:      t.StatusID,
		Status:        t.Status.Name,
		TypeID:        t.TypeID,
		Type:          t.Type.Name,
		CategoryID:    t.CategoryID,
		Category:      t.Category.Name,
		SubcategoryID: t.SubcategoryID,
		Subcategory:   t.Subcategory.Name,
		Amount:        t.Amount,
		Comment:       t.Comment,
	}
}

// GET /api/transactions?date_from=&date_to=&status=&type=&category=&subcategory=&page=
// Любой фильтр можно опустить. Нечитаемый номер страницы трактуется как
// первая страница, номер за пределами диапазона — как последняя.
func ListHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := parseFilter(c)
		if err != nil {
			return err
		}

		page, err := strconv.Atoi(c.Query("page"))
		if err != nil {
			page = 1
		}

		result, err := store.List(filter, page)
		if err != nil {
			return err
		}

		resp := PaginatedResponse{
			Data:        make([]Response, 0, len(result.Items)),
			TotalRows:   result.TotalRows,
			TotalPages:  result.TotalPages,
			CurrentPage: result.CurrentPage,
			PageSize:    result.PageSize,
		}
		for i := range result.Items {
			resp.Data = append(resp.Data, toResponse(&result.Items[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/transactions/stats
// Общая и отфильтрованная статистика отдаются вместе: интерфейс
// показывает их рядом.
func StatsHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := parseFilter(c)
		if err != nil {
			return err
		}

		totalCount, err := store.Count(Filter{})
		if err != nil {
			return err
		}
		filteredCount, err := store.Count(filter)
		if err != nil {
			return err
		}
		overall, err := store.Totals(Filter{})
		if err != nil {
			return err
		}
		filtered, err := store.Totals(filter)
		if err != nil {
			return err
		}
		top, err := store.TopCategories(filter, 10)
		if err != nil {
			return err
		}

		return c.JSON(StatsResponse{
			TotalCount:    totalCount,
			FilteredCount: filteredCount,
			Overall:       overall,
			Filtered:      filtered,
			TopCategories: top,
		})
	}
}

// GET /api/transactions/:id
func GetHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}
		t, err := store.Get(id)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(t))
	}
}

// POST /api/transactions
func CreateHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Request
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректное тело запроса")
		}

		fields, err := toFields(body)
		if err != nil {
			return err
		}
		t, err := store.Create(fields)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(t))
	}
}

// PUT /api/transactions/:id
func UpdateHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var body Request
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректное тело запроса")
		}

		fields, err := toFields(body)
		if err != nil {
			return err
		}
		t, err := store.Update(id, fields)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(t))
	}
}

// DELETE /api/transactions/:id
func DeleteHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}
		if err := store.Delete(id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func toFields(body Request) (Fields, error) {
	fields := Fields{
		StatusID:      body.StatusID,
		TypeID:        body.TypeID,
		CategoryID:    body.CategoryID,
		SubcategoryID: body.SubcategoryID,
		Amount:        body.Amount,
		Comment:       body.Comment,
	}
	if body.CreatedDate != nil && *body.CreatedDate != "" {
		d, err := time.Parse("2006-01-02", *body.CreatedDate)
		if err != nil {
			return Fields{}, ledger.New(ledger.KindValidation, "Неверный формат даты, ожидается 'ГГГГ-ММ-ДД'")
		}
		fields.CreatedDate = &d
	}
	return fields, nil
}

func parseFilter(c *fiber.Ctx) (Filter, error) {
	var f Filter

	if raw := c.Query("date_from"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return Filter{}, ledger.New(ledger.KindValidation, "Значение date_from должно быть датой в формате 'ГГГГ-ММ-ДД'")
		}
		f.DateFrom = &d
	}
	if raw := c.Query("date_to"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return Filter{}, ledger.New(ledger.KindValidation, "Значение date_to должно быть датой в формате 'ГГГГ-ММ-ДД'")
		}
		f.DateTo = &d
	}

	var err error
	if f.StatusID, err = parseFilterID(c.Query("status")); err != nil {
		return Filter{}, err
	}
	if f.TypeID, err = parseFilterID(c.Query("type")); err != nil {
		return Filter{}, err
	}
	if f.CategoryID, err = parseFilterID(c.Query("category")); err != nil {
		return Filter{}, err
	}
	if f.SubcategoryID, err = parseFilterID(c.Query("subcategory")); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func parseFilterID(raw string) (uint, error) {
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, ledger.New(ledger.KindValidation, "Некорректное значение фильтра: %q", raw)
	}
	return uint(id), nil
}

func parseID(raw string) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(raw, &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}
	return id, nil
}
