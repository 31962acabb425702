package transaction

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/transactions/export
// Выгрузка отфильтрованного списка в xlsx. Принимает те же параметры
// фильтрации, что и список.
func ExportHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := parseFilter(c)
		if err != nil {
			return err
		}

		items, err := store.ListAll(filter)
		if err != nil {
			return err
		}

		file := excelize.NewFile()
		defer func() {
			if err := file.Close(); err != nil {
				log.Println("Не удалось закрыть xlsx-файл:", err)
			}
		}()

		const sheet = "Транзакции"
		if err := file.SetSheetName("Sheet1", sheet); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось сформировать файл")
		}

		headers := []string{"Дата", "Статус", "Тип", "Категория", "Подкатегория", "Сумма (руб)", "Комментарий"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := file.SetCellValue(sheet, cell, h); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Не удалось сформировать файл")
			}
		}

		for rowIdx, t := range items {
			amount, _ := t.Amount.Float64()
			values := []any{
				t.CreatedDate.Format("2006-01-02"),
				t.Status.Name,
				t.Type.Name,
				t.Category.Name,
				t.Subcategory.Name,
				amount,
				t.Comment,
			}
			for colIdx, v := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				if err := file.SetCellValue(sheet, cell, v); err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Не удалось сформировать файл")
				}
			}
		}

		buf, err := file.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Не удалось сформировать файл")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "transactions.xlsx"))
		return c.SendStream(buf)
	}
}
