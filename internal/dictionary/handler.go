package dictionary

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type ItemResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CategoryResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	TypeID uint   `json:"type_id"`
	Type   string `json:"type,omitempty"`
}

type SubcategoryResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	CategoryID uint   `json:"category_id"`
	Category   string `json:"category,omitempty"`
}

type DictionariesResponse struct {
	Statuses      []ItemResponse        `json:"statuses"`
	Types         []ItemResponse        `json:"types"`
	Categories    []CategoryResponse    `json:"categories"`
	Subcategories []SubcategoryResponse `json:"subcategories"`
}

type ItemRequest struct {
	Name       string `json:"name"`
	TypeID     *uint  `json:"type_id"`     // обязателен для категории
	CategoryID *uint  `json:"category_id"` // обязателен для подкатегории
}

// GET /api/dictionaries
// Все четыре справочника разом — страница управления справочниками
// показывает их рядом.
func ListDictionariesHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		statuses, err := store.ListStatuses()
		if err != nil {
			return err
		}
		types, err := store.ListTypes()
		if err != nil {
			return err
		}
		categories, err := store.ListCategories()
		if err != nil {
			return err
		}
		subcategories, err := store.ListSubcategories()
		if err != nil {
			return err
		}

		resp := DictionariesResponse{
			Statuses:      make([]ItemResponse, 0, len(statuses)),
			Types:         make([]ItemResponse, 0, len(types)),
			Categories:    make([]CategoryResponse, 0, len(categories)),
			Subcategories: make([]SubcategoryResponse, 0, len(subcategories)),
		}
		for _, st := range statuses {
			resp.Statuses = append(resp.Statuses, ItemResponse{ID: st.ID, Name: st.Name})
		}
		for _, t := range types {
			resp.Types = append(resp.Types, ItemResponse{ID: t.ID, Name: t.Name})
		}
		for _, cat := range categories {
			resp.Categories = append(resp.Categories, CategoryResponse{
				ID: cat.ID, Name: cat.Name, TypeID: cat.TypeID, Type: cat.Type.Name,
			})
		}
		for _, sub := range subcategories {
			resp.Subcategories = append(resp.Subcategories, SubcategoryResponse{
				ID: sub.ID, Name: sub.Name, CategoryID: sub.CategoryID, Category: sub.Category.Name,
			})
		}

		return c.JSON(resp)
	}
}

// POST /api/dictionaries/:kind
func CreateItemHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := ParseKind(c.Params("kind"))
		if err != nil {
			return err
		}

		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректное тело запроса")
		}

		switch kind {
		case KindStatus:
			st, err := store.CreateStatus(body.Name)
			if err != nil {
				return err
			}
			return c.Status(fiber.StatusCreated).JSON(ItemResponse{ID: st.ID, Name: st.Name})
		case KindType:
			t, err := store.CreateType(body.Name)
			if err != nil {
				return err
			}
			return c.Status(fiber.StatusCreated).JSON(ItemResponse{ID: t.ID, Name: t.Name})
		case KindCategory:
			if body.TypeID == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Для категории необходимо указать тип операции")
			}
			cat, err := store.CreateCategory(body.Name, *body.TypeID)
			if err != nil {
				return err
			}
			return c.Status(fiber.StatusCreated).JSON(CategoryResponse{ID: cat.ID, Name: cat.Name, TypeID: cat.TypeID})
		default:
			if body.CategoryID == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Для подкатегории необходимо указать категорию")
			}
			sub, err := store.CreateSubcategory(body.Name, *body.CategoryID)
			if err != nil {
				return err
			}
			return c.Status(fiber.StatusCreated).JSON(SubcategoryResponse{ID: sub.ID, Name: sub.Name, CategoryID: sub.CategoryID})
		}
	}
}

// PUT /api/dictionaries/:kind/:id
func UpdateItemHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := ParseKind(c.Params("kind"))
		if err != nil {
			return err
		}
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}

		var body ItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Некорректное тело запроса")
		}

		switch kind {
		case KindStatus:
			st, err := store.UpdateStatus(id, body.Name)
			if err != nil {
				return err
			}
			return c.JSON(ItemResponse{ID: st.ID, Name: st.Name})
		case KindType:
			t, err := store.UpdateType(id, body.Name)
			if err != nil {
				return err
			}
			return c.JSON(ItemResponse{ID: t.ID, Name: t.Name})
		case KindCategory:
			if body.TypeID == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Для категории необходимо указать тип операции")
			}
			cat, err := store.UpdateCategory(id, body.Name, *body.TypeID)
			if err != nil {
				return err
			}
			return c.JSON(CategoryResponse{ID: cat.ID, Name: cat.Name, TypeID: cat.TypeID})
		default:
			if body.CategoryID == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Для подкатегории необходимо указать категорию")
			}
			sub, err := store.UpdateSubcategory(id, body.Name, *body.CategoryID)
			if err != nil {
				return err
			}
			return c.JSON(SubcategoryResponse{ID: sub.ID, Name: sub.Name, CategoryID: sub.CategoryID})
		}
	}
}

// DELETE /api/dictionaries/:kind/:id
func DeleteItemHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := ParseKind(c.Params("kind"))
		if err != nil {
			return err
		}
		id, err := parseID(c.Params("id"))
		if err != nil {
			return err
		}
		if err := store.Delete(kind, id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/categories?type_id=...
// Каскадный селект: пустой или нечитаемый type_id даёт пустой список.
func LoadCategoriesHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items := make([]ItemResponse, 0)

		var typeID uint
		if _, err := fmt.Sscan(c.Query("type_id"), &typeID); err != nil || typeID == 0 {
			return c.JSON(items)
		}

		categories, err := store.CategoriesForType(typeID)
		if err != nil {
			return err
		}
		for _, cat := range categories {
			items = append(items, ItemResponse{ID: cat.ID, Name: cat.Name})
		}
		return c.JSON(items)
	}
}

// GET /api/subcategories?category_id=...
func LoadSubcategoriesHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items := make([]ItemResponse, 0)

		var categoryID uint
		if _, err := fmt.Sscan(c.Query("category_id"), &categoryID); err != nil || categoryID == 0 {
			return c.JSON(items)
		}

		subcategories, err := store.SubcategoriesForCategory(categoryID)
		if err != nil {
			return err
		}
		for _, sub := range subcategories {
			items = append(items, ItemResponse{ID: sub.ID, Name: sub.Name})
		}
		return c.JSON(items)
	}
}

func parseID(raw string) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(raw, &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Некорректный идентификатор")
	}
	return id, nil
}
