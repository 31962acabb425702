package dictionary

import (
	"errors"
	"strings"
	"unicode/utf8"

	"cashflow-backend/internal/ledger"
	"cashflow-backend/internal/models"

	"gorm.io/gorm"
)

// Store — хранилище четырёх справочников. Каждая изменяющая операция
// выполняет предпроверки и запись в одной транзакции БД; нарушение
// constraint'а на коммите переводится в тот же вид ошибки, что и
// предпроверка.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateStatus(name string) (*models.Status, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	st := models.Status{Name: name}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		n, err := countWhere(tx, &models.Status{}, "name = ?", name)
		if err != nil {
			return err
		}
		if n > 0 {
			return dupError(KindStatus)
		}
		return translateWriteErr(tx.Create(&st).Error, KindStatus)
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) CreateType(name string) (*models.Type, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	t := models.Type{Name: name}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		n, err := countWhere(tx, &models.Type{}, "name = ?", name)
		if err != nil {
			return err
		}
		if n > 0 {
			return dupError(KindType)
		}
		return translateWriteErr(tx.Create(&t).Error, KindType)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) CreateCategory(name string, typeID uint) (*models.Category, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	cat := models.Category{Name: name, TypeID: typeID}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Type{}, "id = ?", typeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return parentError(KindCategory)
			}
			return err
		}
		n, err := countWhere(tx, &models.Category{}, "name = ? AND type_id = ?", name, typeID)
		if err != nil {
			return err
		}
		if n > 0 {
			return dupError(KindCategory)
		}
		return translateWriteErr(tx.Create(&cat).Error, KindCategory)
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *Store) CreateSubcategory(name string, categoryID uint) (*models.Subcategory, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	sub := models.Subcategory{Name: name, CategoryID: categoryID}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Category{}, "id = ?", categoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return parentError(KindSubcategory)
			}
			return err
		}
		n, err := countWhere(tx, &models.Subcategory{}, "name = ? AND category_id = ?", name, categoryID)
		if err != nil {
			return err
		}
		if n > 0 {
			return dupError(KindSubcategory)
		}
		return translateWriteErr(tx.Create(&sub).Error, KindSubcategory)
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Store) UpdateStatus(id uint, name string) (*models.Status, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	var st models.Status
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&st, "id = ?", id).Error; err != nil {
			return notFoundErr(err)
		}
		n, err := countWhere(tx, &models.Status{}, "name = ? AND id <> ?", name, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return dupError(KindStatus)
		}
		st.Name = name
		return translateWriteErr(tx.Save(&st).Error, KindStatus)
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) UpdateType(id uint, name string) (*models.Type, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	var t models.Type
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			return notFoundErr(err)
		}
		n, err := countWhere(tx, &models.Type{}, "name = ? AND id <> ?", name, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return dupError(KindType)
		}
		t.Name = name
		return translateWriteErr(tx.Save(&t).Error, KindType)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateCategory переименовывает категорию и может перенести её под другой
// тип. Уникальность имени проверяется в пределах нового родителя.
func (s *Store) UpdateCategory(id uint, name string, typeID uint) (*models.Category, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	var cat models.Category
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cat, "id = ?", id).Error; err != nil {
			return notFoundErr(err)
		}
		if err := tx.First(&models.Type{}, "id = ?", typeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return parentError(KindCategory)
			}
			return err
		}
		n, err := countWhere(tx, &models.Category{}, "name = ? AND type_id = ? AND id <> ?", name, typeID, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return dupError(KindCategory)
		}
		cat.Name = name
		cat.TypeID = typeID
		return translateWriteErr(tx.Save(&cat).Error, KindCategory)
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *Store) UpdateSubcategory(id uint, name string, categoryID uint) (*models.Subcategory, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	var sub models.Subcategory
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sub, "id = ?", id).Error; err != nil {
			return notFoundErr(err)
		}
		if err := tx.First(&models.Category{}, "id = ?", categoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return parentError(KindSubcategory)
			}
			return err
		}
		n, err := countWhere(tx, &models.Subcategory{}, "name = ? AND category_id = ? AND id <> ?", name, categoryID, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return dupError(KindSubcategory)
		}
		sub.Name = name
		sub.CategoryID = categoryID
		return translateWriteErr(tx.Save(&sub).Error, KindSubcategory)
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Delete — защищённое удаление: элемент с зависимыми строками удалить
// нельзя, каскадов нет.
func (s *Store) Delete(kind Kind, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var target any
		switch kind {
		case KindStatus:
			target = &models.Status{}
		case KindType:
			target = &models.Type{}
		case KindCategory:
			target = &models.Category{}
		case KindSubcategory:
			target = &models.Subcategory{}
		default:
			return ledger.New(ledger.KindValidation, "Неверный тип справочника: %q", string(kind))
		}

		if err := tx.First(target, "id = ?", id).Error; err != nil {
			return notFoundErr(err)
		}
		if err := CanDelete(tx, kind, id); err != nil {
			return err
		}
		if err := tx.Delete(target).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return dependentsError(kind)
			}
			return err
		}
		return nil
	})
}

func (s *Store) ListStatuses() ([]models.Status, error) {
	var statuses []models.Status
	if err := s.db.Order("name asc").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (s *Store) ListTypes() ([]models.Type, error) {
	var types []models.Type
	if err := s.db.Order("name asc").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (s *Store) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Joins("Type").
		Order(`"Type"."name" asc, "categories"."name" asc`).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Store) ListSubcategories() ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	err := s.db.Joins("Category").
		Order(`"Category"."name" asc, "subcategories"."name" asc`).
		Find(&subcategories).Error
	if err != nil {
		return nil, err
	}
	return subcategories, nil
}

// CategoriesForType — категории выбранного типа для каскадного селекта.
// Несуществующий или пустой тип даёт пустой список, не ошибку.
func (s *Store) CategoriesForType(typeID uint) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := s.db.Where("type_id = ?", typeID).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// SubcategoriesForCategory — подкатегории выбранной категории.
func (s *Store) SubcategoriesForCategory(categoryID uint) ([]models.Subcategory, error) {
	subcategories := make([]models.Subcategory, 0)
	if err := s.db.Where("category_id = ?", categoryID).Order("name asc").Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ledger.New(ledger.KindValidation, "Название обязательно")
	}
	if utf8.RuneCountInString(name) > 100 {
		return "", ledger.New(ledger.KindValidation, "Название не может быть длиннее 100 символов")
	}
	return name, nil
}

func dupError(kind Kind) error {
	switch kind {
	case KindStatus:
		return ledger.New(ledger.KindDuplicateName, "Статус с таким названием уже существует")
	case KindType:
		return ledger.New(ledger.KindDuplicateName, "Тип операции с таким названием уже существует")
	case KindCategory:
		return ledger.New(ledger.KindDuplicateName, "Категория с таким названием уже существует для выбранного типа")
	default:
		return ledger.New(ledger.KindDuplicateName, "Подкатегория с таким названием уже существует для выбранной категории")
	}
}

func parentError(kind Kind) error {
	if kind == KindCategory {
		return ledger.New(ledger.KindInvalidParent, "Указанный тип операции не найден")
	}
	return ledger.New(ledger.KindInvalidParent, "Указанная категория не найдена")
}

func notFoundErr(err error) error {
	if err == gorm.ErrRecordNotFound {
		return ledger.New(ledger.KindNotFound, "Элемент справочника не найден")
	}
	return err
}

// translateWriteErr переводит нарушение constraint'а, пойманное уже на
// коммите (гонка с параллельной записью), в тот же вид ошибки, что и
// предпроверка.
func translateWriteErr(err error, kind Kind) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return dupError(kind)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return parentError(kind)
	}
	return err
}
