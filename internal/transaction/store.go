package transaction

import (
	"errors"
	"time"
	"unicode/utf8"

	"cashflow-backend/internal/dictionary"
	"cashflow-backend/internal/ledger"
	"cashflow-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store — хранилище транзакций. Проверка цепочки тип → категория →
// подкатегория, проверка суммы и сама запись выполняются в одной
// транзакции БД.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Fields — поля транзакции, уже приведённые к типам граничным слоем.
// CreatedDate nil при создании означает «сегодня», при обновлении —
// «оставить как было».
type Fields struct {
	CreatedDate   *time.Time
	StatusID      uint
	TypeID        uint
	CategoryID    uint
	SubcategoryID uint
	Amount        decimal.Decimal
	Comment       string
}

func (s *Store) Create(f Fields) (*models.Transaction, error) {
	if err := validateFields(f); err != nil {
		return nil, err
	}

	t := models.Transaction{
		StatusID:      f.StatusID,
		TypeID:        f.TypeID,
		CategoryID:    f.CategoryID,
		SubcategoryID: f.SubcategoryID,
		Amount:        f.Amount,
		Comment:       f.Comment,
	}
	if f.CreatedDate != nil {
		t.CreatedDate = dateOnly(*f.CreatedDate)
	} else {
		t.CreatedDate = dateOnly(time.Now())
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkStatusExists(tx, f.StatusID); err != nil {
			return err
		}
		if err := dictionary.ValidateChain(tx, f.TypeID, f.CategoryID, f.SubcategoryID); err != nil {
			return err
		}
		return translateWriteErr(tx.Create(&t).Error)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(t.ID)
}

// Update заменяет все поля записи и заново проверяет согласованность
// цепочки. Дата операции меняется только если передана явно.
func (s *Store) Update(id uint, f Fields) (*models.Transaction, error) {
	if err := validateFields(f); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var t models.Transaction
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			return notFoundErr(err)
		}
		if err := checkStatusExists(tx, f.StatusID); err != nil {
			return err
		}
		if err := dictionary.ValidateChain(tx, f.TypeID, f.CategoryID, f.SubcategoryID); err != nil {
			return err
		}

		t.StatusID = f.StatusID
		t.TypeID = f.TypeID
		t.CategoryID = f.CategoryID
		t.SubcategoryID = f.SubcategoryID
		t.Amount = f.Amount
		t.Comment = f.Comment
		if f.CreatedDate != nil {
			t.CreatedDate = dateOnly(*f.CreatedDate)
		}
		return translateWriteErr(tx.Save(&t).Error)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *Store) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var t models.Transaction
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			return notFoundErr(err)
		}
		return tx.Delete(&t).Error
	})
}

func (s *Store) Get(id uint) (*models.Transaction, error) {
	var t models.Transaction
	err := s.db.
		Preload("Status").
		Preload("Type").
		Preload("Category").
		Preload("Subcategory").
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, notFoundErr(err)
	}
	return &t, nil
}

func validateFields(f Fields) error {
	if f.StatusID == 0 || f.TypeID == 0 || f.CategoryID == 0 || f.SubcategoryID == 0 {
		return ledger.New(ledger.KindValidation, "Статус, тип, категория и подкатегория обязательны")
	}
	if err := dictionary.ValidateAmount(f.Amount); err != nil {
		return err
	}
	if utf8.RuneCountInString(f.Comment) > 500 {
		return ledger.New(ledger.KindValidation, "Комментарий не может быть длиннее 500 символов")
	}
	return nil
}

func checkStatusExists(tx *gorm.DB, statusID uint) error {
	if err := tx.First(&models.Status{}, "id = ?", statusID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ledger.New(ledger.KindValidation, "Указанный статус не найден")
		}
		return err
	}
	return nil
}

func notFoundErr(err error) error {
	if err == gorm.ErrRecordNotFound {
		return ledger.New(ledger.KindNotFound, "Транзакция не найдена")
	}
	return err
}

// Нарушение внешнего ключа на коммите означает, что элемент справочника
// удалили между проверкой и записью.
func translateWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ledger.New(ledger.KindValidation, "Указанный элемент справочника не найден")
	}
	return err
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
