package database

import (
	"log"

	"cashflow-backend/internal/config"
	"cashflow-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError: нарушение уникальности или внешнего ключа на коммите
	// должно приходить как gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated,
	// чтобы слой хранилищ перевёл его в тот же вид ошибки, что и предпроверка.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Не удалось подключиться к базе данных: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Ошибка миграции: %v", err)
	}

	if cfg.SeedDictionaries {
		if err := SeedDictionaries(DB); err != nil {
			log.Fatalf("Ошибка заполнения справочников: %v", err)
		}
	}

	log.Println("Подключение к базе данных установлено. Миграция выполнена.")
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Status{},
		&models.Type{},
		&models.Category{},
		&models.Subcategory{},
		&models.Transaction{},
	)
}
