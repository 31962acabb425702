package main

import (
	"log"
	"strings"

	"cashflow-backend/internal/auth"
	"cashflow-backend/internal/config"
	"cashflow-backend/internal/database"
	"cashflow-backend/internal/dictionary"
	"cashflow-backend/internal/ledger"
	"cashflow-backend/internal/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	dictStore := dictionary.NewStore(database.DB)
	txStore := transaction.NewStore(database.DB)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if le, ok := ledger.AsError(err); ok {
				return c.Status(ledger.HTTPStatus(le.Kind)).JSON(fiber.Map{
					"error": le.Message,
					"kind":  le.Kind,
				})
			}
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Непредвиденная ошибка:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Непредвиденная ошибка сервера",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Справочники
	protected.Get("/dictionaries", dictionary.ListDictionariesHandler(dictStore))
	protected.Post("/dictionaries/:kind", dictionary.CreateItemHandler(dictStore))
	protected.Put("/dictionaries/:kind/:id", dictionary.UpdateItemHandler(dictStore))
	protected.Delete("/dictionaries/:kind/:id", dictionary.DeleteItemHandler(dictStore))

	// Каскадные селекты формы транзакции
	protected.Get("/categories", dictionary.LoadCategoriesHandler(dictStore))
	protected.Get("/subcategories", dictionary.LoadSubcategoriesHandler(dictStore))

	// Транзакции
	protected.Get("/transactions", transaction.ListHandler(txStore))
	protected.Get("/transactions/stats", transaction.StatsHandler(txStore))
	protected.Get("/transactions/export", transaction.ExportHandler(txStore))
	protected.Get("/transactions/:id", transaction.GetHandler(txStore))
	protected.Post("/transactions", transaction.CreateHandler(txStore))
	protected.Put("/transactions/:id", transaction.UpdateHandler(txStore))
	protected.Delete("/transactions/:id", transaction.DeleteHandler(txStore))

	log.Println("Сервер запущен, порт:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
