package payments

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/auth"
)

func SetupPaymentRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/payments", auth.AuthMiddleware)

	api.Post("/", RecordPaymentHandler(db))
	api.Get("/student/:id", GetStudentPaymentsHandler(db))
	api.Delete("/:id", DeletePaymentHandler(db))
}
