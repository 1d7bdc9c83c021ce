package classes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/auth"
)

func SetupClassRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/classes", auth.AuthMiddleware)

	api.Get("/", ListClassesHandler(db))
	api.Post("/", CreateClassHandler(db))
}
