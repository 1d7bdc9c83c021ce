package transport

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/auth"
)

func SetupTransportRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/villages", auth.AuthMiddleware)

	api.Get("/", GetVillagesHandler(db))
	api.Post("/", CreateVillageHandler(db))
}
