package academic

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/auth"
)

func SetupAcademicRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/academic", auth.AuthMiddleware)

	api.Get("/years", ListAcademicYearsHandler(db))
	api.Post("/years", CreateAcademicYearHandler(db))
	api.Get("/years/current", GetCurrentAcademicYearHandler(db))
	api.Get("/years/:id", GetAcademicYearHandler(db))
	api.Put("/years/:id/current", SetCurrentAcademicYearHandler(db))
	api.Put("/years/:id/transition", UpdateTransitionStatusHandler(db))
}
