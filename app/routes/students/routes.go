package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/auth"
)

func SetupStudentRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/students", auth.AuthMiddleware)

	api.Get("/", ListStudentsHandler(db))
	api.Post("/", CreateStudentHandler(db))
	api.Get("/:id", GetStudentHandler(db))
}
