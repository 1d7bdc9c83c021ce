package fees

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/auth"
)

func SetupFeesRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/fees", auth.AuthMiddleware)

	api.Get("/structure/:yearId", GetFeeStructureHandler(db))
	api.Put("/structure/:yearId", SetFeeStructureHandler(db))
	api.Get("/structure/:yearId/history", GetFeeStructureHistoryHandler(db))

	api.Get("/bus/:yearId", GetBusFeeStructureHandler(db))
	api.Put("/bus/:yearId", SetBusFeeStructureHandler(db))

	api.Get("/status/student/:id", GetStudentFeeStatusHandler(db))
	api.Get("/status/class/:id", GetClassFeeStatusHandler(db))
	api.Get("/defaulters/:classId", GetDefaultersHandler(db))

	api.Post("/carry-forward", CarryForwardHandler(db))
	api.Post("/carry-forward/bus", CarryForwardBusHandler(db))

	feeTypes := app.Group("/api/fee-types", auth.AuthMiddleware)
	feeTypes.Get("/", GetFeeTypesHandler(db))
	feeTypes.Post("/", CreateFeeTypeHandler(db))
}
