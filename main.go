package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/config"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/academic"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/auth"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/classes"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/fees"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/payments"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/students"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/routes/transport"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/services"
)

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// All due dates and receipts are kept in school-local time
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Printf("Warning: Failed to load Asia/Kolkata location, falling back to UTC+5:30: %v", err)
		time.Local = time.FixedZone("IST", 5*3600+30*60)
	} else {
		time.Local = loc
	}
	log.Printf("Application time zone set to: %s", time.Local.String())

	config.LoadEnv()
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Daily defaulter summary
	services.StartScheduler(config.GetDB())

	app := fiber.New(fiber.Config{
		AppName:      config.AppConfig.SchoolName + " Fees Management",
		ErrorHandler: errorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := config.GetDB().Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	db := config.GetDB()
	auth.SetupAuthRoutes(app)
	academic.SetupAcademicRoutes(app, db)
	classes.SetupClassRoutes(app, db)
	students.SetupStudentRoutes(app, db)
	transport.SetupTransportRoutes(app, db)
	fees.SetupFeesRoutes(app, db)
	payments.SetupPaymentRoutes(app, db)

	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	addr := ":" + config.AppConfig.Port
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
