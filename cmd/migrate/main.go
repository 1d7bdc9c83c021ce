package main

import (
	"log"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/config"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
)

// Applies the schema migrations and seeds the initial admin user, then
// exits. The server runs the same migrations at startup; this command
// exists for provisioning a database ahead of a deploy.
func main() {
	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	log.Println("Running migrations...")
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Println("Migrations completed successfully")
}
