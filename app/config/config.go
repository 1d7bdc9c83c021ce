package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB         *sql.DB
	Port       string
	SchoolName string
}

var AppConfig *Config

// LoadEnv loads a .env file if present; otherwise environment variables
// from the system are used as-is.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the PostgreSQL connection pool and fills AppConfig.
func InitDB() {
	host := getenv("DB_HOST", "localhost")
	port := getenv("DB_PORT", "5432")
	user := getenv("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	dbname := getenv("DB_NAME", "dvhs_fees")
	sslmode := getenv("DB_SSLMODE", "disable")

	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s connect_timeout=10",
		host, port, user, dbname, sslmode)
	if password != "" {
		psqlInfo += " password=" + password
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatalf("Cannot establish database connection: %v", err)
	}

	AppConfig = &Config{
		DB:         db,
		Port:       getenv("PORT", "8080"),
		SchoolName: getenv("SCHOOL_NAME", "DVHS"),
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
