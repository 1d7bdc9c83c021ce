package services

import (
	"database/sql"
	"log"
	"time"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		var lastRun string
		for range ticker.C {
			now := time.Now()

			// Trigger once at 7:00 AM
			if now.Hour() == 7 && now.Minute() == 0 && lastRun != now.Format("2006-01-02") {
				lastRun = now.Format("2006-01-02")
				log.Println("Triggering scheduled tasks [07:00]...")

				if err := LogDefaulterSummary(db); err != nil {
					log.Printf("Error computing defaulter summary: %v", err)
				}
			}
		}
	}()
}

// LogDefaulterSummary logs a class-wise count of students with outstanding
// fees for the current academic year.
func LogDefaulterSummary(db *sql.DB) error {
	year, err := CurrentAcademicYear(db)
	if err != nil {
		if models.IsNotFound(err) {
			log.Println("No current academic year set, skipping defaulter summary")
			return nil
		}
		return err
	}

	classes, err := database.GetClassesByYear(db, year.ID)
	if err != nil {
		return err
	}

	for _, class := range classes {
		summary, err := FeeStatusForClass(db, class.ID)
		if err != nil {
			log.Printf("Defaulter summary failed for class %s: %v", class.Name, err)
			continue
		}
		log.Printf("[%s] class %s: %d students, %d paid, %d partial, %d pending, outstanding %s",
			year.Name, class.Name, summary.StudentCount, summary.PaidCount,
			summary.PartialCount, summary.PendingCount, summary.TotalOutstanding.StringFixed(2))
	}
	return nil
}
