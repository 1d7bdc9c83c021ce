package database

import (
	"database/sql/driver"
	"errors"
	"log"
	"net"
	"time"

	"github.com/lib/pq"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

// backoffSchedule bounds retries of transient persistence failures.
// Validation and conflict failures are never retried.
var backoffSchedule = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	4 * time.Second,
	8 * time.Second,
	16 * time.Second,
}

// isRetryable reports whether err looks like a transient connectivity
// failure rather than a query or data problem.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// class 08: connection exception, class 57: operator intervention
		class := pqErr.Code.Class()
		return class == "08" || class == "57"
	}
	return false
}

// Retry runs fn, retrying transient connectivity failures with exponential
// backoff. After the attempts are exhausted the last error is surfaced as a
// DependencyError. Non-retryable errors pass through untouched on the
// first attempt.
func Retry(op string, fn func() error) error {
	var err error
	for attempt := 0; attempt < len(backoffSchedule); attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		log.Printf("Transient failure during %s (attempt %d/%d): %v", op, attempt+1, len(backoffSchedule), err)
		if attempt < len(backoffSchedule)-1 {
			time.Sleep(backoffSchedule[attempt])
		}
	}
	return models.NewDependencyError(op, err)
}
