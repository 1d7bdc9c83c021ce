package database

import (
	"database/sql"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// RunMigrations creates the schema if it does not exist yet and seeds the
// default admin login used by the auth collaborator.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			role VARCHAR(30) NOT NULL DEFAULT 'accountant',
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS academic_years (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT UNIQUE NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			transition_status VARCHAR(20) NOT NULL DEFAULT 'pending',
			previous_year_id UUID REFERENCES academic_years(id),
			next_year_id UUID REFERENCES academic_years(id),
			created_by UUID,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			CHECK (start_date < end_date)
		)`,

		// One-row table enforcing the single-current-year invariant at the
		// storage level. The CHECK pins the row id so a second row can
		// never be inserted.
		`CREATE TABLE IF NOT EXISTS current_academic_year (
			id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			academic_year_id UUID NOT NULL REFERENCES academic_years(id),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS classes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			academic_year_id UUID NOT NULL REFERENCES academic_years(id),
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ,
			UNIQUE (academic_year_id, name)
		)`,

		`CREATE TABLE IF NOT EXISTS fee_types (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT UNIQUE NOT NULL,
			category VARCHAR(20) NOT NULL CHECK (category IN ('school','bus','admission')),
			frequency VARCHAR(20) NOT NULL CHECK (frequency IN ('monthly','quarterly','annual')),
			is_monthly BOOLEAN DEFAULT false,
			is_for_new_students_only BOOLEAN DEFAULT false,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS fee_structure (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			academic_year_id UUID NOT NULL REFERENCES academic_years(id),
			class_id UUID NOT NULL REFERENCES classes(id),
			fee_type_id UUID NOT NULL REFERENCES fee_types(id),
			amount NUMERIC(12,2) NOT NULL CHECK (amount >= 0),
			due_date DATE NOT NULL,
			applicable_to_new_students_only BOOLEAN DEFAULT false,
			is_recurring_monthly BOOLEAN DEFAULT false,
			notes TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE (academic_year_id, class_id, fee_type_id)
		)`,

		`CREATE TABLE IF NOT EXISTS fee_structure_history (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			fee_structure_id UUID NOT NULL,
			academic_year_id UUID NOT NULL REFERENCES academic_years(id),
			class_id UUID NOT NULL,
			fee_type_id UUID NOT NULL,
			previous_amount NUMERIC(12,2) NOT NULL,
			new_amount NUMERIC(12,2) NOT NULL,
			changed_by UUID NOT NULL,
			changed_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS villages (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT UNIQUE NOT NULL,
			distance_from_school NUMERIC(6,2) DEFAULT 0,
			bus_number VARCHAR(20),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS bus_fee_structure (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			academic_year_id UUID NOT NULL REFERENCES academic_years(id),
			village_id UUID NOT NULL REFERENCES villages(id),
			fee_amount NUMERIC(12,2) NOT NULL CHECK (fee_amount >= 0),
			effective_from_date DATE NOT NULL,
			effective_to_date DATE NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			CHECK (effective_from_date < effective_to_date)
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			admission_number TEXT UNIQUE NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			class_id UUID NOT NULL REFERENCES classes(id),
			village_id UUID REFERENCES villages(id),
			has_school_bus BOOLEAN DEFAULT false,
			registration_type VARCHAR(20) NOT NULL DEFAULT 'continuing' CHECK (registration_type IN ('new','continuing')),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS fee_payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			academic_year_id UUID NOT NULL REFERENCES academic_years(id),
			amount_paid NUMERIC(12,2) NOT NULL CHECK (amount_paid > 0),
			payment_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			payment_method VARCHAR(20) NOT NULL,
			receipt_number TEXT UNIQUE NOT NULL,
			created_by UUID NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS payment_allocations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			payment_id UUID UNIQUE NOT NULL REFERENCES fee_payments(id) ON DELETE CASCADE,
			bus_fee_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			school_fee_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_fee_payments_student_year ON fee_payments (student_id, academic_year_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_structure_year_class ON fee_structure (academic_year_id, class_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bus_fee_year_village ON bus_fee_structure (academic_year_id, village_id)`,
		`CREATE INDEX IF NOT EXISTS idx_students_class ON students (class_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	if err := seedAdminUser(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// seedAdminUser creates the default admin login if no user exists yet.
func seedAdminUser(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin@dvhs"), 14)
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT INTO users (email, password, first_name, last_name, role)
		VALUES ($1, $2, 'System', 'Administrator', 'admin')`,
		"admin@dvhs.edu.in", string(hash))
	if err != nil {
		return err
	}
	log.Println("Seeded default admin user (admin@dvhs.edu.in)")
	return nil
}
