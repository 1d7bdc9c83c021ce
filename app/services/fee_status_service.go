package services

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/database"
	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

// classStatusWorkers bounds the fan-out of per-student computations for a
// class-wide report.
const classStatusWorkers = 8

// ComputeFeeStatus derives one student's fee position for a year from the
// fee catalog and payment ledger. It is a pure function: identical inputs
// always produce identical output and nothing is written.
//
// yearItems may span the whole year; only lines for the student's class
// count. Payments carrying no allocation record are attributed entirely to
// school fees.
func ComputeFeeStatus(student *models.Student, yearID string, yearItems []*models.FeeStructureItem, busFee *decimal.Decimal, payments []*models.Payment) *models.FeeStatus {
	totalSchool := decimal.Zero
	for _, item := range yearItems {
		if item.ClassID != student.ClassID {
			continue
		}
		if !item.AppliesTo(student.RegistrationType) {
			continue
		}
		totalSchool = totalSchool.Add(item.Amount)
	}

	totalBus := decimal.Zero
	if student.HasSchoolBus && student.VillageID != nil && busFee != nil {
		totalBus = *busFee
	}

	paidSchool := decimal.Zero
	paidBus := decimal.Zero
	var lastPayment *time.Time
	for _, p := range payments {
		if p.Allocation != nil {
			paidSchool = paidSchool.Add(p.Allocation.SchoolFeeAmount)
			paidBus = paidBus.Add(p.Allocation.BusFeeAmount)
		} else {
			paidSchool = paidSchool.Add(p.AmountPaid)
		}
		if lastPayment == nil || p.PaymentDate.After(*lastPayment) {
			d := p.PaymentDate
			lastPayment = &d
		}
	}

	totalFees := totalSchool.Add(totalBus)
	totalPaid := paidSchool.Add(paidBus)

	status := models.StatusPending
	switch {
	case totalFees.GreaterThan(decimal.Zero) && totalPaid.GreaterThanOrEqual(totalFees):
		status = models.StatusPaid
	case totalPaid.GreaterThan(decimal.Zero) && totalPaid.LessThan(totalFees):
		status = models.StatusPartial
	}

	return &models.FeeStatus{
		StudentID:         student.ID,
		StudentName:       student.FullName(),
		ClassID:           student.ClassID,
		AcademicYearID:    yearID,
		TotalSchoolFees:   totalSchool,
		TotalBusFees:      totalBus,
		TotalFees:         totalFees,
		PaidSchoolFees:    paidSchool,
		PaidBusFees:       paidBus,
		TotalPaid:         totalPaid,
		OutstandingSchool: clampZero(totalSchool.Sub(paidSchool)),
		OutstandingBus:    clampZero(totalBus.Sub(paidBus)),
		OutstandingTotal:  clampZero(totalFees.Sub(totalPaid)),
		Status:            status,
		LastPaymentDate:   lastPayment,
	}
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FeeStatusForStudent fetches one student's catalog and ledger data and
// computes the fee status. An empty yearID means the current year.
func FeeStatusForStudent(db *sql.DB, studentID, yearID string) (*models.FeeStatus, error) {
	if yearID == "" {
		year, err := CurrentAcademicYear(db)
		if err != nil {
			return nil, err
		}
		yearID = year.ID
	}

	var (
		student  *models.Student
		items    []*models.FeeStructureItem
		payments []*models.Payment
		busFee   *decimal.Decimal
	)
	err := database.Retry("fetch fee status inputs", func() error {
		var innerErr error
		if student, innerErr = database.GetStudentByID(db, studentID); innerErr != nil {
			return innerErr
		}
		if items, innerErr = database.GetFeeStructure(db, yearID); innerErr != nil {
			return innerErr
		}
		if student.HasSchoolBus && student.VillageID != nil {
			if busFee, innerErr = database.GetActiveBusFee(db, *student.VillageID, yearID); innerErr != nil {
				return innerErr
			}
		}
		payments, innerErr = database.GetPaymentsByStudent(db, studentID, yearID)
		return innerErr
	})
	if err != nil {
		return nil, err
	}

	return ComputeFeeStatus(student, yearID, items, busFee, payments), nil
}

// FeeStatusForClass computes every student of a class independently and
// folds the results into a summary. The catalog is fetched once up front
// so all students are judged against the same snapshot.
func FeeStatusForClass(db *sql.DB, classID string) (*models.ClassFeeSummary, error) {
	class, err := database.GetClassByID(db, classID)
	if err != nil {
		return nil, err
	}
	yearID := class.AcademicYearID

	var (
		students []*models.Student
		items    []*models.FeeStructureItem
		busItems []*models.BusFeeStructureItem
	)
	err = database.Retry("fetch class fee status inputs", func() error {
		var innerErr error
		if students, innerErr = database.GetStudentsByClass(db, classID); innerErr != nil {
			return innerErr
		}
		if items, innerErr = database.GetFeeStructure(db, yearID); innerErr != nil {
			return innerErr
		}
		busItems, innerErr = database.GetBusFeeStructure(db, yearID)
		return innerErr
	})
	if err != nil {
		return nil, err
	}

	busFees := make(map[string]decimal.Decimal, len(busItems))
	for _, item := range busItems {
		if item.IsActive {
			busFees[item.VillageID] = item.FeeAmount
		}
	}

	statuses := make([]*models.FeeStatus, len(students))
	var g errgroup.Group
	g.SetLimit(classStatusWorkers)
	for i, student := range students {
		i, student := i, student
		g.Go(func() error {
			payments, err := database.GetPaymentsByStudent(db, student.ID, yearID)
			if err != nil {
				return err
			}
			var busFee *decimal.Decimal
			if student.VillageID != nil {
				if fee, ok := busFees[*student.VillageID]; ok {
					busFee = &fee
				}
			}
			statuses[i] = ComputeFeeStatus(student, yearID, items, busFee, payments)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := SummarizeClass(classID, yearID, statuses)
	summary.ClassName = class.Name
	return summary, nil
}

// SummarizeClass reduces per-student statuses into class counts and totals.
// The fold is associative; ordering of the inputs does not matter.
func SummarizeClass(classID, yearID string, statuses []*models.FeeStatus) *models.ClassFeeSummary {
	summary := &models.ClassFeeSummary{
		ClassID:          classID,
		AcademicYearID:   yearID,
		StudentCount:     len(statuses),
		TotalFees:        decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
		Students:         statuses,
	}
	for _, status := range statuses {
		switch status.Status {
		case models.StatusPaid:
			summary.PaidCount++
		case models.StatusPartial:
			summary.PartialCount++
		default:
			summary.PendingCount++
		}
		summary.TotalFees = summary.TotalFees.Add(status.TotalFees)
		summary.TotalPaid = summary.TotalPaid.Add(status.TotalPaid)
		summary.TotalOutstanding = summary.TotalOutstanding.Add(status.OutstandingTotal)
	}
	return summary
}

// Defaulters filters a class summary down to students still owing.
func Defaulters(summary *models.ClassFeeSummary) []*models.FeeStatus {
	defaulters := []*models.FeeStatus{}
	for _, status := range summary.Students {
		if status.IsDefaulter() {
			defaulters = append(defaulters, status)
		}
	}
	return defaulters
}
