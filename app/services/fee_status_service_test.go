package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stanley-project/DVHS-FeesManagement-sub000/app/models"
)

const (
	testYearID  = "11111111-1111-1111-1111-111111111111"
	testClassID = "22222222-2222-2222-2222-222222222222"
)

func continuingStudent() *models.Student {
	return &models.Student{
		ID:               "33333333-3333-3333-3333-333333333333",
		FirstName:        "Asha",
		LastName:         "Rao",
		ClassID:          testClassID,
		RegistrationType: models.RegistrationContinuing,
	}
}

func busStudent(villageID string) *models.Student {
	s := continuingStudent()
	s.HasSchoolBus = true
	s.VillageID = &villageID
	return s
}

func schoolFeeItem(classID, amount string) *models.FeeStructureItem {
	return &models.FeeStructureItem{
		AcademicYearID: testYearID,
		ClassID:        classID,
		FeeTypeID:      "44444444-4444-4444-4444-444444444444",
		Amount:         d(amount),
	}
}

func allocatedPayment(amount, bus, school string, when time.Time) *models.Payment {
	return &models.Payment{
		AmountPaid:  d(amount),
		PaymentDate: when,
		Allocation: &models.PaymentAllocation{
			BusFeeAmount:    d(bus),
			SchoolFeeAmount: d(school),
		},
	}
}

func TestComputeFeeStatusNoPayments(t *testing.T) {
	status := ComputeFeeStatus(continuingStudent(), testYearID,
		[]*models.FeeStructureItem{schoolFeeItem(testClassID, "12000")}, nil, nil)

	assert.True(t, status.TotalSchoolFees.Equal(d("12000")))
	assert.True(t, status.OutstandingTotal.Equal(d("12000")))
	assert.Equal(t, models.StatusPending, status.Status)
	assert.Nil(t, status.LastPaymentDate)
}

func TestComputeFeeStatusPartialThenPaid(t *testing.T) {
	student := continuingStudent()
	items := []*models.FeeStructureItem{schoolFeeItem(testClassID, "10000")}
	first := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	partial := ComputeFeeStatus(student, testYearID, items, nil, []*models.Payment{
		allocatedPayment("4000", "0", "4000", first),
	})
	assert.Equal(t, models.StatusPartial, partial.Status)
	assert.True(t, partial.OutstandingTotal.Equal(d("6000")))

	paid := ComputeFeeStatus(student, testYearID, items, nil, []*models.Payment{
		allocatedPayment("4000", "0", "4000", first),
		allocatedPayment("6000", "0", "6000", second),
	})
	assert.Equal(t, models.StatusPaid, paid.Status)
	assert.True(t, paid.OutstandingTotal.Equal(d("0")))
	require.NotNil(t, paid.LastPaymentDate)
	assert.True(t, paid.LastPaymentDate.Equal(second))
}

func TestComputeFeeStatusIsDeterministic(t *testing.T) {
	student := busStudent("55555555-5555-5555-5555-555555555555")
	items := []*models.FeeStructureItem{schoolFeeItem(testClassID, "8000")}
	busFee := d("3000")
	payments := []*models.Payment{
		allocatedPayment("5000", "2000", "3000", time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)),
	}

	first := ComputeFeeStatus(student, testYearID, items, &busFee, payments)
	second := ComputeFeeStatus(student, testYearID, items, &busFee, payments)

	assert.Equal(t, first, second)
}

func TestComputeFeeStatusIgnoresOtherClasses(t *testing.T) {
	items := []*models.FeeStructureItem{
		schoolFeeItem(testClassID, "9000"),
		schoolFeeItem("99999999-9999-9999-9999-999999999999", "5000"),
	}

	status := ComputeFeeStatus(continuingStudent(), testYearID, items, nil, nil)
	assert.True(t, status.TotalSchoolFees.Equal(d("9000")))
}

func TestComputeFeeStatusNewStudentOnlyItems(t *testing.T) {
	admission := schoolFeeItem(testClassID, "2500")
	admission.ApplicableToNewStudentsOnly = true
	items := []*models.FeeStructureItem{schoolFeeItem(testClassID, "9000"), admission}

	continuing := ComputeFeeStatus(continuingStudent(), testYearID, items, nil, nil)
	assert.True(t, continuing.TotalSchoolFees.Equal(d("9000")))

	fresh := continuingStudent()
	fresh.RegistrationType = models.RegistrationNew
	newStudent := ComputeFeeStatus(fresh, testYearID, items, nil, nil)
	assert.True(t, newStudent.TotalSchoolFees.Equal(d("11500")))
}

func TestComputeFeeStatusBusFeeRequiresBusService(t *testing.T) {
	busFee := d("3000")
	items := []*models.FeeStructureItem{schoolFeeItem(testClassID, "8000")}

	// A bus fee exists for the village but the student does not ride.
	walker := ComputeFeeStatus(continuingStudent(), testYearID, items, &busFee, nil)
	assert.True(t, walker.TotalBusFees.Equal(d("0")))

	rider := ComputeFeeStatus(busStudent("55555555-5555-5555-5555-555555555555"), testYearID, items, &busFee, nil)
	assert.True(t, rider.TotalBusFees.Equal(d("3000")))
	assert.True(t, rider.TotalFees.Equal(d("11000")))
}

func TestComputeFeeStatusUnallocatedPaymentGoesToSchool(t *testing.T) {
	busFee := d("3000")
	items := []*models.FeeStructureItem{schoolFeeItem(testClassID, "8000")}
	legacy := &models.Payment{
		AmountPaid:  d("5000"),
		PaymentDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	status := ComputeFeeStatus(busStudent("55555555-5555-5555-5555-555555555555"), testYearID, items, &busFee, []*models.Payment{legacy})

	assert.True(t, status.PaidSchoolFees.Equal(d("5000")))
	assert.True(t, status.PaidBusFees.Equal(d("0")))
	assert.True(t, status.OutstandingBus.Equal(d("3000")))
}

func TestComputeFeeStatusOverpaymentClampsOutstanding(t *testing.T) {
	items := []*models.FeeStructureItem{schoolFeeItem(testClassID, "5000")}
	status := ComputeFeeStatus(continuingStudent(), testYearID, items, nil, []*models.Payment{
		allocatedPayment("7000", "0", "7000", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
	})

	assert.Equal(t, models.StatusPaid, status.Status)
	assert.True(t, status.OutstandingSchool.Equal(d("0")))
	assert.True(t, status.OutstandingTotal.Equal(d("0")))
}

func TestComputeFeeStatusZeroFeesPendingWithoutPayments(t *testing.T) {
	status := ComputeFeeStatus(continuingStudent(), testYearID, nil, nil, nil)
	assert.Equal(t, models.StatusPending, status.Status)
	assert.True(t, status.TotalFees.Equal(d("0")))
}

func TestSummarizeClassCountsAndTotals(t *testing.T) {
	statuses := []*models.FeeStatus{
		{Status: models.StatusPaid, TotalFees: d("10000"), TotalPaid: d("10000"), OutstandingTotal: d("0")},
		{Status: models.StatusPartial, TotalFees: d("10000"), TotalPaid: d("4000"), OutstandingTotal: d("6000")},
		{Status: models.StatusPending, TotalFees: d("10000"), TotalPaid: d("0"), OutstandingTotal: d("10000")},
	}

	summary := SummarizeClass(testClassID, testYearID, statuses)

	assert.Equal(t, 3, summary.StudentCount)
	assert.Equal(t, 1, summary.PaidCount)
	assert.Equal(t, 1, summary.PartialCount)
	assert.Equal(t, 1, summary.PendingCount)
	assert.True(t, summary.TotalFees.Equal(d("30000")))
	assert.True(t, summary.TotalPaid.Equal(d("14000")))
	assert.True(t, summary.TotalOutstanding.Equal(d("16000")))
}

func TestSummarizeClassOrderIndependent(t *testing.T) {
	statuses := []*models.FeeStatus{
		{Status: models.StatusPaid, TotalFees: d("100.50"), TotalPaid: d("100.50"), OutstandingTotal: d("0")},
		{Status: models.StatusPartial, TotalFees: d("200.25"), TotalPaid: d("50"), OutstandingTotal: d("150.25")},
		{Status: models.StatusPending, TotalFees: d("300"), TotalPaid: d("0"), OutstandingTotal: d("300")},
	}
	reversed := []*models.FeeStatus{statuses[2], statuses[1], statuses[0]}

	a := SummarizeClass(testClassID, testYearID, statuses)
	b := SummarizeClass(testClassID, testYearID, reversed)

	assert.True(t, a.TotalFees.Equal(b.TotalFees))
	assert.True(t, a.TotalPaid.Equal(b.TotalPaid))
	assert.True(t, a.TotalOutstanding.Equal(b.TotalOutstanding))
	assert.Equal(t, a.PaidCount, b.PaidCount)
}

func TestDefaultersExcludesPaid(t *testing.T) {
	s := SummarizeClass(testClassID, testYearID, []*models.FeeStatus{
		{StudentID: "a", Status: models.StatusPaid},
		{StudentID: "b", Status: models.StatusPartial},
		{StudentID: "c", Status: models.StatusPending},
	})

	defaulters := Defaulters(s)
	require.Len(t, defaulters, 2)
	assert.Equal(t, "b", defaulters[0].StudentID)
	assert.Equal(t, "c", defaulters[1].StudentID)
}
