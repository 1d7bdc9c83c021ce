package models

// FeeCategory defines the closed set of fee categories. Free-form category
// strings are not representable.
type FeeCategory string

const (
	CategorySchool    FeeCategory = "school"
	CategoryBus       FeeCategory = "bus"
	CategoryAdmission FeeCategory = "admission"
)

// Valid reports whether the category is one of the known values.
func (c FeeCategory) Valid() bool {
	switch c {
	case CategorySchool, CategoryBus, CategoryAdmission:
		return true
	}
	return false
}

// FeeFrequency defines how often a fee type is charged.
type FeeFrequency string

const (
	FrequencyMonthly   FeeFrequency = "monthly"
	FrequencyQuarterly FeeFrequency = "quarterly"
	FrequencyAnnual    FeeFrequency = "annual"
)

func (f FeeFrequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
		return true
	}
	return false
}

// RegistrationType distinguishes newly admitted students from continuing ones.
type RegistrationType string

const (
	RegistrationNew        RegistrationType = "new"
	RegistrationContinuing RegistrationType = "continuing"
)

func (r RegistrationType) Valid() bool {
	return r == RegistrationNew || r == RegistrationContinuing
}

// TransitionStatus tracks the year-to-year rollover of an academic year.
type TransitionStatus string

const (
	TransitionPending    TransitionStatus = "pending"
	TransitionInProgress TransitionStatus = "in_progress"
	TransitionCompleted  TransitionStatus = "completed"
)

func (s TransitionStatus) Valid() bool {
	switch s {
	case TransitionPending, TransitionInProgress, TransitionCompleted:
		return true
	}
	return false
}

// FeeStatusLabel classifies a student's payment position for a year.
type FeeStatusLabel string

const (
	StatusPaid    FeeStatusLabel = "paid"
	StatusPartial FeeStatusLabel = "partial"
	StatusPending FeeStatusLabel = "pending"
)

// PaymentMethod defines the accepted collection channels.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodOnline PaymentMethod = "online"
	MethodCheque PaymentMethod = "cheque"
	MethodCard   PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodOnline, MethodCheque, MethodCard:
		return true
	}
	return false
}
