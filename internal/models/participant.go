package models

// AnonymousName is the display label given to people who share the expense
// without having paid anything.
const AnonymousName = "Anónimo"

// Participant is one entry on the roster of a shared expense.
type Participant struct {
	// Name is a display label. It is not a unique key: two participants may
	// share a name.
	Name string

	// Expense is the amount this participant paid, in currency units.
	// Fractional amounts are allowed.
	Expense float64

	// Anonymous marks a headcount-only entry with zero expense.
	Anonymous bool
}

// NewAnonymousParticipant returns a zero-expense participant that only
// inflates the headcount.
func NewAnonymousParticipant() Participant {
	return Participant{Name: AnonymousName, Anonymous: true}
}
