package models

// Balance is a participant's net position relative to the per-person share.
type Balance struct {
	Name string

	// Balance is expense minus the per-person share.
	// Positive = is owed money, Negative = owes money.
	Balance float64

	// Anonymous is copied from the participant the balance belongs to.
	Anonymous bool
}

// Payment is one transfer that settles part of a debt.
type Payment struct {
	From   string // debtor
	To     string // creditor
	Amount float64

	// FromAnonymous is set when the debtor is an anonymous participant.
	FromAnonymous bool
}

// ExpenseResult is the output of a single settlement calculation.
type ExpenseResult struct {
	TotalExpense     float64
	NumberOfPeople   int
	PerPersonExpense float64

	// Balances has one entry per roster participant, in roster order:
	// named participants first, then anonymous ones.
	Balances []Balance

	// Payments zero out every balance when applied in order.
	Payments []Payment
}

// AnonymousPayments returns the payments made by anonymous participants.
func (r ExpenseResult) AnonymousPayments() []Payment {
	var out []Payment
	for _, p := range r.Payments {
		if p.FromAnonymous {
			out = append(out, p)
		}
	}
	return out
}

// AnonymousCount returns how many anonymous participants the result covers.
func (r ExpenseResult) AnonymousCount() int {
	n := 0
	for _, b := range r.Balances {
		if b.Anonymous {
			n++
		}
	}
	return n
}
