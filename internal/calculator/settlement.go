// Package calculator splits a shared expense evenly and proposes the payments
// that settle it.
package calculator

import (
	"math"
	"sort"

	"github.com/mmynk/dividizky/internal/models"
)

const (
	// Epsilon is the smallest tolerance, in currency units, below which a
	// balance is treated as settled. It absorbs the residue left by binary
	// floating-point division on everyday amounts.
	Epsilon = 1e-6

	// relativeTolerance scales the tolerance with the total, since residue
	// grows with the magnitude of the amounts.
	relativeTolerance = 1e-14

	// maxTolerance keeps the tolerance below half a cent, so a balance that
	// shows up in a rounded message is never skipped.
	maxTolerance = 0.005
)

// Tolerance returns the settled-balance tolerance for a group whose expenses
// add up to total: Epsilon for everyday totals, growing with the total from
// about 1e8 and capped at half a cent from 5e11. Totals up to 1e12 (the
// validation limits) settle without spurious sub-cent payments.
func Tolerance(total float64) float64 {
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return Epsilon
	}
	return math.Min(math.Max(Epsilon, math.Abs(total)*relativeTolerance), maxTolerance)
}

// CalculateExpenses splits the total paid by people equally among them plus
// additional non-paying participants and proposes the payments that settle
// every balance.
//
// Callers are expected to validate the input first (see package validation).
// CalculateExpenses itself never fails: with a headcount of zero the
// per-person share is NaN and is returned as is. A negative additional count
// is treated as zero.
//
// Algorithm:
//   - total = sum of every expense
//   - share = total / (len(people) + additional)
//   - balance = expense - share, for people followed by the anonymous entries
//   - payments = greedy matching of debtors to creditors (AssignPayments),
//     ignoring balances within Tolerance(total) of zero
func CalculateExpenses(people []models.Participant, additional int) models.ExpenseResult {
	if additional < 0 {
		additional = 0
	}

	total := TotalExpense(people)
	numberOfPeople := len(people) + additional
	perPerson := PerPersonExpense(total, numberOfPeople)

	roster := make([]models.Participant, 0, numberOfPeople)
	roster = append(roster, people...)
	for i := 0; i < additional; i++ {
		roster = append(roster, models.NewAnonymousParticipant())
	}

	balances := CalculateBalances(roster, perPerson)

	return models.ExpenseResult{
		TotalExpense:     total,
		NumberOfPeople:   numberOfPeople,
		PerPersonExpense: perPerson,
		Balances:         balances,
		Payments:         AssignPayments(balances, Tolerance(total)),
	}
}

// TotalExpense sums the expense of every participant.
func TotalExpense(people []models.Participant) float64 {
	var total float64
	for _, p := range people {
		total += p.Expense
	}
	return total
}

// PerPersonExpense divides total evenly across numberOfPeople.
// A zero headcount yields NaN (or ±Inf for a non-zero total); float
// division never panics.
func PerPersonExpense(total float64, numberOfPeople int) float64 {
	return total / float64(numberOfPeople)
}

// CalculateBalances returns expense minus perPerson for each participant,
// preserving order. Values are kept at full precision; rounding is a
// presentation concern.
func CalculateBalances(people []models.Participant, perPerson float64) []models.Balance {
	balances := make([]models.Balance, len(people))
	for i, p := range people {
		balances[i] = models.Balance{
			Name:      p.Name,
			Balance:   p.Expense - perPerson,
			Anonymous: p.Anonymous,
		}
	}
	return balances
}

// AssignPayments matches debtors with creditors until one side runs out.
//
// Debtors are visited most negative first and creditors largest first, so the
// biggest positions are settled first. Ties keep their input order. Each step
// transfers min(debt, credit), which fully settles at least one of the two
// parties, so the result has at most len(balances)-1 payments when the
// balances sum to zero.
//
// The balances slice is not modified. Balances within tolerance of zero, as
// well as NaN and infinite ones, take no part in the matching. A tolerance
// below Epsilon is raised to Epsilon.
func AssignPayments(balances []models.Balance, tolerance float64) []models.Payment {
	tolerance = math.Max(tolerance, Epsilon)


	var debtors, creditors []models.Balance
	for _, b := range balances {
		if math.IsInf(b.Balance, 0) {
			continue
		}
		// NaN fails both comparisons
		if b.Balance < -tolerance {
			debtors = append(debtors, b)
		} else if b.Balance > tolerance {
			creditors = append(creditors, b)
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Balance < debtors[j].Balance
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].Balance > creditors[j].Balance
	})

	payments := []models.Payment{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := math.Min(-debtor.Balance, creditor.Balance)
		payments = append(payments, models.Payment{
			From:          debtor.Name,
			To:            creditor.Name,
			Amount:        amount,
			FromAnonymous: debtor.Anonymous,
		})

		debtor.Balance += amount
		creditor.Balance -= amount

		if math.Abs(debtor.Balance) <= tolerance {
			i++
		}
		if math.Abs(creditor.Balance) <= tolerance {
			j++
		}
	}

	return payments
}
