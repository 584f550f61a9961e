package api

import "github.com/mmynk/dividizky/internal/models"

// Participants converts request people to calculator input.
func Participants(people []Person) []models.Participant {
	out := make([]models.Participant, len(people))
	for i, p := range people {
		out[i] = models.Participant{Name: p.Name, Expense: p.Expense}
	}
	return out
}

// FromParticipants converts calculator input back to request people.
func FromParticipants(people []models.Participant) []Person {
	out := make([]Person, len(people))
	for i, p := range people {
		out[i] = Person{Name: p.Name, Expense: p.Expense}
	}
	return out
}

// FromResult converts a calculator result to its wire form. Balances and
// payments are never nil, so they encode as [] rather than null.
func FromResult(r models.ExpenseResult) *ExpenseResult {
	balances := make([]Balance, len(r.Balances))
	for i, b := range r.Balances {
		balances[i] = Balance{Name: b.Name, Balance: b.Balance, Anonymous: b.Anonymous}
	}
	payments := make([]Payment, len(r.Payments))
	for i, p := range r.Payments {
		payments[i] = Payment{From: p.From, To: p.To, Amount: p.Amount, FromAnonymous: p.FromAnonymous}
	}
	return &ExpenseResult{
		TotalExpense:     r.TotalExpense,
		NumberOfPeople:   int32(r.NumberOfPeople),
		PerPersonExpense: r.PerPersonExpense,
		Balances:         balances,
		Payments:         payments,
	}
}
