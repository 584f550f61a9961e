// Package models defines the value types exchanged by the Dividizky
// settlement engine.
//
// # Models
//
//   - Participant: one entry on the roster, either a named payer or an
//     anonymous headcount-only entry
//   - Balance: a participant's deviation from the per-person share
//   - Payment: one directed transfer between a debtor and a creditor
//   - ExpenseResult: the complete output of one calculation
//
// All types are plain values. They are built fresh for each calculation and
// never mutated once returned.
//
// # Anonymous participants
//
// People who join the split without paying are represented by Participant
// values with Anonymous set. Their Name is AnonymousName, which is a display
// label only: code that needs to tell anonymous entries apart must use the
// Anonymous flag, never compare names.
package models
