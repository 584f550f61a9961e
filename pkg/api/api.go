// Package api defines the request and response messages of the
// dividizky.v1 settlement API.
//
// Messages are plain Go structs serialized as JSON over the Connect
// protocol (see Codec). Field names follow the web client's camelCase.
package api

// Person is one paying participant.
type Person struct {
	Name    string  `json:"name"`
	Expense float64 `json:"expense"`
}

// Balance is a participant's position relative to the per-person share.
// Positive = is owed money, Negative = owes money.
type Balance struct {
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	Anonymous bool    `json:"anonymous,omitempty"`
}

// Payment is one settlement transfer.
type Payment struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	Amount        float64 `json:"amount"`
	FromAnonymous bool    `json:"fromAnonymous,omitempty"`
}

// ExpenseResult is the outcome of a settlement calculation.
type ExpenseResult struct {
	TotalExpense     float64   `json:"totalExpense"`
	NumberOfPeople   int32     `json:"numberOfPeople"`
	PerPersonExpense float64   `json:"perPersonExpense"`
	Balances         []Balance `json:"balances"`
	Payments         []Payment `json:"payments"`
}

type CalculateRequest struct {
	People           []Person `json:"people"`
	AdditionalPeople int32    `json:"additionalPeople"`
}

type CalculateResponse struct {
	Result *ExpenseResult `json:"result"`
}

// SummarizeRequest asks for the shareable text of a calculation.
type SummarizeRequest struct {
	People           []Person `json:"people"`
	AdditionalPeople int32    `json:"additionalPeople"`

	// Locale is a BCP 47 tag or Accept-Language value. When empty the
	// request's Accept-Language header, then the server default, is used.
	Locale string `json:"locale,omitempty"`
}

type SummarizeResponse struct {
	Result   *ExpenseResult `json:"result"`
	Message  string         `json:"message"`
	ShareUrl string         `json:"shareUrl"`
	Locale   string         `json:"locale"`
}

type CreateShareLinkRequest struct {
	People           []Person `json:"people"`
	AdditionalPeople int32    `json:"additionalPeople"`
}

type CreateShareLinkResponse struct {
	Token string `json:"token"`
	// ExpiresAt is a Unix timestamp in seconds.
	ExpiresAt int64 `json:"expiresAt"`
}

type GetSharedSettlementRequest struct {
	Token string `json:"token"`
}

type GetSharedSettlementResponse struct {
	People           []Person       `json:"people"`
	AdditionalPeople int32          `json:"additionalPeople"`
	Result           *ExpenseResult `json:"result"`
}
